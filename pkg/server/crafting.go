package server

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crystal-mush/mudbits/pkg/english"
	"github.com/crystal-mush/mudbits/pkg/events"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// Crafting ingredients and tools are marked with tags in these categories.
const (
	craftMaterialCategory = "craft_material"
	craftToolCategory     = "craft_tool"
)

// Materials that are consumed by quantity carry their remaining amount in
// Object.Size and may name their substance in a "material" attribute as
// "<short>,<long>" ("oak,sturdy oak wood"). The short form substitutes
// into output names, the long form into output descriptions.

// Recipe describes how to craft one kind of item.
//
// Tools must be present (inventory or room) and survive the crafting.
// Consumables come from the crafter's inventory and are used up. A
// consumable tag with a quantity draws that many size units from as many
// stacked materials as needed; without a quantity one whole object is
// consumed.
//
// OutputName and OutputDesc may contain [tag] placeholders which are
// replaced with the material name of the consumed ingredient carrying
// that tag, so one "chair" recipe can produce an oak chair or a pine
// chair depending on what went in.
type Recipe struct {
	Name           string
	ToolTags       []string
	ConsumableTags []string
	Quantities     map[string]int
	OutputName     string
	OutputDesc     string
	SuccessMessage string
}

var recipeBook = map[string]*Recipe{}

// RegisterRecipe adds a recipe to the global book, replacing any previous
// recipe of the same name.
func RegisterRecipe(r *Recipe) {
	recipeBook[strings.ToLower(r.Name)] = r
}

func init() {
	RegisterRecipe(&Recipe{
		Name:           "torch",
		ConsumableTags: []string{"wood", "cloth"},
		Quantities:     map[string]int{"wood": 1},
		OutputName:     "torch",
		OutputDesc:     "A length of wood with an oil-soaked rag wound about one end.",
		SuccessMessage: "You wind the rag around the stick and fashion a torch.",
	})
	RegisterRecipe(&Recipe{
		Name:           "chair",
		ToolTags:       []string{"saw"},
		ConsumableTags: []string{"wood"},
		Quantities:     map[string]int{"wood": 4},
		OutputName:     "[wood] chair",
		OutputDesc:     "A simple chair of [wood].",
		SuccessMessage: "You saw, fit and join until a chair stands before you.",
	})
	RegisterRecipe(&Recipe{
		Name:           "bread",
		ToolTags:       []string{"oven"},
		ConsumableTags: []string{"flour", "water"},
		Quantities:     map[string]int{"flour": 2, "water": 1},
		OutputName:     "loaf of bread",
		OutputDesc:     "A fresh loaf of bread, still warm from the oven.",
		SuccessMessage: "You knead the dough and bake a loaf of bread.",
	})
}

// materialNames returns an ingredient's substance names, short and long.
func materialNames(obj *gamedb.Object) (short, long string) {
	attr := obj.GetAttr("material")
	if attr == "" {
		return obj.Name, obj.Name
	}
	short, long, ok := strings.Cut(attr, ",")
	short = strings.TrimSpace(short)
	if !ok || strings.TrimSpace(long) == "" {
		return short, short
	}
	return short, strings.TrimSpace(long)
}

// craftConsume uses up to needed size units across the given materials, in
// order. Exhausted objects are destroyed, a partially used one shrinks.
// Returns false when the materials don't add up.
func (g *Game) craftConsume(materials []*gamedb.Object, needed int) bool {
	total := 0
	for _, m := range materials {
		size := m.Size
		if size <= 0 {
			size = 1
		}
		total += size
	}
	if total < needed {
		return false
	}
	for _, m := range materials {
		if needed <= 0 {
			break
		}
		size := m.Size
		if size <= 0 {
			size = 1
		}
		if size <= needed {
			needed -= size
			g.DestroyObject(m)
		} else {
			m.Size = size - needed
			needed = 0
			g.PersistObject(m)
		}
	}
	return true
}

// cmdCraft: craft <recipe> [from <ingredient>[, ...]] [using <tool>[, ...]]
func cmdCraft(g *Game, d *Descriptor, args string, _ []string) {
	args = strings.TrimSpace(args)
	var toolPart, ingredientPart string
	if lhs, rhs, ok := cutLast(args, " using "); ok {
		args, toolPart = lhs, rhs
	}
	if lhs, rhs, ok := cutLast(args, " from "); ok {
		args, ingredientPart = lhs, rhs
	}
	recipeName := strings.TrimSpace(args)
	if recipeName == "" {
		d.Send("Usage: craft <recipe> [from <ingredient>, ...] [using <tool>, ...]")
		return
	}
	recipe := recipeBook[strings.ToLower(recipeName)]
	if recipe == nil {
		d.Sendf("You don't know how to craft %s.", english.AName(recipeName))
		return
	}
	player := g.DB.Get(d.Player)
	if player == nil {
		return
	}

	// Named tools and ingredients, or everything in reach.
	tools := g.namedOrAll(d.Player, toolPart, g.LocalCandidates(d.Player))
	ingredients := g.namedOrAll(d.Player, ingredientPart, player.Contents)

	for _, tag := range recipe.ToolTags {
		if findTagged(tools, tag, craftToolCategory) == nil {
			d.Sendf("You need %s to craft %s.", english.AName(tag), english.AName(recipe.Name))
			return
		}
	}

	// First verify every consumable, then consume; a failed check must not
	// eat half the materials.
	byTag := make(map[string][]*gamedb.Object)
	used := make(map[gamedb.DBRef]bool)
	for _, tag := range recipe.ConsumableTags {
		var found []*gamedb.Object
		for _, obj := range ingredients {
			if !used[obj.Ref] && obj.HasTag(tag, craftMaterialCategory) {
				found = append(found, obj)
				used[obj.Ref] = true
				if recipe.Quantities[tag] == 0 {
					break
				}
			}
		}
		needed := recipe.Quantities[tag]
		total := 0
		for _, m := range found {
			if m.Size > 0 {
				total += m.Size
			} else {
				total++
			}
		}
		if len(found) == 0 || (needed > 0 && total < needed) {
			d.Sendf("You don't have enough %s.", tag)
			return
		}
		byTag[tag] = found
	}

	// Record substitutions before the ingredients are destroyed.
	outputName := recipe.OutputName
	outputDesc := recipe.OutputDesc
	for tag, found := range byTag {
		short, long := materialNames(found[0])
		outputName = strings.ReplaceAll(outputName, "["+tag+"]", short)
		outputDesc = strings.ReplaceAll(outputDesc, "["+tag+"]", long)
	}

	for _, tag := range recipe.ConsumableTags {
		found := byTag[tag]
		needed := recipe.Quantities[tag]
		if needed == 0 {
			g.DestroyObject(found[0])
			continue
		}
		g.craftConsume(found, needed)
	}

	output := g.DB.NewObject(gamedb.TypeThing, outputName, d.Player)
	output.Desc = outputDesc
	g.DB.MoveTo(output.Ref, d.Player)
	g.PersistObjects(output, player)

	msg := recipe.SuccessMessage
	if msg == "" {
		msg = fmt.Sprintf("You craft %s.", english.AName(output.Name))
	}
	d.Send(msg)
	g.EmitRoomExcept(player.Location, d.Player, events.Event{
		Type: events.EvRoom,
		Text: fmt.Sprintf("%s crafts %s.", player.Name, english.AName(output.Name)),
	})
}

// namedOrAll resolves a comma-separated list of object names, or returns
// the fallback set when the list is empty. Unknown names are skipped; the
// tag checks produce the real error messages.
func (g *Game) namedOrAll(player gamedb.DBRef, names string, fallback []gamedb.DBRef) []*gamedb.Object {
	var refs []gamedb.DBRef
	if strings.TrimSpace(names) == "" {
		refs = fallback
	} else {
		for _, name := range splitList(names) {
			refs = append(refs, g.SearchAmong(player, name, fallback)...)
		}
	}
	var out []*gamedb.Object
	seen := make(map[gamedb.DBRef]bool)
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		if obj := g.DB.Get(ref); obj != nil {
			out = append(out, obj)
		}
	}
	return out
}

func findTagged(objs []*gamedb.Object, tag, category string) *gamedb.Object {
	for _, obj := range objs {
		if obj.HasTag(tag, category) {
			return obj
		}
	}
	return nil
}

// cmdRecipes lists the recipe book with what each recipe takes.
func cmdRecipes(g *Game, d *Descriptor, _ string, _ []string) {
	var names []string
	for name := range recipeBook {
		names = append(names, name)
	}
	sort.Strings(names)
	d.Send("You know how to craft:")
	for _, name := range names {
		r := recipeBook[name]
		var parts []string
		for _, tag := range r.ConsumableTags {
			if q := r.Quantities[tag]; q > 0 {
				parts = append(parts, fmt.Sprintf("%s x%d", tag, q))
			} else {
				parts = append(parts, tag)
			}
		}
		line := fmt.Sprintf(" %s: %s", r.Name, english.ListToString(parts))
		if len(r.ToolTags) > 0 {
			line += " (needs " + english.ListToString(r.ToolTags) + ")"
		}
		d.Send(line)
	}
}
