package server

import (
	"fmt"
	"strings"

	"github.com/crystal-mush/mudbits/pkg/english"
	"github.com/crystal-mush/mudbits/pkg/events"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// Wearables carry their clothing type as a tag in this category.
const clothingTagCategory = "clothing"

// Maximum character length of 'wear style' strings, 0 to disable.
const wearStyleMaxLength = 50

// The maximum number of clothing items that can be worn, 0 for unlimited.
const clothingTotalLimit = 20

// Display order for clothing types. Types not in the list sort last.
var clothingTypeOrder = []string{
	"hat",
	"jewelry",
	"top",
	"undershirt",
	"gloves",
	"fullbody",
	"bottom",
	"underpants",
	"socks",
	"shoes",
	"accessory",
}

// The maximum number of each type of clothes that can be worn.
// Types not listed are only bound by the total limit.
var clothingTypeLimits = map[string]int{
	"hat":    1,
	"gloves": 1,
	"socks":  1,
	"shoes":  1,
}

// What types automatically cover what other, already-worn types.
var clothingAutocoverTypes = map[string][]string{
	"top":      {"undershirt"},
	"bottom":   {"underpants"},
	"fullbody": {"undershirt", "underpants"},
	"shoes":    {"socks"},
}

// Types that can't be used to cover other clothes.
var clothingNoCoverTypes = []string{"jewelry"}

// IsWorn reports whether wearer has the garment in their worn list.
func (g *Game) IsWorn(wearer *gamedb.Object, garment gamedb.DBRef) bool {
	for _, ref := range wearer.Worn {
		if ref == garment {
			return true
		}
	}
	return false
}

// VisibleWorn returns worn garments that are not covered, in wear order.
func (g *Game) VisibleWorn(wearer *gamedb.Object) []*gamedb.Object {
	var out []*gamedb.Object
	for _, ref := range wearer.Worn {
		obj := g.DB.Get(ref)
		if obj == nil {
			continue
		}
		if obj.Wear != nil && obj.Wear.CoveredBy != gamedb.Nothing {
			continue
		}
		out = append(out, obj)
	}
	return out
}

// CountWornType counts worn garments of a clothing type.
func (g *Game) CountWornType(wearer *gamedb.Object, typ string) int {
	count := 0
	for _, ref := range wearer.Worn {
		if obj := g.DB.Get(ref); obj != nil && obj.HasTag(typ, clothingTagCategory) {
			count++
		}
	}
	return count
}

// wornDesc is the garment's worn appearance: its description with the first
// letter lowered and trailing punctuation dropped, followed by the wear
// style. Falls back to the article'd name for undescribed items.
func wornDesc(obj *gamedb.Object) string {
	desc := obj.Desc
	if desc == "" {
		desc = english.AName(obj.Name)
	} else {
		desc = english.LowerFirst(desc)
		if last := desc[len(desc)-1]; last == '.' || last == '!' || last == '?' {
			desc = desc[:len(desc)-1]
		}
	}
	if obj.Wear != nil && obj.Wear.Style != "" {
		desc = desc + " " + obj.Wear.Style
	}
	return desc
}

// Outfit returns the appearances of all visible worn items, sorted by the
// clothing type order. Unlisted types go at the end, unsorted.
func (g *Game) Outfit(wearer *gamedb.Object) []string {
	byType := make(map[string][]*gamedb.Object)
	var extra []*gamedb.Object
	for _, obj := range g.VisibleWorn(wearer) {
		typ := obj.FirstTag(clothingTagCategory)
		ordered := false
		for _, t := range clothingTypeOrder {
			if t == typ {
				ordered = true
				break
			}
		}
		if ordered {
			byType[typ] = append(byType[typ], obj)
		} else {
			extra = append(extra, obj)
		}
	}
	var sorted []*gamedb.Object
	for _, typ := range clothingTypeOrder {
		sorted = append(sorted, byType[typ]...)
	}
	sorted = append(sorted, extra...)

	out := make([]string, 0, len(sorted))
	for _, obj := range sorted {
		out = append(out, wornDesc(obj))
	}
	return out
}

// CanWear checks wearability and limits. The returned message is sent to
// the wearer on failure.
func (g *Game) CanWear(wearer, obj *gamedb.Object) (bool, string) {
	typ := obj.FirstTag(clothingTagCategory)
	if typ == "" {
		return false, "You can't wear that."
	}
	if clothingTotalLimit > 0 && len(wearer.Worn) >= clothingTotalLimit {
		return false, "You can't wear anything else."
	}
	if limit, ok := clothingTypeLimits[typ]; ok && g.CountWornType(wearer, typ) >= limit {
		return false, "You can't wear any more of those."
	}
	return true, ""
}

// WearItem wears (or re-adjusts) a garment, auto-covering appropriate
// already-worn types. Returns the room echo, or "" when quiet.
func (g *Game) WearItem(wearer, obj *gamedb.Object, style string, quiet bool) string {
	adjust := g.IsWorn(wearer, obj.Ref)
	if !adjust {
		wearer.Worn = append(wearer.Worn, obj.Ref)
	}
	obj.Wear = &gamedb.WearState{Style: style, CoveredBy: gamedb.Nothing}

	// Auto-cover already-worn garments of the covered types.
	var covered []string
	persist := []*gamedb.Object{wearer, obj}
	if !adjust {
		var coverTypes []string
		for _, typ := range obj.TagsIn(clothingTagCategory) {
			coverTypes = append(coverTypes, clothingAutocoverTypes[typ]...)
		}
		if len(coverTypes) > 0 {
			for _, garment := range g.VisibleWorn(wearer) {
				if garment.Ref == obj.Ref {
					continue
				}
				if garment.HasAnyTag(coverTypes, clothingTagCategory) {
					garment.Wear.CoveredBy = obj.Ref
					covered = append(covered, english.AName(garment.Name))
					persist = append(persist, garment)
				}
			}
		}
	}
	g.PersistObjects(persist...)

	if quiet {
		return ""
	}
	verb := "puts on"
	if adjust {
		verb = "adjusts"
	}
	msg := fmt.Sprintf("%s %s %s", wearer.Name, verb, english.AName(obj.Name))
	if len(covered) > 0 {
		msg += ", covering " + english.ListToString(covered)
	}
	return msg + "."
}

// CanRemoveWorn checks that a garment is worn and uncovered.
func (g *Game) CanRemoveWorn(wearer, obj *gamedb.Object) (bool, string) {
	if !g.IsWorn(wearer, obj.Ref) {
		return false, "You're not wearing that."
	}
	if obj.Wear != nil && obj.Wear.CoveredBy != gamedb.Nothing {
		return false, fmt.Sprintf("You can't remove that, it's covered by your %s.",
			g.PlayerName(obj.Wear.CoveredBy))
	}
	return true, ""
}

// RemoveWorn takes a garment off, revealing anything it covered. Returns
// the room echo, or "" when quiet.
func (g *Game) RemoveWorn(wearer, obj *gamedb.Object, quiet bool) string {
	obj.Wear = nil
	for i, ref := range wearer.Worn {
		if ref == obj.Ref {
			wearer.Worn = append(wearer.Worn[:i], wearer.Worn[i+1:]...)
			break
		}
	}

	var revealed []string
	persist := []*gamedb.Object{wearer, obj}
	for _, ref := range wearer.Worn {
		garment := g.DB.Get(ref)
		if garment == nil || garment.Wear == nil {
			continue
		}
		if garment.Wear.CoveredBy == obj.Ref {
			garment.Wear.CoveredBy = gamedb.Nothing
			revealed = append(revealed, english.AName(garment.Name))
			persist = append(persist, garment)
		}
	}
	g.PersistObjects(persist...)

	if quiet {
		return ""
	}
	msg := fmt.Sprintf("%s removes %s", wearer.Name, english.AName(obj.Name))
	if len(revealed) > 0 {
		msg += ", revealing " + english.ListToString(revealed)
	}
	return msg + "."
}

// echoWear sends a clothing room echo to everyone in the wearer's room.
func (g *Game) echoWear(wearer *gamedb.Object, msg string) {
	if msg == "" {
		return
	}
	g.EmitRoom(wearer.Location, events.Event{Type: events.EvWear, Text: msg})
}

// --- Commands ---

// cmdWear: wear <obj> [= wear style]
func cmdWear(g *Game, d *Descriptor, args string, _ []string) {
	lhs, rhs, hasStyle := strings.Cut(args, "=")
	lhs = strings.TrimSpace(lhs)
	rhs = strings.TrimSpace(rhs)
	if lhs == "" {
		d.Send("Usage: wear <obj> [= wear style]")
		return
	}
	if hasStyle && wearStyleMaxLength > 0 && len(rhs) > wearStyleMaxLength {
		d.Sendf("Please keep your wear style message to less than %d characters.", wearStyleMaxLength)
		return
	}
	wearer := g.DB.Get(d.Player)
	if wearer == nil {
		return
	}
	matches := g.SearchInventory(d.Player, lhs)
	g.Resolve(d, lhs, matches, fmt.Sprintf("You don't have any %s.", lhs), func(ref gamedb.DBRef) {
		obj := g.DB.Get(ref)
		if obj == nil {
			return
		}
		if g.IsWorn(wearer, ref) && !hasStyle {
			d.Send("You're already wearing that.")
			return
		}
		if ok, msg := g.CanWear(wearer, obj); !ok {
			d.Send(msg)
			return
		}
		g.echoWear(wearer, g.WearItem(wearer, obj, rhs, false))
	})
}

// cmdRemoveClothing: remove <obj>
func cmdRemoveClothing(g *Game, d *Descriptor, args string, _ []string) {
	args = strings.TrimSpace(args)
	if args == "" {
		d.Send("Usage: remove <object>")
		return
	}
	wearer := g.DB.Get(d.Player)
	if wearer == nil {
		return
	}
	matches := g.SearchInventory(d.Player, args)
	g.Resolve(d, args, matches, fmt.Sprintf("You don't have any %s.", args), func(ref gamedb.DBRef) {
		obj := g.DB.Get(ref)
		if obj == nil {
			return
		}
		if ok, msg := g.CanRemoveWorn(wearer, obj); !ok {
			d.Send(msg)
			return
		}
		g.echoWear(wearer, g.RemoveWorn(wearer, obj, false))
	})
}

// CanCover checks that cover_with may hide to_cover.
func (g *Game) CanCover(d *Descriptor, toCover, coverWith *gamedb.Object) bool {
	if toCover.Wear != nil && toCover.Wear.CoveredBy != gamedb.Nothing {
		d.Sendf("Your %s is already covered by %s.", toCover.Name,
			english.AName(g.PlayerName(toCover.Wear.CoveredBy)))
		return false
	}
	if coverWith.FirstTag(clothingTagCategory) == "" {
		d.Sendf("Your %s isn't clothes.", coverWith.Name)
		return false
	}
	if coverWith.HasAnyTag(clothingNoCoverTypes, clothingTagCategory) {
		d.Sendf("You can't cover anything with %s.", english.AName(coverWith.Name))
		return false
	}
	if toCover.Ref == coverWith.Ref {
		d.Send("You can't cover an item with itself.")
		return false
	}
	if coverWith.Wear != nil && coverWith.Wear.CoveredBy != gamedb.Nothing {
		d.Sendf("Your %s is covered by %s.", coverWith.Name,
			english.AName(g.PlayerName(coverWith.Wear.CoveredBy)))
		return false
	}
	return true
}

// cmdCover: cover <worn clothing> with <clothing object>
func cmdCover(g *Game, d *Descriptor, args string, _ []string) {
	lhs, rhs, ok := strings.Cut(args, " with ")
	if !ok {
		lhs, rhs, ok = strings.Cut(args, "=")
	}
	lhs = strings.TrimSpace(lhs)
	rhs = strings.TrimSpace(rhs)
	if !ok || lhs == "" || rhs == "" {
		d.Send("Usage: cover <worn clothing> with <clothing object>")
		return
	}
	wearer := g.DB.Get(d.Player)
	if wearer == nil {
		return
	}
	g.Resolve(d, lhs, g.SearchInventory(d.Player, lhs),
		fmt.Sprintf("You don't have any %s.", lhs), func(toCoverRef gamedb.DBRef) {
			g.Resolve(d, rhs, g.SearchInventory(d.Player, rhs),
				fmt.Sprintf("You don't have any %s.", rhs), func(coverWithRef gamedb.DBRef) {
					toCover := g.DB.Get(toCoverRef)
					coverWith := g.DB.Get(coverWithRef)
					if toCover == nil || coverWith == nil {
						return
					}
					if !g.IsWorn(wearer, toCover.Ref) {
						d.Sendf("You're not wearing %s.", english.AName(toCover.Name))
						return
					}
					if !g.CanCover(d, toCover, coverWith) {
						return
					}
					// Put on the covering item first if needed.
					if !g.IsWorn(wearer, coverWith.Ref) {
						g.WearItem(wearer, coverWith, "", true)
					}
					toCover.Wear.CoveredBy = coverWith.Ref
					g.PersistObjects(wearer, toCover, coverWith)
					g.echoWear(wearer, fmt.Sprintf("%s covers %s with %s.", wearer.Name,
						english.AName(toCover.Name), english.AName(coverWith.Name)))
				})
		})
}

// cmdUncover: uncover <obj>
func cmdUncover(g *Game, d *Descriptor, args string, _ []string) {
	args = strings.TrimSpace(args)
	if args == "" {
		d.Send("Usage: uncover <worn clothing object>")
		return
	}
	wearer := g.DB.Get(d.Player)
	if wearer == nil {
		return
	}
	matches := g.SearchInventory(d.Player, args)
	g.Resolve(d, args, matches, fmt.Sprintf("You don't have any %s.", args), func(ref gamedb.DBRef) {
		obj := g.DB.Get(ref)
		if obj == nil {
			return
		}
		if !g.IsWorn(wearer, ref) {
			d.Sendf("You're not wearing %s.", english.AName(obj.Name))
			return
		}
		if obj.Wear == nil || obj.Wear.CoveredBy == gamedb.Nothing {
			d.Sendf("Your %s isn't covered by anything.", obj.Name)
			return
		}
		coveredBy := g.DB.Get(obj.Wear.CoveredBy)
		if coveredBy != nil && coveredBy.Wear != nil && coveredBy.Wear.CoveredBy != gamedb.Nothing {
			d.Sendf("Your %s is under too many layers to uncover.", obj.Name)
			return
		}
		obj.Wear.CoveredBy = gamedb.Nothing
		g.PersistObjects(wearer, obj)
		g.echoWear(wearer, fmt.Sprintf("%s uncovers %s.", wearer.Name, english.AName(obj.Name)))
	})
}

// cmdInventory splits carried vs worn items; covered garments are marked
// hidden. Same-named carried things are grouped and pluralized.
func cmdInventory(g *Game, d *Descriptor, _ string, _ []string) {
	player := g.DB.Get(d.Player)
	if player == nil {
		return
	}

	var carried []*gamedb.Object
	for _, obj := range g.DB.ContentsOf(d.Player) {
		if !g.IsWorn(player, obj.Ref) {
			carried = append(carried, obj)
		}
	}

	d.Send("You are carrying:")
	if len(carried) == 0 {
		d.Send(" Nothing.")
	} else {
		for _, name := range groupedNames(carried) {
			d.Send(" " + name)
		}
	}

	d.Send("You are wearing:")
	if len(player.Worn) == 0 {
		d.Send(" Nothing.")
		return
	}
	for _, ref := range player.Worn {
		obj := g.DB.Get(ref)
		if obj == nil {
			continue
		}
		hidden := ""
		if obj.Wear != nil && obj.Wear.CoveredBy != gamedb.Nothing {
			hidden = " (hidden)"
		}
		d.Send(" " + english.AName(obj.Name) + hidden)
	}
}
