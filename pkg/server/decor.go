package server

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/crystal-mush/mudbits/pkg/english"
	"github.com/crystal-mush/mudbits/pkg/events"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// Maximum character length of placement position strings.
const decorPositionMaxLength = 50

// CanDecorate checks the room's decorate lock. Unlocked rooms only allow
// their owner (and wizards) to arrange decor.
func (g *Game) CanDecorate(player gamedb.DBRef, room *gamedb.Object) bool {
	return CheckLock(g, player, room, "decorate", room.Owner == player)
}

// cmdPlace: place <obj> [= position]
// Puts a thing into the room description at a position, e.g.
// "place painting = on the wall". Placed things stop showing in the room's
// contents line and appear in the description instead.
func cmdPlace(g *Game, d *Descriptor, args string, _ []string) {
	lhs, rhs, _ := strings.Cut(args, "=")
	lhs = strings.TrimSpace(lhs)
	position := strings.TrimSpace(rhs)
	if lhs == "" {
		d.Send("Usage: place <object> [= position]")
		return
	}
	position = strings.TrimRight(position, ".!?,;:")
	if position == "" {
		position = "here"
	}
	if len(position) > decorPositionMaxLength {
		d.Sendf("Please keep your positional description below %d characters.", decorPositionMaxLength)
		return
	}

	player := g.DB.Get(d.Player)
	if player == nil || player.Location == gamedb.Nothing {
		return
	}
	room := g.DB.Get(player.Location)
	if room == nil {
		return
	}
	if !g.CanDecorate(d.Player, room) {
		d.Send("You can't decorate here.")
		return
	}

	matches := g.SearchLocal(d.Player, lhs)
	g.Resolve(d, lhs, matches, fmt.Sprintf("You don't see any %s here.", lhs), func(ref gamedb.DBRef) {
		obj := g.DB.Get(ref)
		if obj == nil {
			return
		}
		if obj.Type != gamedb.TypeThing {
			d.Send("You can't place that.")
			return
		}
		if obj.Location != room.Ref {
			if !g.MoveObject(ref, room.Ref) {
				d.Sendf("You can't put the %s down.", obj.Name)
				return
			}
		}
		obj.Placed = position
		g.PersistObject(obj)
		g.UpdateDecor(room.Ref)
		d.Sendf("You place the %s %s.", obj.Name, position)
		g.EmitRoomExcept(room.Ref, d.Player, events.Event{
			Type: events.EvDecor,
			Text: fmt.Sprintf("%s places the %s %s.", player.Name, obj.Name, position),
		})
	})
}

// decorSentence builds one description sentence for the things placed at a
// position. Word order is randomly inverted now and then so long decor
// descriptions read less mechanically.
func decorSentence(position string, names []string, count int) string {
	list := english.ListToString(names)
	verb := "is"
	if count > 1 {
		verb = "are"
	}
	var sentence string
	if rand.Intn(4) == 0 {
		sentence = fmt.Sprintf("%s %s %s.", position, verb, list)
	} else {
		sentence = fmt.Sprintf("%s %s %s.", list, verb, position)
	}
	return english.UpperFirst(sentence)
}

// UpdateDecor rebuilds a room's decor description from its placed contents
// and stores it in the room's decor_desc attribute.
func (g *Game) UpdateDecor(room gamedb.DBRef) {
	roomObj := g.DB.Get(room)
	if roomObj == nil {
		return
	}

	// Group placed things by position, then same-named things by name.
	byPosition := make(map[string]map[string]int)
	var positions []string
	for _, obj := range g.DB.ContentsOf(room) {
		if obj.Type != gamedb.TypeThing || obj.Placed == "" {
			continue
		}
		if byPosition[obj.Placed] == nil {
			byPosition[obj.Placed] = make(map[string]int)
			positions = append(positions, obj.Placed)
		}
		byPosition[obj.Placed][obj.Name]++
	}
	sort.Strings(positions)

	var sentences []string
	for _, position := range positions {
		group := byPosition[position]
		var names []string
		count := 0
		for name := range group {
			names = append(names, name)
		}
		sort.Strings(names)
		for i, name := range names {
			n := group[name]
			count += n
			if n == 1 {
				names[i] = english.AName(name)
			} else {
				names[i] = english.NumberedName(n, name)
			}
		}
		sentences = append(sentences, decorSentence(position, names, count))
	}

	roomObj.SetAttr("decor_desc", strings.Join(sentences, " "))
	g.PersistObject(roomObj)
}
