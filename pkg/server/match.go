package server

import (
	"strconv"
	"strings"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// matchName checks a search string against an object name. Names may carry
// semicolon-separated aliases ("painting;art"). Exact beats prefix.
func matchName(name, search string) (exact, prefix bool) {
	search = strings.ToLower(search)
	for _, part := range strings.Split(strings.ToLower(name), ";") {
		part = strings.TrimSpace(part)
		if part == search {
			return true, true
		}
		if strings.HasPrefix(part, search) {
			prefix = true
		}
	}
	return false, prefix
}

// SearchAmong matches a search string against a candidate list and returns
// every hit. Exact name matches suppress prefix-only matches.
func (g *Game) SearchAmong(looker gamedb.DBRef, search string, candidates []gamedb.DBRef) []gamedb.DBRef {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil
	}
	if search == "me" {
		return []gamedb.DBRef{looker}
	}
	if strings.HasPrefix(search, "#") {
		if n, err := strconv.Atoi(search[1:]); err == nil {
			ref := gamedb.DBRef(n)
			if obj := g.DB.Get(ref); obj != nil && !obj.IsGoing() {
				return []gamedb.DBRef{ref}
			}
			return nil
		}
	}

	var exacts, prefixes []gamedb.DBRef
	for _, ref := range candidates {
		obj := g.DB.Get(ref)
		if obj == nil || obj.IsGoing() {
			continue
		}
		exact, prefix := matchName(obj.Name, search)
		if exact {
			exacts = append(exacts, ref)
		} else if prefix {
			prefixes = append(prefixes, ref)
		}
	}
	if len(exacts) > 0 {
		return exacts
	}
	return prefixes
}

// LocalCandidates returns what a player can reach by name: their inventory
// plus their location's contents and the location itself via "here".
func (g *Game) LocalCandidates(player gamedb.DBRef) []gamedb.DBRef {
	obj := g.DB.Get(player)
	if obj == nil {
		return nil
	}
	out := append([]gamedb.DBRef{}, obj.Contents...)
	if loc := g.DB.Get(obj.Location); loc != nil {
		out = append(out, loc.Contents...)
	}
	return out
}

// SearchLocal matches against the player's inventory and room.
func (g *Game) SearchLocal(player gamedb.DBRef, search string) []gamedb.DBRef {
	if search == "here" {
		if obj := g.DB.Get(player); obj != nil && obj.Location != gamedb.Nothing {
			return []gamedb.DBRef{obj.Location}
		}
		return nil
	}
	return g.SearchAmong(player, search, g.LocalCandidates(player))
}

// SearchInventory matches only against the player's own contents.
func (g *Game) SearchInventory(player gamedb.DBRef, search string) []gamedb.DBRef {
	obj := g.DB.Get(player)
	if obj == nil {
		return nil
	}
	return g.SearchAmong(player, search, obj.Contents)
}
