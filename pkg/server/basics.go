package server

import (
	"fmt"
	"strings"

	"github.com/crystal-mush/mudbits/pkg/english"
	"github.com/crystal-mush/mudbits/pkg/events"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// canLookIn gates looking inside an object. Containers are marked by a
// viewcon or getfrom lock; plain things stay closed.
func (g *Game) canLookIn(player gamedb.DBRef, obj *gamedb.Object) bool {
	return CheckLock(g, player, obj, "viewcon", false) ||
		CheckLock(g, player, obj, "getfrom", false)
}

// cmdLook: look [[in] <obj>], look <obj>'s <thing>, look <thing> in <obj>
func cmdLook(g *Game, d *Descriptor, args string, _ []string) {
	args = strings.TrimSpace(args)
	player := g.DB.Get(d.Player)
	if player == nil {
		return
	}
	if args == "" || args == "here" {
		g.ShowRoom(d, player.Location)
		return
	}

	// look in <container>
	if rest, ok := strings.CutPrefix(args, "in "); ok {
		g.lookIn(d, strings.TrimSpace(rest))
		return
	}

	// look <holder>'s <thing>
	if holder, thing, ok := strings.Cut(args, "'s "); ok {
		g.lookHeld(d, strings.TrimSpace(holder), strings.TrimSpace(thing))
		return
	}

	// look <thing> in <container>
	if thing, container, ok := cutLast(args, " in "); ok {
		g.lookInside(d, thing, container)
		return
	}

	matches := g.SearchLocal(d.Player, args)
	g.Resolve(d, args, matches, fmt.Sprintf("You don't see any %s here.", args), func(ref gamedb.DBRef) {
		g.ShowObject(d, ref)
	})
}

// lookIn shows a container's contents.
func (g *Game) lookIn(d *Descriptor, name string) {
	matches := g.SearchLocal(d.Player, name)
	g.Resolve(d, name, matches, fmt.Sprintf("You don't see any %s here.", name), func(ref gamedb.DBRef) {
		obj := g.DB.Get(ref)
		if obj == nil {
			return
		}
		if !g.canLookIn(d.Player, obj) {
			d.Send("You can't look there.")
			return
		}
		g.ShowContainer(d, ref)
	})
}

// lookHeld shows a thing carried or worn by someone else, e.g.
// "look Anna's hat". Hidden layers stay hidden.
func (g *Game) lookHeld(d *Descriptor, holderName, thingName string) {
	matches := g.SearchLocal(d.Player, holderName)
	g.Resolve(d, holderName, matches, fmt.Sprintf("You don't see any %s here.", holderName), func(holderRef gamedb.DBRef) {
		holder := g.DB.Get(holderRef)
		if holder == nil {
			return
		}
		if holder.Type != gamedb.TypePlayer && !g.canLookIn(d.Player, holder) {
			d.Send("You can't look there.")
			return
		}
		var candidates []gamedb.DBRef
		for _, ref := range holder.Contents {
			obj := g.DB.Get(ref)
			if obj == nil {
				continue
			}
			if obj.Wear != nil && obj.Wear.CoveredBy != gamedb.Nothing {
				continue
			}
			candidates = append(candidates, ref)
		}
		inner := g.SearchAmong(d.Player, thingName, candidates)
		g.Resolve(d, thingName, inner,
			fmt.Sprintf("%s doesn't have any %s.", holder.Name, thingName), func(ref gamedb.DBRef) {
				g.ShowObject(d, ref)
			})
	})
}

// lookInside shows one thing inside a container, e.g. "look coin in chest".
func (g *Game) lookInside(d *Descriptor, thingName, containerName string) {
	matches := g.SearchLocal(d.Player, containerName)
	g.Resolve(d, containerName, matches, fmt.Sprintf("You don't see any %s here.", containerName), func(containerRef gamedb.DBRef) {
		container := g.DB.Get(containerRef)
		if container == nil {
			return
		}
		if !g.canLookIn(d.Player, container) {
			d.Send("You can't look there.")
			return
		}
		inner := g.SearchAmong(d.Player, thingName, container.Contents)
		g.Resolve(d, thingName, inner,
			fmt.Sprintf("There's no %s in the %s.", thingName, container.Name), func(ref gamedb.DBRef) {
				g.ShowObject(d, ref)
			})
	})
}

// cmdGet: get <obj>, get <obj> from <container>
func cmdGet(g *Game, d *Descriptor, args string, _ []string) {
	args = strings.TrimSpace(args)
	if args == "" {
		d.Send("Get what?")
		return
	}
	if thing, container, ok := cutLast(args, " from "); ok {
		g.getFrom(d, thing, container)
		return
	}

	player := g.DB.Get(d.Player)
	if player == nil {
		return
	}
	room := g.DB.Get(player.Location)
	if room == nil {
		return
	}
	matches := g.SearchAmong(d.Player, args, room.Contents)
	g.Resolve(d, args, matches, fmt.Sprintf("You don't see any %s here.", args), func(ref gamedb.DBRef) {
		g.pickUp(d, player, ref, "")
	})
}

// pickUp moves an object into the player's inventory after lock checks.
// fromName names the container for the room echo, "" for the floor.
func (g *Game) pickUp(d *Descriptor, player *gamedb.Object, ref gamedb.DBRef, fromName string) {
	obj := g.DB.Get(ref)
	if obj == nil {
		return
	}
	if ref == d.Player {
		d.Send("You can't get yourself.")
		return
	}
	if obj.Type != gamedb.TypeThing {
		d.Send("You can't pick that up.")
		return
	}
	if !CheckLock(g, d.Player, obj, "get", true) {
		msg := obj.GetAttr("get_err_msg")
		if msg == "" {
			msg = "You can't get that."
		}
		d.Send(msg)
		return
	}
	// Placed decor can only be taken by someone allowed to redecorate.
	if obj.Placed != "" {
		if room := g.DB.Get(obj.Location); room != nil && !g.CanDecorate(d.Player, room) {
			d.Send("You can't get that.")
			return
		}
	}
	if !g.MoveObject(ref, d.Player) {
		d.Send("You can't pick that up.")
		return
	}
	d.Sendf("You get the %s.", obj.Name)
	echo := fmt.Sprintf("%s picks up %s.", player.Name, english.AName(obj.Name))
	if fromName != "" {
		echo = fmt.Sprintf("%s gets %s from the %s.", player.Name, english.AName(obj.Name), fromName)
	}
	g.EmitRoomExcept(player.Location, d.Player, events.Event{Type: events.EvRoom, Text: echo})
}

// getFrom takes a thing out of a container.
func (g *Game) getFrom(d *Descriptor, thingName, containerName string) {
	player := g.DB.Get(d.Player)
	if player == nil {
		return
	}
	matches := g.SearchLocal(d.Player, containerName)
	g.Resolve(d, containerName, matches, fmt.Sprintf("You don't see any %s here.", containerName), func(containerRef gamedb.DBRef) {
		container := g.DB.Get(containerRef)
		if container == nil {
			return
		}
		if !CheckLock(g, d.Player, container, "getfrom", false) {
			d.Send("You can't get things from there.")
			return
		}
		inner := g.SearchAmong(d.Player, thingName, container.Contents)
		g.Resolve(d, thingName, inner,
			fmt.Sprintf("There's no %s in the %s.", thingName, container.Name), func(ref gamedb.DBRef) {
				g.pickUp(d, player, ref, container.Name)
			})
	})
}

// cmdDrop: drop <obj>. Worn clothing is taken off first.
func cmdDrop(g *Game, d *Descriptor, args string, _ []string) {
	args = strings.TrimSpace(args)
	if args == "" {
		d.Send("Drop what?")
		return
	}
	player := g.DB.Get(d.Player)
	if player == nil || player.Location == gamedb.Nothing {
		return
	}
	matches := g.SearchInventory(d.Player, args)
	g.Resolve(d, args, matches, fmt.Sprintf("You don't have any %s.", args), func(ref gamedb.DBRef) {
		obj := g.DB.Get(ref)
		if obj == nil {
			return
		}
		if g.IsWorn(player, ref) {
			if ok, msg := g.CanRemoveWorn(player, obj); !ok {
				d.Send(msg)
				return
			}
			g.echoWear(player, g.RemoveWorn(player, obj, false))
		}
		if !g.MoveObject(ref, player.Location) {
			d.Send("You can't drop that.")
			return
		}
		d.Sendf("You drop the %s.", obj.Name)
		g.EmitRoomExcept(player.Location, d.Player, events.Event{
			Type: events.EvRoom,
			Text: fmt.Sprintf("%s drops %s.", player.Name, english.AName(obj.Name)),
		})
	})
}

// cmdGive: give <obj> to <player>. Worn clothing is taken off first.
func cmdGive(g *Game, d *Descriptor, args string, _ []string) {
	lhs, rhs, ok := cutLast(args, " to ")
	if !ok {
		lhs, rhs, ok = strings.Cut(args, "=")
		lhs = strings.TrimSpace(lhs)
		rhs = strings.TrimSpace(rhs)
	}
	if !ok || lhs == "" || rhs == "" {
		d.Send("Usage: give <object> to <player>")
		return
	}
	player := g.DB.Get(d.Player)
	if player == nil {
		return
	}
	g.Resolve(d, lhs, g.SearchInventory(d.Player, lhs),
		fmt.Sprintf("You don't have any %s.", lhs), func(ref gamedb.DBRef) {
			g.Resolve(d, rhs, g.SearchLocal(d.Player, rhs),
				fmt.Sprintf("You don't see any %s here.", rhs), func(targetRef gamedb.DBRef) {
					obj := g.DB.Get(ref)
					target := g.DB.Get(targetRef)
					if obj == nil || target == nil {
						return
					}
					if target.Type != gamedb.TypePlayer {
						d.Sendf("You can't give things to the %s.", target.Name)
						return
					}
					if targetRef == d.Player {
						d.Send("You keep it to yourself.")
						return
					}
					if g.IsWorn(player, ref) {
						if ok, msg := g.CanRemoveWorn(player, obj); !ok {
							d.Send(msg)
							return
						}
						g.echoWear(player, g.RemoveWorn(player, obj, false))
					}
					if !g.MoveObject(ref, targetRef) {
						d.Send("You can't give that away.")
						return
					}
					d.Sendf("You give the %s to %s.", obj.Name, target.Name)
					g.Conns.SendToPlayer(targetRef, fmt.Sprintf("%s gives you %s.",
						player.Name, english.AName(obj.Name)))
					g.EmitRoomExcept(player.Location, d.Player, events.Event{
						Type: events.EvRoom,
						Text: fmt.Sprintf("%s gives %s to %s.", player.Name,
							english.AName(obj.Name), target.Name),
					})
				})
		})
}

// cmdPut: put <obj> in|on <container>. The preposition carries into the
// room echo.
func cmdPut(g *Game, d *Descriptor, args string, _ []string) {
	preposition := "in"
	lhs, rhs, ok := cutLast(args, " in ")
	if !ok {
		lhs, rhs, ok = cutLast(args, " on ")
		preposition = "on"
	}
	if !ok || lhs == "" || rhs == "" {
		d.Send("Usage: put <object> in <container>")
		return
	}
	player := g.DB.Get(d.Player)
	if player == nil {
		return
	}
	g.Resolve(d, lhs, g.SearchInventory(d.Player, lhs),
		fmt.Sprintf("You don't have any %s.", lhs), func(ref gamedb.DBRef) {
			g.Resolve(d, rhs, g.SearchLocal(d.Player, rhs),
				fmt.Sprintf("You don't see any %s here.", rhs), func(containerRef gamedb.DBRef) {
					obj := g.DB.Get(ref)
					container := g.DB.Get(containerRef)
					if obj == nil || container == nil {
						return
					}
					if containerRef == ref {
						d.Send("You can't put something inside itself.")
						return
					}
					if !CheckLock(g, d.Player, container, "getfrom", false) {
						d.Sendf("You can't put things %s the %s.", preposition, container.Name)
						return
					}
					if g.IsWorn(player, ref) {
						if ok, msg := g.CanRemoveWorn(player, obj); !ok {
							d.Send(msg)
							return
						}
						g.echoWear(player, g.RemoveWorn(player, obj, false))
					}
					if !g.MoveObject(ref, containerRef) {
						d.Send("You can't put that there.")
						return
					}
					d.Sendf("You put the %s %s the %s.", obj.Name, preposition, container.Name)
					g.EmitRoomExcept(player.Location, d.Player, events.Event{
						Type: events.EvRoom,
						Text: fmt.Sprintf("%s puts %s %s the %s.", player.Name,
							english.AName(obj.Name), preposition, container.Name),
					})
				})
		})
}

// cmdUse: use <obj> [on <target>]. Usable things carry a use_msg attribute
// (shown to the user) and optionally use_msg_room (shown to the room, with
// %s standing in for the user's name).
func cmdUse(g *Game, d *Descriptor, args string, _ []string) {
	lhs, rhs, hasTarget := cutLast(strings.TrimSpace(args), " on ")
	if !hasTarget {
		lhs = strings.TrimSpace(args)
	}
	if lhs == "" {
		d.Send("Use what?")
		return
	}
	player := g.DB.Get(d.Player)
	if player == nil {
		return
	}
	matches := g.SearchLocal(d.Player, lhs)
	g.Resolve(d, lhs, matches, fmt.Sprintf("You don't see any %s here.", lhs), func(ref gamedb.DBRef) {
		obj := g.DB.Get(ref)
		if obj == nil {
			return
		}
		useMsg := obj.GetAttr("use_msg")
		if useMsg == "" {
			d.Send("That is not usable.")
			return
		}
		apply := func(targetName string) {
			msg := useMsg
			if targetName != "" {
				msg = fmt.Sprintf("%s (on the %s)", useMsg, targetName)
			}
			d.Send(msg)
			if roomMsg := obj.GetAttr("use_msg_room"); roomMsg != "" {
				// The attribute is player-settable text, not a format string.
				g.EmitRoomExcept(player.Location, d.Player, events.Event{
					Type: events.EvRoom,
					Text: strings.ReplaceAll(roomMsg, "%s", player.Name),
				})
			}
		}
		if !hasTarget {
			apply("")
			return
		}
		targets := g.SearchLocal(d.Player, rhs)
		g.Resolve(d, rhs, targets, fmt.Sprintf("You don't see any %s here.", rhs), func(targetRef gamedb.DBRef) {
			apply(g.PlayerName(targetRef))
		})
	})
}

// cutLast splits s around the last occurrence of sep, trimming both halves.
func cutLast(s, sep string) (before, after string, found bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(sep):]), true
}
