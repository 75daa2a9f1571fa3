package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/crystal-mush/mudbits/pkg/english"
	"github.com/crystal-mush/mudbits/pkg/events"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// How often a growing object re-checks its age.
const growthTickInterval = time.Minute

// ScheduleGrowth queues the next growth tick for an object.
func (g *Game) ScheduleGrowth(ref gamedb.DBRef) {
	g.Queue.AddAfter(ref, "growth", growthTickInterval, func() {
		g.GrowthTick(ref, false)
	})
}

// ResumeGrowth reschedules ticks for every growing object after a restart.
func (g *Game) ResumeGrowth() int {
	resumed := 0
	for ref, obj := range g.DB.Objects {
		if obj.Growth == nil || obj.IsGoing() {
			continue
		}
		if obj.Growth.AtFinalStage() {
			continue
		}
		g.ScheduleGrowth(ref)
		resumed++
	}
	return resumed
}

// GrowthTick advances an object's growth clock, applying any stage it has
// grown into and rescheduling while there is more growing to do.
func (g *Game) GrowthTick(ref gamedb.DBRef, force bool) {
	obj := g.DB.Get(ref)
	if obj == nil || obj.IsGoing() || obj.Growth == nil {
		return
	}
	apply, again := obj.Growth.Advance(time.Now().Unix(), force)
	if apply != nil {
		g.applyGrowthStage(obj, apply)
	}
	g.PersistObject(obj)
	if again {
		g.ScheduleGrowth(ref)
	}
}

// applyGrowthStage renames and re-describes the object for its new stage
// and announces the change to the room.
func (g *Game) applyGrowthStage(obj *gamedb.Object, st *gamedb.GrowthStage) {
	oldName := obj.Name
	if st.Key != "" {
		obj.Name = st.Key
	}
	if st.Desc != "" {
		obj.Desc = st.Desc
	}
	for key, value := range st.Attrs {
		obj.SetAttr(key, value)
	}
	if obj.Location == gamedb.Nothing {
		return
	}
	var msg string
	if st.Key != "" && st.Key != oldName {
		msg = fmt.Sprintf("The %s grows into %s.", oldName, english.AName(obj.Name))
	} else {
		msg = fmt.Sprintf("The %s changes.", obj.Name)
	}
	g.EmitRoom(obj.Location, events.Event{Type: events.EvGrowth, Text: msg})
}

// canTendGrowth limits growth administration to the owner and wizards.
func (g *Game) canTendGrowth(player gamedb.DBRef, obj *gamedb.Object) bool {
	return obj.Owner == player || Wizard(g, player)
}

// cmdGrowth: @growth[/switch] <obj> [= args]
//
//	@growth <obj>                                  show growth status
//	@growth/start <obj>                            begin aging
//	@growth/add <obj> = <stage>,<age>,<name>,<desc> add or replace a stage
//	@growth/remove <obj> = <stage>                 remove a stage
//	@growth/pause <obj>                            suspend aging
//	@growth/resume <obj>                           resume aging
//	@growth/force <obj>                            re-apply the current stage now
//	@growth/stop <obj>                             remove growth entirely
func cmdGrowth(g *Game, d *Descriptor, args string, switches []string) {
	lhs, rhs, _ := strings.Cut(args, "=")
	lhs = strings.TrimSpace(lhs)
	rhs = strings.TrimSpace(rhs)
	if lhs == "" {
		d.Send("Usage: @growth[/switch] <object> [= args]")
		return
	}
	sw := ""
	if len(switches) > 0 {
		sw = switches[0]
	}

	matches := g.SearchLocal(d.Player, lhs)
	g.Resolve(d, lhs, matches, fmt.Sprintf("You don't see any %s here.", lhs), func(ref gamedb.DBRef) {
		obj := g.DB.Get(ref)
		if obj == nil {
			return
		}
		if !g.canTendGrowth(d.Player, obj) {
			d.Send("Permission denied.")
			return
		}

		switch sw {
		case "":
			g.showGrowth(d, obj)
		case "start":
			if obj.Growth != nil {
				d.Sendf("The %s is already growing.", obj.Name)
				return
			}
			obj.Growth = gamedb.NewGrowthState(time.Now().Unix())
			g.PersistObject(obj)
			g.ScheduleGrowth(ref)
			d.Sendf("The %s begins to grow.", obj.Name)
		case "add":
			g.addGrowthStage(d, obj, rhs)
		case "remove":
			if obj.Growth == nil {
				d.Sendf("The %s isn't growing.", obj.Name)
				return
			}
			if !obj.Growth.RemoveStage(rhs) {
				d.Sendf("The %s has no stage named '%s'.", obj.Name, rhs)
				return
			}
			g.PersistObject(obj)
			d.Sendf("Removed stage '%s' from the %s.", rhs, obj.Name)
		case "pause":
			if obj.Growth == nil {
				d.Sendf("The %s isn't growing.", obj.Name)
				return
			}
			obj.Growth.Paused = true
			g.PersistObject(obj)
			d.Sendf("The %s stops aging.", obj.Name)
		case "resume":
			if obj.Growth == nil {
				d.Sendf("The %s isn't growing.", obj.Name)
				return
			}
			obj.Growth.Paused = false
			obj.Growth.LastUpdate = time.Now().Unix()
			g.PersistObject(obj)
			g.ScheduleGrowth(ref)
			d.Sendf("The %s resumes aging.", obj.Name)
		case "force":
			if obj.Growth == nil {
				d.Sendf("The %s isn't growing.", obj.Name)
				return
			}
			g.Queue.Cancel(ref, "growth")
			g.GrowthTick(ref, true)
			d.Sendf("Growth re-applied to the %s.", g.PlayerName(ref))
		case "stop":
			if obj.Growth == nil {
				d.Sendf("The %s isn't growing.", obj.Name)
				return
			}
			obj.Growth = nil
			g.Queue.Cancel(ref, "growth")
			g.PersistObject(obj)
			d.Sendf("The %s stops growing.", obj.Name)
		default:
			d.Sendf("Unknown switch: /%s", sw)
		}
	})
}

// addGrowthStage parses "<stage>,<age seconds>,<new name>,<new desc>".
// The name and desc parts are optional.
func (g *Game) addGrowthStage(d *Descriptor, obj *gamedb.Object, spec string) {
	parts := strings.SplitN(spec, ",", 4)
	if len(parts) < 2 {
		d.Send("Usage: @growth/add <object> = <stage>,<age seconds>[,<new name>[,<new desc>]]")
		return
	}
	name := strings.TrimSpace(parts[0])
	age, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if name == "" || err != nil || age < 0 {
		d.Send("Stage needs a name and a non-negative age in seconds.")
		return
	}
	st := gamedb.GrowthStage{Name: name, Age: age}
	if len(parts) > 2 {
		st.Key = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		st.Desc = strings.TrimSpace(parts[3])
	}

	if obj.Growth == nil {
		obj.Growth = gamedb.NewGrowthState(time.Now().Unix())
		g.ScheduleGrowth(obj.Ref)
	}
	if !obj.Growth.AddStage(st, false) {
		obj.Growth.AddStage(st, true)
		d.Sendf("Replaced stage '%s' on the %s.", name, obj.Name)
	} else {
		d.Sendf("Added stage '%s' to the %s.", name, obj.Name)
	}
	g.PersistObject(obj)
}

// showGrowth prints an object's growth status and stage table.
func (g *Game) showGrowth(d *Descriptor, obj *gamedb.Object) {
	if obj.Growth == nil {
		d.Sendf("The %s isn't growing.", obj.Name)
		return
	}
	gr := obj.Growth
	stage := gr.Stage
	if stage == "" {
		stage = "(none yet)"
	}
	state := "growing"
	if gr.Paused {
		state = "paused"
	} else if gr.AtFinalStage() {
		state = "fully grown"
	}
	d.Sendf("%s: stage %s, age %ds, %s", obj.Name, stage, gr.Age, state)
	for _, st := range gr.Stages {
		line := fmt.Sprintf(" %6ds  %s", st.Age, st.Name)
		if st.Key != "" {
			line += " -> " + st.Key
		}
		if st.Name == gr.Stage {
			line += " (current)"
		}
		d.Send(line)
	}
}
