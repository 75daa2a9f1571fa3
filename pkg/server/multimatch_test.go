package server

import (
	"strings"
	"testing"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// twoRocks places a second rock in the room so "get rock" is ambiguous.
func twoRocks(t *testing.T, env *testEnv) (*gamedb.Object, *gamedb.Object) {
	t.Helper()
	first := env.thing(t)
	second := env.game.DB.NewObject(gamedb.TypeThing, "rock", env.wizard)
	env.game.DB.MoveTo(second.Ref, env.room)
	return first, second
}

func TestMultimatchPrompt(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	twoRocks(t, env)
	clearOutput(env.player)

	g.DispatchCommand(env.player, "get rock")
	out := getOutput(env.player)
	if !strings.Contains(out, "Which rock do you mean?") {
		t.Fatalf("prompt missing: %q", out)
	}
	if !strings.Contains(out, " 1. rock") || !strings.Contains(out, " 2. rock") {
		t.Errorf("menu entries missing: %q", out)
	}
	if !strings.Contains(out, "Enter a number (or c to cancel):") {
		t.Errorf("instruction line missing: %q", out)
	}
	if env.player.Pending == nil {
		t.Error("no pending prompt parked on descriptor")
	}
}

func TestMultimatchSelect(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	_, second := twoRocks(t, env)
	g.DispatchCommand(env.player, "get rock")
	clearOutput(env.player)

	g.HandlePendingMatch(env.player, "2")
	if out := getOutput(env.player); !strings.Contains(out, "You get the rock.") {
		t.Errorf("select output = %q", out)
	}
	if second.Location != env.wizard {
		t.Errorf("second rock location = %v, want inventory", second.Location)
	}
	if env.player.Pending != nil {
		t.Error("prompt not cleared after selection")
	}
}

func TestMultimatchCancel(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	first, second := twoRocks(t, env)
	g.DispatchCommand(env.player, "get rock")
	clearOutput(env.player)

	g.HandlePendingMatch(env.player, "c")
	if out := getOutput(env.player); !strings.Contains(out, "Action cancelled.") {
		t.Errorf("cancel output = %q", out)
	}
	if first.Location != env.room || second.Location != env.room {
		t.Error("cancelled action still moved an object")
	}
}

func TestMultimatchInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	twoRocks(t, env)

	for _, input := range []string{"0", "3", "banana"} {
		g.DispatchCommand(env.player, "get rock")
		clearOutput(env.player)
		g.HandlePendingMatch(env.player, input)
		if out := getOutput(env.player); !strings.Contains(out, "Invalid option, cancelling.") {
			t.Errorf("input %q output = %q", input, out)
		}
		if env.player.Pending != nil {
			t.Errorf("input %q left prompt pending", input)
		}
	}
}

func TestMultimatchWornAndCarriedMarkers(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	worn := env.newGarment("bandana", "accessory", env.wizard)
	g.DispatchCommand(env.player, "wear bandana")
	carried := g.DB.NewObject(gamedb.TypeThing, "bandana", env.wizard)
	g.DB.MoveTo(carried.Ref, env.wizard)
	clearOutput(env.player)

	g.DispatchCommand(env.player, "look bandana")
	out := getOutput(env.player)
	if !strings.Contains(out, "(worn)") {
		t.Errorf("worn marker missing: %q", out)
	}
	if !strings.Contains(out, "(carried)") {
		t.Errorf("carried marker missing: %q", out)
	}
	_ = worn
}

func TestExactMatchBeatsPrefix(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	env.thing(t)
	exact := g.DB.NewObject(gamedb.TypeThing, "roc", env.wizard)
	g.DB.MoveTo(exact.Ref, env.room)
	clearOutput(env.player)

	// "roc" matches one object exactly and the other by prefix; the exact
	// match wins without a menu.
	g.DispatchCommand(env.player, "get roc")
	if out := getOutput(env.player); strings.Contains(out, "Which") {
		t.Errorf("exact match still prompted: %q", out)
	}
	if exact.Location != env.wizard {
		t.Errorf("exact match not taken: location = %v", exact.Location)
	}
}
