package server

import (
	"strings"
	"testing"
	"time"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

func plantFixture(t *testing.T, env *testEnv) *gamedb.Object {
	t.Helper()
	g := env.game
	plant := g.DB.NewObject(gamedb.TypeThing, "seed", env.wizard)
	g.DB.MoveTo(plant.Ref, env.room)
	return plant
}

func TestGrowthStartAndAdd(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	plant := plantFixture(t, env)
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@growth/start seed")
	if out := getOutput(env.player); !strings.Contains(out, "The seed begins to grow.") {
		t.Fatalf("start output = %q", out)
	}
	if plant.Growth == nil {
		t.Fatal("growth state not created")
	}
	if g.Queue.Len() == 0 {
		t.Error("no growth tick scheduled")
	}

	g.DispatchCommand(env.player, "@growth/add seed = sprout,60,sprout,A pale green sprout.")
	clearOutput(env.player)
	g.DispatchCommand(env.player, "@growth seed")
	out := getOutput(env.player)
	if !strings.Contains(out, "sprout") {
		t.Errorf("status missing stage: %q", out)
	}
}

func TestGrowthAdvanceAppliesStage(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	plant := plantFixture(t, env)
	now := time.Now().Unix()
	plant.Growth = gamedb.NewGrowthState(now - 120)
	plant.Growth.AddStage(gamedb.GrowthStage{Name: "sprout", Age: 60, Key: "sprout", Desc: "A pale green sprout."}, false)
	clearOutput(env.bob)

	g.GrowthTick(plant.Ref, false)
	if plant.Name != "sprout" {
		t.Errorf("name = %q after stage", plant.Name)
	}
	if plant.Desc != "A pale green sprout." {
		t.Errorf("desc = %q after stage", plant.Desc)
	}
	if out := getOutput(env.bob); !strings.Contains(out, "The seed grows into a sprout.") {
		t.Errorf("stage announcement = %q", out)
	}
}

func TestGrowthPauseStopsAging(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	plant := plantFixture(t, env)
	now := time.Now().Unix()
	plant.Growth = gamedb.NewGrowthState(now - 120)
	plant.Growth.Paused = true
	plant.Growth.AddStage(gamedb.GrowthStage{Name: "sprout", Age: 60, Key: "sprout"}, false)

	g.GrowthTick(plant.Ref, false)
	if plant.Name != "seed" {
		t.Errorf("paused plant advanced to %q", plant.Name)
	}
}

func TestGrowthForceReapplies(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	plant := plantFixture(t, env)
	now := time.Now().Unix()
	plant.Growth = gamedb.NewGrowthState(now - 120)
	plant.Growth.AddStage(gamedb.GrowthStage{Name: "sprout", Age: 60, Key: "sprout"}, false)
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@growth/force seed")
	if plant.Name != "sprout" {
		t.Errorf("force did not apply stage, name = %q", plant.Name)
	}
}

func TestGrowthStopCancelsTasks(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	plant := plantFixture(t, env)
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@growth/start seed")
	if g.Queue.Len() == 0 {
		t.Fatal("no tick scheduled")
	}
	g.DispatchCommand(env.player, "@growth/stop seed")
	if plant.Growth != nil {
		t.Error("growth state not removed")
	}
	if g.Queue.Len() != 0 {
		t.Error("growth tick still scheduled after stop")
	}
}

func TestGrowthPermissionDenied(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	plantFixture(t, env)
	clearOutput(env.bob)

	g.DispatchCommand(env.bob, "@growth/start seed")
	if out := getOutput(env.bob); !strings.Contains(out, "Permission denied.") {
		t.Errorf("non-owner output = %q", out)
	}
}

func TestResumeGrowthReschedules(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	plant := plantFixture(t, env)
	plant.Growth = gamedb.NewGrowthState(time.Now().Unix())
	plant.Growth.AddStage(gamedb.GrowthStage{Name: "sprout", Age: 60}, false)

	if n := g.ResumeGrowth(); n != 1 {
		t.Errorf("resumed = %d, want 1", n)
	}
	if g.Queue.Len() != 1 {
		t.Errorf("scheduled = %d, want 1", g.Queue.Len())
	}
}
