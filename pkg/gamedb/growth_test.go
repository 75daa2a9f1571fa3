package gamedb

import "testing"

func seedling() *GrowthState {
	g := NewGrowthState(1000)
	g.AddStage(GrowthStage{Name: "sprout", Age: 60, Key: "sprout"}, false)
	g.AddStage(GrowthStage{Name: "sapling", Age: 300, Key: "sapling"}, false)
	g.AddStage(GrowthStage{Name: "tree", Age: 900, Key: "tree"}, false)
	return g
}

func TestAddStageSortsByAge(t *testing.T) {
	g := NewGrowthState(0)
	g.AddStage(GrowthStage{Name: "tree", Age: 900}, false)
	g.AddStage(GrowthStage{Name: "sprout", Age: 60}, false)

	names := g.StageNames()
	if len(names) != 2 || names[0] != "sprout" || names[1] != "tree" {
		t.Errorf("stage order = %v", names)
	}

	if g.AddStage(GrowthStage{Name: "sprout", Age: 30}, false) {
		t.Error("duplicate stage added without force")
	}
	if !g.AddStage(GrowthStage{Name: "sprout", Age: 30, Desc: "changed"}, true) {
		t.Error("forced replace refused")
	}
	if g.StageByName("sprout").Desc != "changed" {
		t.Error("forced replace did not apply")
	}
}

func TestAdvanceThroughStages(t *testing.T) {
	g := seedling()

	// Before the first threshold nothing applies.
	apply, again := g.Advance(1030, false)
	if apply != nil || !again {
		t.Fatalf("early advance = %v, %v", apply, again)
	}
	if g.Age != 30 {
		t.Errorf("age = %d", g.Age)
	}

	// Crossing the first threshold applies the sprout stage.
	apply, again = g.Advance(1090, false)
	if apply == nil || apply.Name != "sprout" || !again {
		t.Fatalf("sprout advance = %v, %v", apply, again)
	}
	if g.Stage != "sprout" || g.NextAge != 300 {
		t.Errorf("state = %q next %d", g.Stage, g.NextAge)
	}

	// Jumping far ahead lands on the latest passed stage, not each one.
	apply, again = g.Advance(2000, false)
	if apply == nil || apply.Name != "tree" {
		t.Fatalf("jump advance = %v", apply)
	}
	if again {
		t.Error("final stage still wants ticks")
	}
	if !g.AtFinalStage() {
		t.Error("not at final stage")
	}

	// Done growing: nothing more to apply.
	apply, again = g.Advance(3000, false)
	if apply != nil || again {
		t.Errorf("post-final advance = %v, %v", apply, again)
	}
}

func TestAdvancePaused(t *testing.T) {
	g := seedling()
	g.Paused = true

	apply, again := g.Advance(2000, false)
	if apply != nil || !again {
		t.Fatalf("paused advance = %v, %v", apply, again)
	}
	if g.Age != 0 {
		t.Errorf("paused state aged to %d", g.Age)
	}

	// Unpausing does not credit the paused wall time.
	g.Paused = false
	apply, _ = g.Advance(2030, false)
	if apply != nil {
		t.Errorf("advance after unpause applied %v", apply)
	}
	if g.Age != 30 {
		t.Errorf("age after unpause = %d", g.Age)
	}
}

func TestAdvanceForceReapplies(t *testing.T) {
	g := seedling()
	g.Advance(1090, false)
	if g.Stage != "sprout" {
		t.Fatalf("setup stage = %q", g.Stage)
	}

	apply, again := g.Advance(1091, true)
	if apply == nil || apply.Name != "sprout" || !again {
		t.Errorf("forced advance = %v, %v", apply, again)
	}
}

func TestAdvanceWithNoStages(t *testing.T) {
	g := NewGrowthState(1000)
	apply, again := g.Advance(5000, false)
	if apply != nil || !again {
		t.Errorf("stageless advance = %v, %v", apply, again)
	}
}

func TestRemoveStage(t *testing.T) {
	g := seedling()
	if !g.RemoveStage("sapling") {
		t.Fatal("remove failed")
	}
	if g.StageByName("sapling") != nil {
		t.Error("stage still present")
	}
	if g.RemoveStage("sapling") {
		t.Error("second remove succeeded")
	}
}
