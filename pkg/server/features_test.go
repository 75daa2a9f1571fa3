package server

import (
	"strings"
	"testing"
)

func TestFeatureAddAndView(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@feature/add me = eyes:green")
	if out := getOutput(env.player); !strings.Contains(out, "Feature 'eyes' added: green eyes") {
		t.Errorf("add output = %q", out)
	}

	g.DispatchCommand(env.player, "@feature me")
	if out := getOutput(env.player); !strings.Contains(out, "eyes: green eyes") {
		t.Errorf("list output = %q", out)
	}
}

func TestFeatureFormatAndSet(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@feature/format me = hair:{length} {color}")
	g.DispatchCommand(env.player, "@feature/set me = hair:length=long")
	g.DispatchCommand(env.player, "@feature/set me = hair:color=black")
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@feature me")
	if out := getOutput(env.player); !strings.Contains(out, "hair: long black hair") {
		t.Errorf("formatted feature = %q", out)
	}

	clearOutput(env.player)
	g.DispatchCommand(env.player, "@feature/options me = hair")
	out := getOutput(env.player)
	if !strings.Contains(out, "color") || !strings.Contains(out, "length") {
		t.Errorf("options output = %q", out)
	}
}

func TestFeatureSoftSetAndReset(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	wizard := g.DB.Get(env.wizard)

	g.DispatchCommand(env.player, "@feature/format me = hair:{color}")
	g.DispatchCommand(env.player, "@feature/set me = hair:color=black")
	g.DispatchCommand(env.player, "@feature/soft me = hair:color=soaking wet")
	if view := wizard.FeatureView("hair"); !strings.Contains(view, "soaking wet") {
		t.Fatalf("soft set not applied: %q", view)
	}

	g.DispatchCommand(env.player, "@feature/reset me")
	if view := wizard.FeatureView("hair"); !strings.Contains(view, "black") {
		t.Errorf("reset did not restore default: %q", view)
	}
}

func TestFeatureRemove(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	wizard := g.DB.Get(env.wizard)
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@feature/add me = scar:jagged")
	g.DispatchCommand(env.player, "@feature/remove me = scar")
	if len(wizard.FeatureNames()) != 0 {
		t.Errorf("feature not removed: %v", wizard.FeatureNames())
	}

	clearOutput(env.player)
	g.DispatchCommand(env.player, "@feature/remove me = scar")
	if out := getOutput(env.player); !strings.Contains(out, "No feature named 'scar'.") {
		t.Errorf("missing feature output = %q", out)
	}
}

func TestFeaturePermissions(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	clearOutput(env.bob)

	// Bob can set his own appearance but not someone else's.
	g.DispatchCommand(env.bob, "@feature/add me = eyes:brown")
	if out := getOutput(env.bob); !strings.Contains(out, "Feature 'eyes' added") {
		t.Errorf("self feature output = %q", out)
	}

	clearOutput(env.bob)
	g.DispatchCommand(env.bob, "@feature/add Wizard = eyes:red")
	if out := getOutput(env.bob); !strings.Contains(out, "Permission denied.") {
		t.Errorf("other player feature output = %q", out)
	}
}

func TestFeatureMergeAddsOptionValues(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	wizard := g.DB.Get(env.wizard)

	g.DispatchCommand(env.player, "@feature/format me = hair:{length} {color}")
	g.DispatchCommand(env.player, "@feature/set me = hair:length=long")
	g.DispatchCommand(env.player, "@feature/set me = hair:color=black")
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@feature/merge me = hair:color=brown")
	if out := getOutput(env.player); !strings.Contains(out, "Feature 'hair' is now: long black and brown hair") {
		t.Errorf("merge output = %q", out)
	}
	if view := wizard.FeatureView("hair"); view != "long black and brown hair" {
		t.Errorf("merged view = %q", view)
	}

	// Merging the same value again is a no-op.
	g.DispatchCommand(env.player, "@feature/merge me = hair:color=brown")
	if view := wizard.FeatureView("hair"); view != "long black and brown hair" {
		t.Errorf("repeat merge view = %q", view)
	}
}

func TestFeatureMergeCreatesMissing(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	wizard := g.DB.Get(env.wizard)
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@feature/merge me = scar:jagged")
	if out := getOutput(env.player); !strings.Contains(out, "Feature 'scar' is now: jagged scar") {
		t.Errorf("merge-create output = %q", out)
	}

	g.DispatchCommand(env.player, "@feature/merge me = scar:faded")
	if view := wizard.FeatureView("scar"); view != "jagged and faded scar" {
		t.Errorf("merged plain view = %q", view)
	}
}

func TestFeatureMergeSoftAndReset(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	wizard := g.DB.Get(env.wizard)

	g.DispatchCommand(env.player, "@feature/format me = eyes:{color}")
	g.DispatchCommand(env.player, "@feature/set me = eyes:color=green")
	g.DispatchCommand(env.player, "@feature/merge/soft me = eyes:color=glowing")
	if view := wizard.FeatureView("eyes"); view != "green and glowing eyes" {
		t.Fatalf("soft merge view = %q", view)
	}

	g.DispatchCommand(env.player, "@feature/reset me")
	if view := wizard.FeatureView("eyes"); view != "green eyes" {
		t.Errorf("reset after soft merge = %q", view)
	}
}

func TestFeaturePrefixAndArticle(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	wizard := g.DB.Get(env.wizard)
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@feature/add me = tail:long fluffy;article")
	if out := getOutput(env.player); !strings.Contains(out, "Feature 'tail' added: a long fluffy tail") {
		t.Errorf("article feature output = %q", out)
	}

	g.DispatchCommand(env.player, "@feature/add me = earrings:golden;prefix=a pair of")
	if view := wizard.FeatureView("earrings"); view != "a pair of golden earrings" {
		t.Errorf("prefix view = %q", view)
	}
}

func TestCharacterLookShowsFeatures(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	g.DispatchCommand(env.player, "@feature/add me = eyes:green")
	clearOutput(env.bob)

	g.DispatchCommand(env.bob, "look Wizard")
	if out := getOutput(env.bob); !strings.Contains(out, "green eyes") {
		t.Errorf("character look features = %q", out)
	}
}
