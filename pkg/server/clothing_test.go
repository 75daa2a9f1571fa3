package server

import (
	"strings"
	"testing"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

func TestWearAndOutfit(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	hat := env.newGarment("sunhat", "hat", env.wizard)
	hat.Desc = "A wide-brimmed sunhat."
	clearOutput(env.player)
	clearOutput(env.bob)

	g.DispatchCommand(env.player, "wear sunhat = at a rakish angle")
	if out := getOutput(env.bob); !strings.Contains(out, "Wizard puts on a sunhat.") {
		t.Errorf("wear echo = %q", out)
	}

	wizard := g.DB.Get(env.wizard)
	if !g.IsWorn(wizard, hat.Ref) {
		t.Fatalf("hat not worn")
	}
	outfit := g.Outfit(wizard)
	if len(outfit) != 1 {
		t.Fatalf("outfit = %v", outfit)
	}
	want := "a wide-brimmed sunhat at a rakish angle"
	if outfit[0] != want {
		t.Errorf("outfit entry = %q, want %q", outfit[0], want)
	}
}

func TestWearAlreadyWorn(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	env.newGarment("sunhat", "hat", env.wizard)
	g.DispatchCommand(env.player, "wear sunhat")
	clearOutput(env.player)

	g.DispatchCommand(env.player, "wear sunhat")
	if out := getOutput(env.player); !strings.Contains(out, "You're already wearing that.") {
		t.Errorf("re-wear output = %q", out)
	}
}

func TestWearAdjustStyle(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	hat := env.newGarment("sunhat", "hat", env.wizard)
	g.DispatchCommand(env.player, "wear sunhat")
	clearOutput(env.bob)

	g.DispatchCommand(env.player, "wear sunhat = pulled low")
	if out := getOutput(env.bob); !strings.Contains(out, "Wizard adjusts a sunhat.") {
		t.Errorf("adjust echo = %q", out)
	}
	if hat.Wear == nil || hat.Wear.Style != "pulled low" {
		t.Errorf("style not updated: %+v", hat.Wear)
	}
}

func TestWearStyleTooLong(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	env.newGarment("sunhat", "hat", env.wizard)
	clearOutput(env.player)

	g.DispatchCommand(env.player, "wear sunhat = "+strings.Repeat("x", 51))
	out := getOutput(env.player)
	if !strings.Contains(out, "Please keep your wear style message to less than 50 characters.") {
		t.Errorf("style limit output = %q", out)
	}
}

func TestWearTypeLimit(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	env.newGarment("sunhat", "hat", env.wizard)
	env.newGarment("top hat", "hat", env.wizard)
	g.DispatchCommand(env.player, "wear sunhat")
	clearOutput(env.player)

	g.DispatchCommand(env.player, "wear top hat")
	if out := getOutput(env.player); !strings.Contains(out, "You can't wear any more of those.") {
		t.Errorf("type limit output = %q", out)
	}
}

func TestWearNotClothing(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	thing := env.thing(t)
	g.DB.MoveTo(thing.Ref, env.wizard)
	clearOutput(env.player)

	g.DispatchCommand(env.player, "wear rock")
	if out := getOutput(env.player); !strings.Contains(out, "You can't wear that.") {
		t.Errorf("non-clothing output = %q", out)
	}
}

func TestAutocover(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	shirt := env.newGarment("undershirt", "undershirt", env.wizard)
	jacket := env.newGarment("jacket", "top", env.wizard)
	g.DispatchCommand(env.player, "wear undershirt")
	clearOutput(env.bob)

	g.DispatchCommand(env.player, "wear jacket")
	out := getOutput(env.bob)
	if !strings.Contains(out, "Wizard puts on a jacket, covering an undershirt.") {
		t.Errorf("autocover echo = %q", out)
	}
	if shirt.Wear.CoveredBy != jacket.Ref {
		t.Errorf("undershirt not covered")
	}

	wizard := g.DB.Get(env.wizard)
	outfit := g.Outfit(wizard)
	if len(outfit) != 1 || !strings.Contains(outfit[0], "jacket") {
		t.Errorf("covered garment still visible: %v", outfit)
	}
}

func TestRemoveRevealing(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	shirt := env.newGarment("undershirt", "undershirt", env.wizard)
	env.newGarment("jacket", "top", env.wizard)
	g.DispatchCommand(env.player, "wear undershirt")
	g.DispatchCommand(env.player, "wear jacket")
	clearOutput(env.bob)

	g.DispatchCommand(env.player, "remove jacket")
	out := getOutput(env.bob)
	if !strings.Contains(out, "Wizard removes a jacket, revealing an undershirt.") {
		t.Errorf("remove echo = %q", out)
	}
	if shirt.Wear.CoveredBy != gamedb.Nothing {
		t.Errorf("undershirt still covered")
	}
}

func TestRemoveCoveredRefused(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	env.newGarment("undershirt", "undershirt", env.wizard)
	env.newGarment("jacket", "top", env.wizard)
	g.DispatchCommand(env.player, "wear undershirt")
	g.DispatchCommand(env.player, "wear jacket")
	clearOutput(env.player)

	g.DispatchCommand(env.player, "remove undershirt")
	out := getOutput(env.player)
	if !strings.Contains(out, "You can't remove that, it's covered by your jacket.") {
		t.Errorf("covered removal output = %q", out)
	}
}

func TestCoverAndUncover(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	bandana := env.newGarment("bandana", "accessory", env.wizard)
	scarf := env.newGarment("scarf", "accessory", env.wizard)
	g.DispatchCommand(env.player, "wear bandana")
	clearOutput(env.bob)

	g.DispatchCommand(env.player, "cover bandana with scarf")
	if out := getOutput(env.bob); !strings.Contains(out, "Wizard covers a bandana with a scarf.") {
		t.Errorf("cover echo = %q", out)
	}
	if bandana.Wear.CoveredBy != scarf.Ref {
		t.Fatalf("bandana not covered")
	}
	wizard := g.DB.Get(env.wizard)
	if !g.IsWorn(wizard, scarf.Ref) {
		t.Errorf("cover item not auto-worn")
	}

	clearOutput(env.player)
	g.DispatchCommand(env.player, "uncover bandana")
	if bandana.Wear.CoveredBy != gamedb.Nothing {
		t.Errorf("bandana still covered after uncover")
	}
}

func TestUncoverNotCovered(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	env.newGarment("bandana", "accessory", env.wizard)
	g.DispatchCommand(env.player, "wear bandana")
	clearOutput(env.player)

	g.DispatchCommand(env.player, "uncover bandana")
	if out := getOutput(env.player); !strings.Contains(out, "Your bandana isn't covered by anything.") {
		t.Errorf("uncover output = %q", out)
	}
}

func TestCoverWithJewelryRefused(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	env.newGarment("bandana", "accessory", env.wizard)
	env.newGarment("necklace", "jewelry", env.wizard)
	g.DispatchCommand(env.player, "wear bandana")
	clearOutput(env.player)

	g.DispatchCommand(env.player, "cover bandana with necklace")
	if out := getOutput(env.player); !strings.Contains(out, "You can't cover anything with a necklace.") {
		t.Errorf("jewelry cover output = %q", out)
	}
}

func TestInventorySplitsWorn(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	env.newGarment("sunhat", "hat", env.wizard)
	env.newGarment("undershirt", "undershirt", env.wizard)
	env.newGarment("jacket", "top", env.wizard)
	thing := env.thing(t)
	g.DB.MoveTo(thing.Ref, env.wizard)
	g.DispatchCommand(env.player, "wear sunhat")
	g.DispatchCommand(env.player, "wear undershirt")
	g.DispatchCommand(env.player, "wear jacket")
	clearOutput(env.player)

	g.DispatchCommand(env.player, "inventory")
	out := getOutput(env.player)
	if !strings.Contains(out, "You are carrying:") || !strings.Contains(out, "a rock") {
		t.Errorf("carried section wrong: %q", out)
	}
	if !strings.Contains(out, "You are wearing:") {
		t.Errorf("worn section missing: %q", out)
	}
	if !strings.Contains(out, "an undershirt (hidden)") {
		t.Errorf("hidden marker missing: %q", out)
	}
}

func TestDropRemovesWornFirst(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	hat := env.newGarment("sunhat", "hat", env.wizard)
	g.DispatchCommand(env.player, "wear sunhat")
	clearOutput(env.bob)

	g.DispatchCommand(env.player, "drop sunhat")
	out := getOutput(env.bob)
	if !strings.Contains(out, "Wizard removes a sunhat.") {
		t.Errorf("drop did not announce removal: %q", out)
	}
	if !strings.Contains(out, "Wizard drops a sunhat.") {
		t.Errorf("drop echo missing: %q", out)
	}
	if hat.Location != env.room {
		t.Errorf("hat location = %v", hat.Location)
	}
	if g.IsWorn(g.DB.Get(env.wizard), hat.Ref) {
		t.Errorf("hat still worn after drop")
	}
}

func TestCharacterLookShowsOutfit(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	hat := env.newGarment("sunhat", "hat", env.wizard)
	hat.Desc = "A wide-brimmed sunhat."
	g.DispatchCommand(env.player, "wear sunhat")
	clearOutput(env.bob)

	g.DispatchCommand(env.bob, "look Wizard")
	out := getOutput(env.bob)
	if !strings.Contains(out, "Wizard is wearing a wide-brimmed sunhat.") {
		t.Errorf("character look = %q", out)
	}
}

func TestWornDescMultibyteDescription(t *testing.T) {
	env := newTestEnv(t)
	hat := env.newGarment("chapeau", "hat", env.wizard)
	hat.Desc = "Élégant chapeau de paille."

	if got := wornDesc(hat); got != "élégant chapeau de paille" {
		t.Errorf("wornDesc = %q", got)
	}
}
