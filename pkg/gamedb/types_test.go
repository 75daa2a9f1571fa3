package gamedb

import "testing"

func TestNewObjectAllocatesRefs(t *testing.T) {
	db := NewDatabase()
	room := db.NewObject(TypeRoom, "Limbo", Nothing)
	player := db.NewObject(TypePlayer, "Wizard", Nothing)

	if room.Ref != 0 || player.Ref != 1 {
		t.Errorf("refs = %d, %d", room.Ref, player.Ref)
	}
	if db.NextRef != 2 {
		t.Errorf("NextRef = %d", db.NextRef)
	}
	if room.Location != Nothing {
		t.Errorf("new object placed at %d", room.Location)
	}
	if db.Get(room.Ref) != room {
		t.Error("Get did not return the object")
	}
	if db.Get(99) != nil {
		t.Error("Get returned something for an unknown ref")
	}
}

func TestMoveTo(t *testing.T) {
	db := NewDatabase()
	room := db.NewObject(TypeRoom, "Limbo", Nothing)
	other := db.NewObject(TypeRoom, "Garden", Nothing)
	thing := db.NewObject(TypeThing, "rock", Nothing)

	if !db.MoveTo(thing.Ref, room.Ref) {
		t.Fatal("move failed")
	}
	if thing.Location != room.Ref || len(room.Contents) != 1 {
		t.Errorf("location = %d, contents = %v", thing.Location, room.Contents)
	}

	if !db.MoveTo(thing.Ref, other.Ref) {
		t.Fatal("second move failed")
	}
	if len(room.Contents) != 0 {
		t.Errorf("old room still holds %v", room.Contents)
	}
	if len(other.Contents) != 1 || other.Contents[0] != thing.Ref {
		t.Errorf("new room contents = %v", other.Contents)
	}

	if db.MoveTo(thing.Ref, thing.Ref) {
		t.Error("move into itself allowed")
	}
	if db.MoveTo(thing.Ref, 99) {
		t.Error("move to unknown destination allowed")
	}

	// Nothing removes the object from play.
	if !db.MoveTo(thing.Ref, Nothing) {
		t.Fatal("move to Nothing failed")
	}
	if thing.Location != Nothing || len(other.Contents) != 0 {
		t.Errorf("detach: location = %d, contents = %v", thing.Location, other.Contents)
	}
}

func TestContentsOfSkipsGoing(t *testing.T) {
	db := NewDatabase()
	room := db.NewObject(TypeRoom, "Limbo", Nothing)
	rock := db.NewObject(TypeThing, "rock", Nothing)
	gone := db.NewObject(TypeThing, "dust", Nothing)
	db.MoveTo(rock.Ref, room.Ref)
	db.MoveTo(gone.Ref, room.Ref)
	gone.SetFlag(FlagGoing, true)

	contents := db.ContentsOf(room.Ref)
	if len(contents) != 1 || contents[0] != rock {
		t.Errorf("contents = %v", contents)
	}
}

func TestFlags(t *testing.T) {
	obj := &Object{}
	obj.SetFlag(FlagWizard, true)
	obj.SetFlag(FlagDark, true)
	if !obj.HasFlag(FlagWizard) || !obj.HasFlag(FlagDark) {
		t.Error("flags not set")
	}
	obj.SetFlag(FlagWizard, false)
	if obj.HasFlag(FlagWizard) {
		t.Error("flag not cleared")
	}
	if obj.IsGoing() {
		t.Error("going without flag")
	}
	obj.SetFlag(FlagGoing, true)
	if !obj.IsGoing() {
		t.Error("going flag ignored")
	}
}

func TestAttrs(t *testing.T) {
	obj := &Object{}
	if obj.GetAttr("missing") != "" {
		t.Error("unset attr not empty")
	}
	obj.SetAttr("use_msg", "You flip the switch.")
	if obj.GetAttr("use_msg") != "You flip the switch." {
		t.Errorf("attr = %q", obj.GetAttr("use_msg"))
	}
	obj.SetAttr("use_msg", "")
	if obj.GetAttr("use_msg") != "" {
		t.Error("empty set did not delete")
	}
}

func TestTags(t *testing.T) {
	obj := &Object{}
	obj.AddTag("hat", "clothing")
	obj.AddTag("hat", "clothing") // duplicate is a no-op
	obj.AddTag("wool", "craft_material")

	if got := obj.TagsIn("clothing"); len(got) != 1 || got[0] != "hat" {
		t.Errorf("clothing tags = %v", got)
	}
	if obj.FirstTag("clothing") != "hat" {
		t.Errorf("first tag = %q", obj.FirstTag("clothing"))
	}
	if !obj.HasTag("wool", "craft_material") || obj.HasTag("wool", "clothing") {
		t.Error("tag category bleed")
	}
	if !obj.HasAnyTag([]string{"socks", "hat"}, "clothing") {
		t.Error("HasAnyTag missed")
	}

	obj.RemoveTag("hat", "clothing")
	if obj.HasTag("hat", "clothing") {
		t.Error("tag not removed")
	}
}
