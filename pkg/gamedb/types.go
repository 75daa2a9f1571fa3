package gamedb

import "time"

// DBRef is the fundamental object reference type.
type DBRef int

const (
	Nothing   DBRef = -1
	Ambiguous DBRef = -2
	Home      DBRef = -3
)

// ObjectType represents the type of a game object.
type ObjectType int

const (
	TypeRoom   ObjectType = 0
	TypeThing  ObjectType = 1
	TypeExit   ObjectType = 2
	TypePlayer ObjectType = 3
)

func (t ObjectType) String() string {
	switch t {
	case TypeRoom:
		return "ROOM"
	case TypeThing:
		return "THING"
	case TypeExit:
		return "EXIT"
	case TypePlayer:
		return "PLAYER"
	default:
		return "UNKNOWN"
	}
}

// Object flags.
const (
	FlagWizard = 1 << iota // full building/admin permissions
	FlagDark               // hidden from contents listings
	FlagBot                // relay bot account, not a real player
	FlagQuiet              // suppresses room echo for this object's actions
	FlagGoing              // marked for destruction
)

// WearState is the worn-clothing state carried by a garment object.
// Style is the optional free-form "wear style" shown after the garment's
// description. CoveredBy is the garment currently hiding this one.
type WearState struct {
	Style     string
	CoveredBy DBRef
}

// Object represents a single game database object.
//
// Extension state (clothing, decor, growth, features) lives directly on the
// object so that a single boltstore write persists everything.
type Object struct {
	Ref      DBRef
	Type     ObjectType
	Name     string
	Desc     string
	Location DBRef
	Home     DBRef
	Owner    DBRef
	Flags    int

	// Contents holds the refs of objects located inside this one, in
	// arrival order. Exits are kept separately.
	Contents []DBRef
	Exits    []DBRef

	// Destination for exits.
	Link DBRef

	// Attrs are free-form named attributes ("get_err_msg", relay binding
	// keys, ...). Keys are lowercase.
	Attrs map[string]string

	// Tags maps a tag category to its values. Wearables carry their
	// clothing type as a tag in the "clothing" category.
	Tags map[string][]string

	// Locks maps an access type ("get", "getfrom", "decorate", "use",
	// "viewcon") to a lock expression. Missing entries fall back to the
	// per-type default.
	Locks map[string]string

	// PasswordHash is the bcrypt hash for player objects.
	PasswordHash []byte

	// Worn is the ordered list of garments a character is wearing.
	Worn []DBRef

	// Wear is set on garments while they are worn.
	Wear *WearState

	// Placed is the decor position string; empty means not placed.
	Placed string

	// Growth tracks staged aging, nil for objects that do not grow.
	Growth *GrowthState

	// Features are named appearance features ("hair", "eyes", ...).
	Features map[string]*Feature

	// Size is the remaining material quantity for crafting consumables;
	// zero means the object is not a sized material.
	Size int

	Created  time.Time
	Modified time.Time
}

// HasFlag reports whether a flag bit is set.
func (o *Object) HasFlag(flag int) bool {
	return o.Flags&flag != 0
}

// SetFlag sets or clears a flag bit.
func (o *Object) SetFlag(flag int, set bool) {
	if set {
		o.Flags |= flag
	} else {
		o.Flags &^= flag
	}
}

// IsGoing returns true if the object is marked for destruction.
func (o *Object) IsGoing() bool {
	return o.HasFlag(FlagGoing)
}

// GetAttr returns a named attribute, or "" if unset.
func (o *Object) GetAttr(key string) string {
	if o.Attrs == nil {
		return ""
	}
	return o.Attrs[key]
}

// SetAttr sets a named attribute. An empty value deletes it.
func (o *Object) SetAttr(key, value string) {
	if value == "" {
		delete(o.Attrs, key)
		return
	}
	if o.Attrs == nil {
		o.Attrs = make(map[string]string)
	}
	o.Attrs[key] = value
}

// TagsIn returns the tag values in a category.
func (o *Object) TagsIn(category string) []string {
	if o.Tags == nil {
		return nil
	}
	return o.Tags[category]
}

// FirstTag returns the first tag value in a category, or "".
func (o *Object) FirstTag(category string) string {
	tags := o.TagsIn(category)
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}

// HasTag reports whether the object carries the given tag value in a category.
func (o *Object) HasTag(value, category string) bool {
	for _, t := range o.TagsIn(category) {
		if t == value {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the object carries any of the given values in a
// category.
func (o *Object) HasAnyTag(values []string, category string) bool {
	for _, v := range values {
		if o.HasTag(v, category) {
			return true
		}
	}
	return false
}

// AddTag adds a tag value to a category if not already present.
func (o *Object) AddTag(value, category string) {
	if o.HasTag(value, category) {
		return
	}
	if o.Tags == nil {
		o.Tags = make(map[string][]string)
	}
	o.Tags[category] = append(o.Tags[category], value)
}

// RemoveTag removes a tag value from a category.
func (o *Object) RemoveTag(value, category string) {
	tags := o.TagsIn(category)
	for i, t := range tags {
		if t == value {
			o.Tags[category] = append(tags[:i], tags[i+1:]...)
			return
		}
	}
}

// Database holds the complete in-memory game state.
type Database struct {
	NextRef  DBRef
	Objects  map[DBRef]*Object
	Channels map[string]*Channel // lowercase name -> channel
}

// NewDatabase creates an empty Database.
func NewDatabase() *Database {
	return &Database{
		NextRef:  0,
		Objects:  make(map[DBRef]*Object),
		Channels: make(map[string]*Channel),
	}
}

// Get returns an object by ref, or nil.
func (db *Database) Get(ref DBRef) *Object {
	return db.Objects[ref]
}

// NewObject allocates the next ref and adds a fresh object to the database.
// The object is not placed anywhere; callers use MoveTo.
func (db *Database) NewObject(typ ObjectType, name string, owner DBRef) *Object {
	obj := &Object{
		Ref:      db.NextRef,
		Type:     typ,
		Name:     name,
		Location: Nothing,
		Home:     Nothing,
		Link:     Nothing,
		Owner:    owner,
		Created:  time.Now(),
		Modified: time.Now(),
	}
	db.Objects[obj.Ref] = obj
	db.NextRef++
	return obj
}

// RemoveFromContents drops ref from holder's contents list.
func (db *Database) RemoveFromContents(holder, ref DBRef) {
	h := db.Objects[holder]
	if h == nil {
		return
	}
	for i, c := range h.Contents {
		if c == ref {
			h.Contents = append(h.Contents[:i], h.Contents[i+1:]...)
			return
		}
	}
}

// MoveTo relocates an object to a new holder, maintaining both contents
// lists. A destination of Nothing removes the object from play.
func (db *Database) MoveTo(ref, dest DBRef) bool {
	obj := db.Objects[ref]
	if obj == nil || ref == dest {
		return false
	}
	if dest != Nothing && db.Objects[dest] == nil {
		return false
	}
	if obj.Location != Nothing {
		db.RemoveFromContents(obj.Location, ref)
	}
	obj.Location = dest
	if dest != Nothing {
		d := db.Objects[dest]
		d.Contents = append(d.Contents, ref)
	}
	obj.Modified = time.Now()
	return true
}

// ContentsOf returns the live objects inside holder, skipping dangling refs.
func (db *Database) ContentsOf(holder DBRef) []*Object {
	h := db.Objects[holder]
	if h == nil {
		return nil
	}
	out := make([]*Object, 0, len(h.Contents))
	for _, ref := range h.Contents {
		if obj := db.Objects[ref]; obj != nil && !obj.IsGoing() {
			out = append(out, obj)
		}
	}
	return out
}
