package server

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/crystal-mush/mudbits/pkg/boltstore"
	"github.com/crystal-mush/mudbits/pkg/english"
	"github.com/crystal-mush/mudbits/pkg/events"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
	"github.com/crystal-mush/mudbits/pkg/relay"
)

// Game holds the complete game state.
type Game struct {
	DB       *gamedb.Database
	Conns    *ConnManager
	Commands map[string]*Command
	Queue    *Scheduler
	Conf     *GameConf
	Store    *boltstore.Store // nil = no bbolt persistence
	Texts    *TextFiles       // cached text files (connect.txt, motd.txt, ...)
	TextDir  string
	EventBus *events.Bus
	Journal  *Journal // sqlite message journal (nil if disabled)

	// Relay state. RelayBots is always present so bindings can be managed
	// even while the queue connection is down; Relay is nil when the
	// beanstalkd side is not running.
	RelayBots *relay.Manager
	Relay     *relay.Runner
	RelayConf relay.Config

	Metrics *Metrics // nil when the web server is disabled
	MOTD    string
}

// NewGame creates a new Game instance around a loaded database.
func NewGame(db *gamedb.Database, conf *GameConf) *Game {
	bus := events.NewBus()
	cm := NewConnManager()
	cm.EventBus = bus
	if conf == nil {
		conf = DefaultGameConf()
	}
	return &Game{
		DB:        db,
		Conns:     cm,
		Commands:  InitCommands(),
		Queue:     NewScheduler(),
		Conf:      conf,
		Texts:     NewTextFiles(conf.TextDir),
		TextDir:   conf.TextDir,
		EventBus:  bus,
		RelayBots: relay.NewManager(),
		RelayConf: relay.DefaultConfig(),
	}
}

// PersistObject writes a single object to the bolt store (no-op if Store is nil).
func (g *Game) PersistObject(obj *gamedb.Object) {
	if g.Store == nil || obj == nil {
		return
	}
	if err := g.Store.PutObject(obj); err != nil {
		log.Printf("ERROR: persist object #%d: %v", obj.Ref, err)
	}
}

// PersistObjects writes multiple objects to the bolt store in one transaction.
func (g *Game) PersistObjects(objs ...*gamedb.Object) {
	if g.Store == nil {
		return
	}
	if err := g.Store.PutObjects(objs...); err != nil {
		log.Printf("ERROR: persist objects: %v", err)
	}
}

// PersistRef persists the object behind a ref.
func (g *Game) PersistRef(ref gamedb.DBRef) {
	g.PersistObject(g.DB.Get(ref))
}

// Emit sends an event via the event bus.
func (g *Game) Emit(ev events.Event) {
	g.EventBus.Emit(ev)
}

// EmitRoom sends an event to all players in a room.
func (g *Game) EmitRoom(room gamedb.DBRef, ev events.Event) {
	g.EventBus.EmitToRoom(g.DB, room, ev)
}

// EmitRoomExcept sends an event to all players in a room except one.
func (g *Game) EmitRoomExcept(room, except gamedb.DBRef, ev events.Event) {
	g.EventBus.EmitToRoomExcept(g.DB, room, except, ev)
}

// PlayerName returns the display name of an object.
func (g *Game) PlayerName(ref gamedb.DBRef) string {
	if obj := g.DB.Get(ref); obj != nil {
		return obj.Name
	}
	return "Unknown"
}

// PlayerLocation returns the location of an object.
func (g *Game) PlayerLocation(ref gamedb.DBRef) gamedb.DBRef {
	if obj := g.DB.Get(ref); obj != nil {
		return obj.Location
	}
	return gamedb.Nothing
}

// Wizard reports whether a player has admin permissions.
func Wizard(g *Game, player gamedb.DBRef) bool {
	obj := g.DB.Get(player)
	return obj != nil && obj.HasFlag(gamedb.FlagWizard)
}

// LookupPlayer finds a player by name: exact match first, then unique prefix.
func (g *Game) LookupPlayer(name string) gamedb.DBRef {
	name = strings.TrimSpace(strings.TrimPrefix(name, "*"))
	if name == "" {
		return gamedb.Nothing
	}
	for _, obj := range g.DB.Objects {
		if obj.Type == gamedb.TypePlayer && !obj.IsGoing() && strings.EqualFold(obj.Name, name) {
			return obj.Ref
		}
	}
	nameLower := strings.ToLower(name)
	match := gamedb.Nothing
	count := 0
	for _, obj := range g.DB.Objects {
		if obj.Type == gamedb.TypePlayer && !obj.IsGoing() &&
			strings.HasPrefix(strings.ToLower(obj.Name), nameLower) {
			match = obj.Ref
			count++
		}
	}
	switch count {
	case 1:
		return match
	case 0:
		return gamedb.Nothing
	default:
		return gamedb.Ambiguous
	}
}

// CheckLock evaluates an object's lock of the given kind against a player.
// Lock values are "all", "none", "owner", or a space-separated ref list
// ("#12 #30"). A missing lock falls back to def. Wizards always pass.
func CheckLock(g *Game, player gamedb.DBRef, obj *gamedb.Object, kind string, def bool) bool {
	if obj == nil {
		return false
	}
	if Wizard(g, player) {
		return true
	}
	var lock string
	if obj.Locks != nil {
		lock = obj.Locks[kind]
	}
	if lock == "" {
		return def
	}
	switch strings.ToLower(lock) {
	case "all":
		return true
	case "none":
		return false
	case "owner":
		return player == obj.Owner
	}
	for _, field := range strings.Fields(lock) {
		if field == fmt.Sprintf("#%d", player) {
			return true
		}
	}
	return false
}

// MoveObject relocates an object, clearing any decor placement it carried
// and refreshing the decor line of the room it left.
func (g *Game) MoveObject(ref, dest gamedb.DBRef) bool {
	obj := g.DB.Get(ref)
	if obj == nil {
		return false
	}
	oldLoc := obj.Location
	if !g.DB.MoveTo(ref, dest) {
		return false
	}
	if obj.Placed != "" {
		obj.Placed = ""
		if oldLoc != gamedb.Nothing {
			g.UpdateDecor(oldLoc)
		}
	}
	persist := []*gamedb.Object{obj}
	if o := g.DB.Get(oldLoc); o != nil {
		persist = append(persist, o)
	}
	if d := g.DB.Get(dest); d != nil {
		persist = append(persist, d)
	}
	g.PersistObjects(persist...)
	return true
}

// MovePlayer moves a player between rooms with departure/arrival announcements.
func (g *Game) MovePlayer(d *Descriptor, dest gamedb.DBRef) {
	player := d.Player
	obj := g.DB.Get(player)
	if obj == nil {
		return
	}
	oldLoc := obj.Location
	if oldLoc != gamedb.Nothing {
		g.EmitRoomExcept(oldLoc, player, events.Event{
			Type: events.EvMove,
			Room: oldLoc,
			Text: fmt.Sprintf("%s has left.", obj.Name),
		})
	}
	if !g.MoveObject(player, dest) {
		d.Send("You can't go that way.")
		return
	}
	g.EmitRoomExcept(dest, player, events.Event{
		Type: events.EvMove,
		Room: dest,
		Text: fmt.Sprintf("%s has arrived.", obj.Name),
	})
	g.ShowRoom(d, dest)
}

// visibleThings returns the non-placed, non-dark things in a room.
func (g *Game) visibleThings(room, looker gamedb.DBRef) []*gamedb.Object {
	var out []*gamedb.Object
	for _, obj := range g.DB.ContentsOf(room) {
		if obj.Ref == looker || obj.Type != gamedb.TypeThing {
			continue
		}
		if obj.Placed != "" || obj.HasFlag(gamedb.FlagDark) {
			continue
		}
		out = append(out, obj)
	}
	return out
}

// groupedNames groups same-named objects and pluralizes ("three apples").
func groupedNames(objs []*gamedb.Object) []string {
	grouped := make(map[string]int)
	for _, obj := range objs {
		grouped[obj.Name]++
	}
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		n := grouped[name]
		if n == 1 {
			out = append(out, english.AName(name))
		} else {
			out = append(out, english.NumberedName(n, name))
		}
	}
	return out
}

// ShowRoom displays a room to a player: name, description with the decor
// line folded in, grouped things, characters, and exits.
func (g *Game) ShowRoom(d *Descriptor, room gamedb.DBRef) {
	roomObj := g.DB.Get(room)
	if roomObj == nil {
		d.Send("You see nothing special.")
		return
	}

	d.Send(roomObj.Name)

	desc := roomObj.Desc
	if decor := roomObj.GetAttr("decor_desc"); decor != "" {
		if desc != "" {
			desc = desc + " " + decor
		} else {
			desc = decor
		}
	}
	if desc != "" {
		d.Send(desc)
	}

	// Things, excluding placed decor (those live in the description).
	if names := groupedNames(g.visibleThings(room, d.Player)); len(names) > 0 {
		d.Send("You see: " + english.ListToString(names))
	}

	var chars []string
	for _, obj := range g.DB.ContentsOf(room) {
		if obj.Ref == d.Player || obj.Type != gamedb.TypePlayer {
			continue
		}
		if obj.HasFlag(gamedb.FlagDark) && !Wizard(g, d.Player) {
			continue
		}
		chars = append(chars, obj.Name)
	}
	if len(chars) > 0 {
		d.Send("Characters: " + english.ListToString(chars))
	}

	var exits []string
	for _, ref := range roomObj.Exits {
		if e := g.DB.Get(ref); e != nil && !e.HasFlag(gamedb.FlagDark) {
			name := e.Name
			if idx := strings.IndexByte(name, ';'); idx >= 0 {
				name = name[:idx]
			}
			exits = append(exits, name)
		}
	}
	if len(exits) > 0 {
		d.Send("Obvious exits: " + strings.Join(exits, "  "))
	}
}

// ShowObject displays a thing or exit: description plus carried decor state.
func (g *Game) ShowObject(d *Descriptor, target gamedb.DBRef) {
	obj := g.DB.Get(target)
	if obj == nil {
		d.Send("I don't see that here.")
		return
	}
	if obj.Type == gamedb.TypePlayer {
		g.ShowCharacter(d, obj)
		return
	}
	d.Send(obj.Name)
	if obj.Desc != "" {
		d.Send(obj.Desc)
	} else {
		d.Send("You see nothing special.")
	}
}

// ShowCharacter displays a character: description, appearance features,
// worn outfit, and carried items.
func (g *Game) ShowCharacter(d *Descriptor, obj *gamedb.Object) {
	d.Send(obj.Name)

	desc := obj.Desc
	if fv := obj.FeaturesView(); fv != "" {
		if desc != "" {
			desc = desc + " " + fv
		} else {
			desc = fv
		}
	}
	if desc != "" {
		d.Send(desc)
	}

	outfit := g.Outfit(obj)
	clothing := "nothing"
	if len(outfit) > 0 {
		clothing = english.ListToString(outfit)
	}
	d.Sendf("%s is wearing %s.", obj.Name, clothing)

	var carried []*gamedb.Object
	for _, c := range g.DB.ContentsOf(obj.Ref) {
		if !g.IsWorn(obj, c.Ref) {
			carried = append(carried, c)
		}
	}
	things := "nothing"
	if names := groupedNames(carried); len(names) > 0 {
		things = english.ListToString(names)
	}
	d.Sendf("%s is carrying %s.", obj.Name, things)
}

// ShowContainer displays the inside of a container.
func (g *Game) ShowContainer(d *Descriptor, target gamedb.DBRef) {
	obj := g.DB.Get(target)
	if obj == nil {
		d.Send("I don't see that here.")
		return
	}
	contents := g.DB.ContentsOf(target)
	if len(contents) == 0 {
		d.Sendf("The %s is empty.", obj.Name)
		return
	}
	d.Sendf("In the %s you see: %s", obj.Name, english.ListToString(groupedNames(contents)))
}

// DisconnectPlayer handles a player's departure: room announcement and
// connection-state cleanup.
func (g *Game) DisconnectPlayer(d *Descriptor) {
	if d.State != ConnConnected || d.Player == gamedb.Nothing {
		return
	}
	obj := g.DB.Get(d.Player)
	if obj != nil && len(g.Conns.GetByPlayer(d.Player)) <= 1 {
		g.EmitRoomExcept(obj.Location, d.Player, events.Event{
			Type: events.EvDisconnect,
			Text: fmt.Sprintf("%s has disconnected.", obj.Name),
		})
	}
	d.State = ConnLogin
	d.Close()
}
