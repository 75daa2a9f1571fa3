package server

import (
	"bufio"
	"fmt"
	"net"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// testEnv holds the shared test infrastructure.
type testEnv struct {
	game   *Game
	player *Descriptor // wizard player
	bob    *Descriptor // plain player
	room   gamedb.DBRef
	wizard gamedb.DBRef
	bobRef gamedb.DBRef
}

// newTestEnv creates a minimal world: a room holding a wizard, a plain
// player named Bob, a loose thing, and a second empty room.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := gamedb.NewDatabase()

	room := db.NewObject(gamedb.TypeRoom, "Room Zero", gamedb.Nothing)
	wizard := db.NewObject(gamedb.TypePlayer, "Wizard", gamedb.Nothing)
	wizard.Owner = wizard.Ref
	wizard.SetFlag(gamedb.FlagWizard, true)
	bob := db.NewObject(gamedb.TypePlayer, "Bob", gamedb.Nothing)
	bob.Owner = bob.Ref
	thing := db.NewObject(gamedb.TypeThing, "rock", wizard.Ref)
	db.NewObject(gamedb.TypeRoom, "Other Room", wizard.Ref)
	room.Owner = wizard.Ref

	db.MoveTo(wizard.Ref, room.Ref)
	db.MoveTo(bob.Ref, room.Ref)
	db.MoveTo(thing.Ref, room.Ref)

	g := NewGame(db, DefaultGameConf())

	env := &testEnv{
		game:   g,
		room:   room.Ref,
		wizard: wizard.Ref,
		bobRef: bob.Ref,
	}
	env.player = makeTestDescriptor(t, g.Conns, wizard.Ref)
	env.bob = makeTestDescriptor(t, g.Conns, bob.Ref)
	return env
}

// thing returns the rock the fixture put in the room.
func (env *testEnv) thing(t *testing.T) *gamedb.Object {
	t.Helper()
	for _, obj := range env.game.DB.ContentsOf(env.room) {
		if obj.Name == "rock" {
			return obj
		}
	}
	t.Fatal("fixture thing missing")
	return nil
}

// newGarment creates a tagged clothing item in the wearer's inventory.
func (env *testEnv) newGarment(name, typ string, holder gamedb.DBRef) *gamedb.Object {
	obj := env.game.DB.NewObject(gamedb.TypeThing, name, holder)
	obj.AddTag(typ, "clothing")
	env.game.DB.MoveTo(obj.Ref, holder)
	return obj
}

// makeTestDescriptor creates a Descriptor whose output lands in a buffer.
func makeTestDescriptor(t *testing.T, cm *ConnManager, player gamedb.DBRef) *Descriptor {
	t.Helper()
	serverConn, clientConn := net.Pipe()
	d := &Descriptor{
		ID:       cm.NextID(),
		Conn:     &asyncPipeWriter{conn: serverConn},
		Reader:   bufio.NewReader(serverConn),
		State:    ConnConnected,
		Player:   player,
		Addr:     "test",
		ConnTime: time.Now(),
		LastCmd:  time.Now(),
	}
	cm.Add(d)
	cm.Login(d, player)
	t.Cleanup(func() {
		serverConn.Close()
		clientConn.Close()
	})
	return d
}

// asyncPipeWriter buffers descriptor output so tests can inspect it
// without a reader goroutine.
type asyncPipeWriter struct {
	conn net.Conn
	mu   sync.Mutex
	buf  strings.Builder
}

func (a *asyncPipeWriter) Read(b []byte) (int, error) {
	return 0, fmt.Errorf("read not supported on server side")
}

func (a *asyncPipeWriter) Write(b []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.buf.Write(b)
	return len(b), nil
}

func (a *asyncPipeWriter) Close() error                       { return a.conn.Close() }
func (a *asyncPipeWriter) LocalAddr() net.Addr                { return a.conn.LocalAddr() }
func (a *asyncPipeWriter) RemoteAddr() net.Addr               { return a.conn.RemoteAddr() }
func (a *asyncPipeWriter) SetDeadline(t time.Time) error      { return nil }
func (a *asyncPipeWriter) SetReadDeadline(t time.Time) error  { return nil }
func (a *asyncPipeWriter) SetWriteDeadline(t time.Time) error { return nil }

// getOutput returns all buffered output and clears the buffer.
func getOutput(d *Descriptor) string {
	w, ok := d.Conn.(*asyncPipeWriter)
	if !ok {
		return ""
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.buf.String()
	w.buf.Reset()
	return strings.TrimRight(s, "\r\n")
}

// clearOutput discards any buffered output.
func clearOutput(d *Descriptor) {
	getOutput(d)
}

// --- Tests ---

func TestDispatchSay(t *testing.T) {
	env := newTestEnv(t)
	clearOutput(env.player)
	clearOutput(env.bob)

	env.game.DispatchCommand(env.player, "say hello world")

	if out := getOutput(env.player); !strings.Contains(out, `You say, "hello world"`) {
		t.Errorf("speaker output = %q", out)
	}
	if out := getOutput(env.bob); !strings.Contains(out, `Wizard says, "hello world"`) {
		t.Errorf("listener output = %q", out)
	}
}

func TestDispatchSayPrefix(t *testing.T) {
	env := newTestEnv(t)
	clearOutput(env.player)

	env.game.DispatchCommand(env.player, `"hi`)
	if out := getOutput(env.player); !strings.Contains(out, `You say, "hi"`) {
		t.Errorf("quote prefix output = %q", out)
	}
}

func TestDispatchPose(t *testing.T) {
	env := newTestEnv(t)
	clearOutput(env.bob)

	env.game.DispatchCommand(env.player, ":waves.")
	if out := getOutput(env.bob); !strings.Contains(out, "Wizard waves.") {
		t.Errorf("pose output = %q", out)
	}

	clearOutput(env.bob)
	env.game.DispatchCommand(env.player, ";'s tail twitches.")
	if out := getOutput(env.bob); !strings.Contains(out, "Wizard's tail twitches.") {
		t.Errorf("semipose output = %q", out)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	env := newTestEnv(t)
	clearOutput(env.player)

	env.game.DispatchCommand(env.player, "frobnicate")
	if out := getOutput(env.player); !strings.Contains(out, "Huh?") {
		t.Errorf("unknown command output = %q", out)
	}
}

func TestWizardOnlyCommand(t *testing.T) {
	env := newTestEnv(t)
	clearOutput(env.bob)

	env.game.DispatchCommand(env.bob, "@dig Secret Lair")
	if out := getOutput(env.bob); !strings.Contains(out, "Permission denied.") {
		t.Errorf("non-wizard @dig output = %q", out)
	}
}

func TestLookAtRoom(t *testing.T) {
	env := newTestEnv(t)
	clearOutput(env.player)

	env.game.DispatchCommand(env.player, "look")
	out := getOutput(env.player)
	if !strings.Contains(out, "Room Zero") {
		t.Errorf("room name missing: %q", out)
	}
	if !strings.Contains(out, "You see: a rock") {
		t.Errorf("contents line missing: %q", out)
	}
	if !strings.Contains(out, "Characters: Bob") {
		t.Errorf("characters line missing: %q", out)
	}
}

func TestGetAndDrop(t *testing.T) {
	env := newTestEnv(t)
	clearOutput(env.player)

	env.game.DispatchCommand(env.player, "get rock")
	if out := getOutput(env.player); !strings.Contains(out, "You get the rock.") {
		t.Errorf("get output = %q", out)
	}
	thing := env.thing(t)
	if thing.Location != env.wizard {
		t.Fatalf("rock location = %v, want wizard", thing.Location)
	}

	env.game.DispatchCommand(env.player, "drop rock")
	if out := getOutput(env.player); !strings.Contains(out, "You drop the rock.") {
		t.Errorf("drop output = %q", out)
	}
	if thing.Location != env.room {
		t.Errorf("rock location after drop = %v, want room", thing.Location)
	}
}

func TestGetSelf(t *testing.T) {
	env := newTestEnv(t)
	clearOutput(env.player)

	env.game.DispatchCommand(env.player, "get me")
	if out := getOutput(env.player); !strings.Contains(out, "You can't get yourself.") {
		t.Errorf("get me output = %q", out)
	}
}

func TestGetLockErrMessage(t *testing.T) {
	env := newTestEnv(t)
	thing := env.thing(t)
	thing.Locks = map[string]string{"get": "none"}
	thing.SetAttr("get_err_msg", "It is bolted down.")
	clearOutput(env.bob)

	env.game.DispatchCommand(env.bob, "get rock")
	if out := getOutput(env.bob); !strings.Contains(out, "It is bolted down.") {
		t.Errorf("lock message output = %q", out)
	}
	if thing.Location != env.room {
		t.Errorf("locked rock moved")
	}
}

func TestGiveToPlayer(t *testing.T) {
	env := newTestEnv(t)
	thing := env.thing(t)
	env.game.DB.MoveTo(thing.Ref, env.wizard)
	clearOutput(env.player)
	clearOutput(env.bob)

	env.game.DispatchCommand(env.player, "give rock to Bob")
	if out := getOutput(env.player); !strings.Contains(out, "You give the rock to Bob.") {
		t.Errorf("giver output = %q", out)
	}
	if out := getOutput(env.bob); !strings.Contains(out, "Wizard gives you a rock.") {
		t.Errorf("receiver output = %q", out)
	}
	if thing.Location != env.bobRef {
		t.Errorf("rock location = %v, want Bob", thing.Location)
	}
}

func TestContainerLookAndGetFrom(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	chest := g.DB.NewObject(gamedb.TypeThing, "chest", env.wizard)
	chest.Locks = map[string]string{"getfrom": "all", "viewcon": "all"}
	g.DB.MoveTo(chest.Ref, env.room)
	coin := g.DB.NewObject(gamedb.TypeThing, "coin", env.wizard)
	g.DB.MoveTo(coin.Ref, chest.Ref)
	clearOutput(env.bob)

	g.DispatchCommand(env.bob, "look in chest")
	if out := getOutput(env.bob); !strings.Contains(out, "In the chest you see: a coin") {
		t.Errorf("look in output = %q", out)
	}

	g.DispatchCommand(env.bob, "get coin from chest")
	if out := getOutput(env.bob); !strings.Contains(out, "You get the coin.") {
		t.Errorf("get from output = %q", out)
	}
	if coin.Location != env.bobRef {
		t.Errorf("coin location = %v, want Bob", coin.Location)
	}
}

func TestGetFromLocked(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	chest := g.DB.NewObject(gamedb.TypeThing, "chest", env.wizard)
	g.DB.MoveTo(chest.Ref, env.room)
	coin := g.DB.NewObject(gamedb.TypeThing, "coin", env.wizard)
	g.DB.MoveTo(coin.Ref, chest.Ref)
	clearOutput(env.bob)

	g.DispatchCommand(env.bob, "look in chest")
	if out := getOutput(env.bob); !strings.Contains(out, "You can't look there.") {
		t.Errorf("locked look output = %q", out)
	}
	g.DispatchCommand(env.bob, "get coin from chest")
	if out := getOutput(env.bob); !strings.Contains(out, "You can't get things from there.") {
		t.Errorf("locked get output = %q", out)
	}
}

func TestPutPreposition(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	table := g.DB.NewObject(gamedb.TypeThing, "table", env.wizard)
	table.Locks = map[string]string{"getfrom": "all"}
	g.DB.MoveTo(table.Ref, env.room)
	thing := env.thing(t)
	g.DB.MoveTo(thing.Ref, env.wizard)
	clearOutput(env.player)
	clearOutput(env.bob)

	g.DispatchCommand(env.player, "put rock on table")
	if out := getOutput(env.player); !strings.Contains(out, "You put the rock on the table.") {
		t.Errorf("put output = %q", out)
	}
	if out := getOutput(env.bob); !strings.Contains(out, "Wizard puts a rock on the table.") {
		t.Errorf("put room echo = %q", out)
	}
	if thing.Location != table.Ref {
		t.Errorf("rock location = %v, want table", thing.Location)
	}
}

func TestUseRequiresUsable(t *testing.T) {
	env := newTestEnv(t)
	clearOutput(env.player)

	env.game.DispatchCommand(env.player, "use rock")
	if out := getOutput(env.player); !strings.Contains(out, "That is not usable.") {
		t.Errorf("use output = %q", out)
	}

	thing := env.thing(t)
	thing.SetAttr("use_msg", "The rock hums quietly.")
	env.game.DispatchCommand(env.player, "use rock")
	if out := getOutput(env.player); !strings.Contains(out, "The rock hums quietly.") {
		t.Errorf("usable output = %q", out)
	}
}

func TestUseRoomMessageIsLiteralText(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	thing := env.thing(t)
	thing.SetAttr("use_msg", "You squeeze the rock.")
	thing.SetAttr("use_msg_room", "%s grins %d times.")
	clearOutput(env.player)
	clearOutput(env.bob)

	g.DispatchCommand(env.player, "use rock")
	out := getOutput(env.bob)
	if !strings.Contains(out, "Wizard grins %d times.") {
		t.Errorf("room echo = %q", out)
	}
	if strings.Contains(out, "%!") {
		t.Errorf("room echo has formatting artifacts: %q", out)
	}
}

func TestDigOpensExits(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@dig Garden = out;o,in")
	out := getOutput(env.player)
	if !strings.Contains(out, "Garden created") {
		t.Fatalf("@dig output = %q", out)
	}

	clearOutput(env.player)
	g.DispatchCommand(env.player, "o")
	out = getOutput(env.player)
	if !strings.Contains(out, "Garden") {
		t.Fatalf("exit alias move output = %q", out)
	}

	clearOutput(env.player)
	g.DispatchCommand(env.player, "in")
	if out := getOutput(env.player); !strings.Contains(out, "Room Zero") {
		t.Errorf("return exit output = %q", out)
	}
}

func TestCreateAndDestroy(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@create widget")
	if out := getOutput(env.player); !strings.Contains(out, "widget created") {
		t.Fatalf("@create output = %q", out)
	}
	refs := g.SearchInventory(env.wizard, "widget")
	if len(refs) != 1 {
		t.Fatalf("widget not in inventory")
	}

	g.DispatchCommand(env.player, "drop widget")
	clearOutput(env.player)
	g.DispatchCommand(env.player, "@destroy widget")
	if out := getOutput(env.player); !strings.Contains(out, "widget destroyed.") {
		t.Errorf("@destroy output = %q", out)
	}
	if obj := g.DB.Get(refs[0]); !obj.IsGoing() {
		t.Errorf("widget not marked going")
	}
	if got := g.SearchLocal(env.wizard, "widget"); len(got) != 0 {
		t.Errorf("destroyed widget still matchable: %v", got)
	}
}

func TestSetAttrAndFlag(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	thing := env.thing(t)
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@set rock = get_err_msg:Hands off.")
	if out := getOutput(env.player); !strings.Contains(out, "rock - get_err_msg set.") {
		t.Errorf("@set attr output = %q", out)
	}
	if thing.GetAttr("get_err_msg") != "Hands off." {
		t.Errorf("attr = %q", thing.GetAttr("get_err_msg"))
	}

	g.DispatchCommand(env.player, "@set rock = DARK")
	if !thing.HasFlag(gamedb.FlagDark) {
		t.Errorf("DARK flag not set")
	}
	g.DispatchCommand(env.player, "@set rock = !DARK")
	if thing.HasFlag(gamedb.FlagDark) {
		t.Errorf("DARK flag not cleared")
	}
}

func TestLockAndUnlock(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	thing := env.thing(t)
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@lock rock/get = none")
	if thing.Locks["get"] != "none" {
		t.Errorf("lock = %q", thing.Locks["get"])
	}
	g.DispatchCommand(env.player, "@unlock rock/get")
	if _, ok := thing.Locks["get"]; ok {
		t.Errorf("lock not removed")
	}
}

func TestWaitSchedulesCommand(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	clearOutput(env.player)

	g.DispatchCommand(env.player, "@wait 0 = say delayed hello")
	if out := getOutput(env.player); !strings.Contains(out, "Queued for 0 seconds.") {
		t.Fatalf("@wait output = %q", out)
	}
	if g.Queue.RunReady() != 1 {
		t.Fatalf("queued task did not run")
	}
	if out := getOutput(env.player); !strings.Contains(out, `You say, "delayed hello"`) {
		t.Errorf("delayed command output = %q", out)
	}
}

func TestWhoListsPlayers(t *testing.T) {
	env := newTestEnv(t)
	clearOutput(env.player)

	env.game.DispatchCommand(env.player, "WHO")
	out := getOutput(env.player)
	if !strings.Contains(out, "Wizard") || !strings.Contains(out, "Bob") {
		t.Errorf("WHO output = %q", out)
	}
	if !strings.Contains(out, "2 players are connected.") {
		t.Errorf("WHO count line = %q", out)
	}
}

func TestMovementAnnouncements(t *testing.T) {
	env := newTestEnv(t)
	g := env.game
	clearOutput(env.player)
	g.DispatchCommand(env.player, "@dig Garden = garden")
	clearOutput(env.player)
	clearOutput(env.bob)

	g.DispatchCommand(env.player, "garden")
	if out := getOutput(env.bob); !strings.Contains(out, "Wizard has left.") {
		t.Errorf("departure echo = %q", out)
	}
	if out := getOutput(env.player); !strings.Contains(out, "Garden") {
		t.Errorf("arrival room display = %q", out)
	}
}

func TestHelpListsCommandsSorted(t *testing.T) {
	env := newTestEnv(t)
	clearOutput(env.player)

	env.game.DispatchCommand(env.player, "help")
	out := getOutput(env.player)
	_, list, ok := strings.Cut(out, "Commands: ")
	if !ok {
		t.Fatalf("help output = %q", out)
	}
	list, _, _ = strings.Cut(list, "\n")
	names := strings.Fields(list)
	if len(names) < 2 || !sort.StringsAreSorted(names) {
		t.Errorf("command list not sorted: %v", names)
	}
}
