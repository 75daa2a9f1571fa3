package server

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/crystal-mush/mudbits/pkg/events"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// CommandHandler executes one parsed command line for a descriptor.
type CommandHandler func(g *Game, d *Descriptor, args string, switches []string)

// Command is one dispatchable game command.
type Command struct {
	Name    string
	Aliases []string
	Wizard  bool
	Handler CommandHandler
	Help    string
}

// InitCommands builds the command table. Aliases share the entry.
func InitCommands() map[string]*Command {
	table := make(map[string]*Command)
	add := func(cmd *Command) {
		table[cmd.Name] = cmd
		for _, a := range cmd.Aliases {
			table[a] = cmd
		}
	}

	add(&Command{Name: "say", Aliases: []string{"\""}, Handler: cmdSay,
		Help: "say <message> - speak to the room"})
	add(&Command{Name: "pose", Aliases: []string{":"}, Handler: cmdPose,
		Help: "pose <action> - emote to the room"})
	add(&Command{Name: ";", Handler: cmdSemipose,
		Help: ";<action> - emote with no space after your name"})
	add(&Command{Name: "think", Handler: cmdThink,
		Help: "think <message> - think out loud to yourself"})
	add(&Command{Name: "look", Aliases: []string{"l"}, Handler: cmdLook,
		Help: "look [[in] <obj>] - look at the room, an object, or inside a container"})
	add(&Command{Name: "inventory", Aliases: []string{"i", "inv"}, Handler: cmdInventory,
		Help: "inventory - list what you carry and wear"})
	add(&Command{Name: "get", Aliases: []string{"take"}, Handler: cmdGet,
		Help: "get <obj> [from <container>] - pick something up"})
	add(&Command{Name: "drop", Handler: cmdDrop,
		Help: "drop <obj> - put something down"})
	add(&Command{Name: "give", Handler: cmdGive,
		Help: "give <obj> to <player> - hand something over"})
	add(&Command{Name: "put", Handler: cmdPut,
		Help: "put <obj> in <container> - store something"})
	add(&Command{Name: "use", Handler: cmdUse,
		Help: "use <obj> [on <target>] - use a usable object"})
	add(&Command{Name: "wear", Handler: cmdWear,
		Help: "wear <obj> [= style] - put on clothing"})
	add(&Command{Name: "remove", Handler: cmdRemoveClothing,
		Help: "remove <obj> - take off clothing"})
	add(&Command{Name: "cover", Handler: cmdCover,
		Help: "cover <worn> with <clothing> - layer clothing"})
	add(&Command{Name: "uncover", Handler: cmdUncover,
		Help: "uncover <worn> - reveal covered clothing"})
	add(&Command{Name: "place", Aliases: []string{"arrange"}, Handler: cmdPlace,
		Help: "place <obj> [= position] - arrange decor in the room description"})
	add(&Command{Name: "craft", Handler: cmdCraft,
		Help: "craft <recipe> from <material>[, ...] - craft an item"})
	add(&Command{Name: "recipes", Handler: cmdRecipes,
		Help: "recipes - list known crafting recipes"})
	add(&Command{Name: "who", Aliases: []string{"WHO"}, Handler: cmdWho,
		Help: "WHO - list connected players"})
	add(&Command{Name: "help", Handler: cmdHelp,
		Help: "help [command] - this text"})
	add(&Command{Name: "addcom", Handler: cmdAddCom,
		Help: "addcom <channel> - join a channel"})
	add(&Command{Name: "delcom", Handler: cmdDelCom,
		Help: "delcom <channel> - leave a channel"})
	add(&Command{Name: "comlist", Handler: cmdComList,
		Help: "comlist - list channels"})
	add(&Command{Name: "+", Handler: cmdChannelSay,
		Help: "+<channel> <message> - talk on a channel"})
	add(&Command{Name: "recap", Handler: cmdRecap,
		Help: "recap <channel> [count] - review recent channel messages"})

	add(&Command{Name: "@dig", Wizard: true, Handler: cmdDig,
		Help: "@dig <room> [= <exit to>[;alias],<exit back>] - dig a new room"})
	add(&Command{Name: "@open", Wizard: true, Handler: cmdOpen,
		Help: "@open <exit>[;alias] = <#room> - open an exit"})
	add(&Command{Name: "@create", Handler: cmdCreate,
		Help: "@create <name> - create a thing"})
	add(&Command{Name: "@describe", Aliases: []string{"@desc"}, Handler: cmdDescribe,
		Help: "@describe <obj> = <description>"})
	add(&Command{Name: "@name", Handler: cmdName,
		Help: "@name <obj> = <new name>"})
	add(&Command{Name: "@set", Handler: cmdSet,
		Help: "@set <obj> = <attr>:<value> or <FLAG>/!<FLAG>"})
	add(&Command{Name: "@lock", Handler: cmdLockCmd,
		Help: "@lock <obj>/<kind> = all|none|owner|<#ref list>"})
	add(&Command{Name: "@unlock", Handler: cmdUnlock,
		Help: "@unlock <obj>/<kind>"})
	add(&Command{Name: "@destroy", Aliases: []string{"@dest"}, Handler: cmdDestroy,
		Help: "@destroy <obj>"})
	add(&Command{Name: "@wait", Handler: cmdWait,
		Help: "@wait <seconds> = <command> - run a command later"})
	add(&Command{Name: "@growth", Handler: cmdGrowth,
		Help: "@growth[/switch] <obj> [= args] - manage staged growth"})
	add(&Command{Name: "@feature", Handler: cmdFeature,
		Help: "@feature[/switch] <obj> [= args] - manage appearance features"})
	add(&Command{Name: "@discord2chan", Wizard: true, Handler: cmdDiscord2Chan,
		Help: "@discord2chan <channel> = <discord id>,<botname> - bridge a channel"})
	add(&Command{Name: "@backup", Wizard: true, Handler: cmdBackup,
		Help: "@backup[/list] - archive the game data, or list archives"})

	return table
}

// DispatchCommand parses and runs one input line: "cmd/sw1/sw2 args".
// Single-character say/pose prefixes work without a separating space.
// Unmatched commands fall through to exit movement.
func (g *Game) DispatchCommand(d *Descriptor, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	d.LastCmd = time.Now()
	d.CmdCount++
	if g.Metrics != nil {
		g.Metrics.CommandProcessed()
	}

	// Prefix forms: "hello, :waves, ;s tail swishes, +pub hi
	switch line[0] {
	case '"':
		cmdSay(g, d, line[1:], nil)
		return
	case ':':
		cmdPose(g, d, line[1:], nil)
		return
	case ';':
		cmdSemipose(g, d, line[1:], nil)
		return
	case '+':
		cmdChannelSay(g, d, line[1:], nil)
		return
	}

	word, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)
	name, switches := splitSwitches(word)

	cmd, ok := g.Commands[name]
	if !ok {
		cmd, ok = g.Commands[strings.ToLower(name)]
	}
	if ok {
		if cmd.Wizard && !Wizard(g, d.Player) {
			d.Send("Permission denied.")
			return
		}
		cmd.Handler(g, d, args, switches)
		return
	}

	if g.tryExit(d, line) {
		return
	}
	d.Send("Huh?  (Type \"help\" for help.)")
}

// splitSwitches splits "@growth/add" into the command and its switches.
func splitSwitches(word string) (string, []string) {
	parts := strings.Split(word, "/")
	if len(parts) == 1 {
		return word, nil
	}
	switches := parts[1:]
	for i, s := range switches {
		switches[i] = strings.ToLower(s)
	}
	return parts[0], switches
}

// tryExit attempts to move the player through an exit named by the line.
func (g *Game) tryExit(d *Descriptor, name string) bool {
	player := g.DB.Get(d.Player)
	if player == nil {
		return false
	}
	room := g.DB.Get(player.Location)
	if room == nil {
		return false
	}
	matches := g.SearchAmong(d.Player, name, room.Exits)
	if len(matches) == 0 {
		return false
	}
	exit := g.DB.Get(matches[0])
	if exit == nil || exit.Link == gamedb.Nothing {
		d.Send("That way leads nowhere.")
		return true
	}
	if !CheckLock(g, d.Player, exit, "traverse", true) {
		d.Send("You can't go that way.")
		return true
	}
	g.MovePlayer(d, exit.Link)
	return true
}

func cmdSay(g *Game, d *Descriptor, args string, _ []string) {
	args = strings.TrimSpace(args)
	if args == "" {
		d.Send("Say what?")
		return
	}
	player := g.DB.Get(d.Player)
	if player == nil {
		return
	}
	d.Sendf("You say, \"%s\"", args)
	g.EmitRoomExcept(player.Location, d.Player, events.Event{
		Type:   events.EvSay,
		Source: d.Player,
		Text:   fmt.Sprintf("%s says, \"%s\"", player.Name, args),
	})
}

func cmdPose(g *Game, d *Descriptor, args string, _ []string) {
	g.pose(d, args, " ")
}

func cmdSemipose(g *Game, d *Descriptor, args string, _ []string) {
	g.pose(d, args, "")
}

func (g *Game) pose(d *Descriptor, args, sep string) {
	args = strings.TrimSpace(args)
	if args == "" {
		d.Send("Pose what?")
		return
	}
	player := g.DB.Get(d.Player)
	if player == nil {
		return
	}
	g.EmitRoom(player.Location, events.Event{
		Type:   events.EvPose,
		Source: d.Player,
		Text:   player.Name + sep + args,
	})
}

func cmdThink(g *Game, d *Descriptor, args string, _ []string) {
	args = strings.TrimSpace(args)
	if args == "" {
		d.Send("Think what?")
		return
	}
	d.Sendf("You think . o O ( %s )", args)
}

func cmdWho(g *Game, d *Descriptor, _ string, _ []string) {
	d.Send("Player Name          On For   Idle")
	count := 0
	for _, other := range g.Conns.AllDescriptors() {
		if other.State != ConnConnected {
			continue
		}
		obj := g.DB.Get(other.Player)
		if obj == nil || obj.HasFlag(gamedb.FlagBot) {
			continue
		}
		count++
		d.Sendf("%-20s %8s %6s", obj.Name,
			FormatConnTime(time.Since(other.ConnTime)), FormatIdleTime(time.Since(other.LastCmd)))
	}
	d.Sendf("%d players are connected.", count)
}

func cmdHelp(g *Game, d *Descriptor, args string, _ []string) {
	args = strings.TrimSpace(args)
	if args != "" {
		if cmd, ok := g.Commands[strings.ToLower(args)]; ok && cmd.Help != "" {
			d.Send(cmd.Help)
			return
		}
		d.Sendf("No help for '%s'.", args)
		return
	}
	seen := make(map[*Command]bool)
	var names []string
	for name, cmd := range g.Commands {
		if seen[cmd] || name != cmd.Name {
			continue
		}
		seen[cmd] = true
		names = append(names, cmd.Name)
	}
	sort.Strings(names)
	d.Send("Commands: " + strings.Join(names, " "))
	d.Send("Use \"help <command>\" for details.")
}

// --- Building commands ---

// resolveTarget finds a single local object or reports why not. Building
// commands don't raise interactive menus; ambiguity is an error.
func (g *Game) resolveTarget(d *Descriptor, name string) *gamedb.Object {
	matches := g.SearchLocal(d.Player, name)
	switch len(matches) {
	case 0:
		d.Sendf("You don't see any %s here.", name)
		return nil
	case 1:
		return g.DB.Get(matches[0])
	default:
		d.Sendf("Which %s do you mean? Use its #ref.", name)
		return nil
	}
}

// controls checks building permission over an object.
func (g *Game) controls(player gamedb.DBRef, obj *gamedb.Object) bool {
	return obj.Owner == player || obj.Ref == player || Wizard(g, player)
}

func cmdDig(g *Game, d *Descriptor, args string, _ []string) {
	lhs, rhs, _ := strings.Cut(args, "=")
	roomName := strings.TrimSpace(lhs)
	if roomName == "" {
		d.Send("Dig what?")
		return
	}
	room := g.DB.NewObject(gamedb.TypeRoom, roomName, d.Player)
	d.Sendf("%s created with room number #%d.", room.Name, room.Ref)
	persist := []*gamedb.Object{room}

	exitNames := splitList(rhs)
	player := g.DB.Get(d.Player)
	if len(exitNames) > 0 && player != nil && player.Location != gamedb.Nothing {
		here := g.DB.Get(player.Location)
		out := g.DB.NewObject(gamedb.TypeExit, exitNames[0], d.Player)
		out.Location = here.Ref
		out.Link = room.Ref
		here.Exits = append(here.Exits, out.Ref)
		d.Sendf("Opened exit %s to %s.", out.Name, room.Name)
		persist = append(persist, out, here)
		if len(exitNames) > 1 {
			back := g.DB.NewObject(gamedb.TypeExit, exitNames[1], d.Player)
			back.Location = room.Ref
			back.Link = here.Ref
			room.Exits = append(room.Exits, back.Ref)
			d.Sendf("Opened exit %s back to %s.", back.Name, here.Name)
			persist = append(persist, back)
		}
	}
	g.PersistObjects(persist...)
}

func cmdOpen(g *Game, d *Descriptor, args string, _ []string) {
	lhs, rhs, ok := strings.Cut(args, "=")
	name := strings.TrimSpace(lhs)
	dest := strings.TrimSpace(rhs)
	if !ok || name == "" || !strings.HasPrefix(dest, "#") {
		d.Send("Usage: @open <exit>[;alias] = <#room>")
		return
	}
	n, err := strconv.Atoi(dest[1:])
	if err != nil {
		d.Send("That's not a room number.")
		return
	}
	target := g.DB.Get(gamedb.DBRef(n))
	if target == nil || target.Type != gamedb.TypeRoom {
		d.Send("There's no room with that number.")
		return
	}
	player := g.DB.Get(d.Player)
	if player == nil || player.Location == gamedb.Nothing {
		return
	}
	here := g.DB.Get(player.Location)
	exit := g.DB.NewObject(gamedb.TypeExit, name, d.Player)
	exit.Location = here.Ref
	exit.Link = target.Ref
	here.Exits = append(here.Exits, exit.Ref)
	g.PersistObjects(exit, here)
	d.Sendf("Opened exit %s to %s.", exit.Name, target.Name)
}

func cmdCreate(g *Game, d *Descriptor, args string, _ []string) {
	name := strings.TrimSpace(args)
	if name == "" {
		d.Send("Create what?")
		return
	}
	obj := g.DB.NewObject(gamedb.TypeThing, name, d.Player)
	g.DB.MoveTo(obj.Ref, d.Player)
	g.PersistObjects(obj, g.DB.Get(d.Player))
	d.Sendf("%s created as object #%d.", obj.Name, obj.Ref)
}

func cmdDescribe(g *Game, d *Descriptor, args string, _ []string) {
	lhs, rhs, ok := strings.Cut(args, "=")
	if !ok {
		d.Send("Usage: @describe <obj> = <description>")
		return
	}
	obj := g.resolveTarget(d, strings.TrimSpace(lhs))
	if obj == nil {
		return
	}
	if !g.controls(d.Player, obj) {
		d.Send("Permission denied.")
		return
	}
	obj.Desc = strings.TrimSpace(rhs)
	g.PersistObject(obj)
	d.Send("Description set.")
}

func cmdName(g *Game, d *Descriptor, args string, _ []string) {
	lhs, rhs, ok := strings.Cut(args, "=")
	newName := strings.TrimSpace(rhs)
	if !ok || newName == "" {
		d.Send("Usage: @name <obj> = <new name>")
		return
	}
	obj := g.resolveTarget(d, strings.TrimSpace(lhs))
	if obj == nil {
		return
	}
	if !g.controls(d.Player, obj) {
		d.Send("Permission denied.")
		return
	}
	if obj.Type == gamedb.TypePlayer && g.LookupPlayer(newName) != gamedb.Nothing {
		d.Send("That name is already taken.")
		return
	}
	old := obj.Name
	obj.Name = newName
	g.PersistObject(obj)
	d.Sendf("%s is now named %s.", old, obj.Name)
}

var settableFlags = map[string]int{
	"WIZARD": gamedb.FlagWizard,
	"DARK":   gamedb.FlagDark,
	"QUIET":  gamedb.FlagQuiet,
}

func cmdSet(g *Game, d *Descriptor, args string, _ []string) {
	lhs, rhs, ok := strings.Cut(args, "=")
	rhs = strings.TrimSpace(rhs)
	if !ok || rhs == "" {
		d.Send("Usage: @set <obj> = <attr>:<value> or <FLAG>/!<FLAG>")
		return
	}
	obj := g.resolveTarget(d, strings.TrimSpace(lhs))
	if obj == nil {
		return
	}
	if !g.controls(d.Player, obj) {
		d.Send("Permission denied.")
		return
	}

	if attr, value, isAttr := strings.Cut(rhs, ":"); isAttr {
		attr = strings.ToLower(strings.TrimSpace(attr))
		value = strings.TrimSpace(value)
		if attr == "" {
			d.Send("Set which attribute?")
			return
		}
		obj.SetAttr(attr, value)
		g.PersistObject(obj)
		if value == "" {
			d.Sendf("%s - %s cleared.", obj.Name, attr)
		} else {
			d.Sendf("%s - %s set.", obj.Name, attr)
		}
		return
	}

	clear := strings.HasPrefix(rhs, "!")
	flagName := strings.ToUpper(strings.TrimPrefix(rhs, "!"))
	flag, known := settableFlags[flagName]
	if !known {
		d.Sendf("I don't know the flag %s.", flagName)
		return
	}
	if flag == gamedb.FlagWizard && !Wizard(g, d.Player) {
		d.Send("Permission denied.")
		return
	}
	obj.SetFlag(flag, !clear)
	g.PersistObject(obj)
	if clear {
		d.Sendf("%s - %s cleared.", obj.Name, flagName)
	} else {
		d.Sendf("%s - %s set.", obj.Name, flagName)
	}
}

func cmdLockCmd(g *Game, d *Descriptor, args string, _ []string) {
	lhs, rhs, ok := strings.Cut(args, "=")
	value := strings.TrimSpace(rhs)
	target, kind, hasKind := strings.Cut(strings.TrimSpace(lhs), "/")
	kind = strings.ToLower(strings.TrimSpace(kind))
	if !ok || !hasKind || kind == "" || value == "" {
		d.Send("Usage: @lock <obj>/<kind> = all|none|owner|<#ref list>")
		return
	}
	obj := g.resolveTarget(d, strings.TrimSpace(target))
	if obj == nil {
		return
	}
	if !g.controls(d.Player, obj) {
		d.Send("Permission denied.")
		return
	}
	if obj.Locks == nil {
		obj.Locks = make(map[string]string)
	}
	obj.Locks[kind] = value
	g.PersistObject(obj)
	d.Sendf("%s - %s lock set.", obj.Name, kind)
}

func cmdUnlock(g *Game, d *Descriptor, args string, _ []string) {
	target, kind, hasKind := strings.Cut(strings.TrimSpace(args), "/")
	kind = strings.ToLower(strings.TrimSpace(kind))
	if !hasKind || kind == "" {
		d.Send("Usage: @unlock <obj>/<kind>")
		return
	}
	obj := g.resolveTarget(d, strings.TrimSpace(target))
	if obj == nil {
		return
	}
	if !g.controls(d.Player, obj) {
		d.Send("Permission denied.")
		return
	}
	delete(obj.Locks, kind)
	g.PersistObject(obj)
	d.Sendf("%s - %s lock removed.", obj.Name, kind)
}

func cmdDestroy(g *Game, d *Descriptor, args string, _ []string) {
	obj := g.resolveTarget(d, strings.TrimSpace(args))
	if obj == nil {
		return
	}
	if !g.controls(d.Player, obj) {
		d.Send("Permission denied.")
		return
	}
	if obj.Type == gamedb.TypePlayer {
		d.Send("Players can't be destroyed this way.")
		return
	}
	g.DestroyObject(obj)
	d.Sendf("%s destroyed.", obj.Name)
}

// DestroyObject marks an object going, detaches it from the world, and
// cancels its scheduled tasks.
func (g *Game) DestroyObject(obj *gamedb.Object) {
	hadPlace := obj.Placed != ""
	loc := obj.Location
	if loc != gamedb.Nothing {
		g.DB.RemoveFromContents(loc, obj.Ref)
	}
	obj.Location = gamedb.Nothing
	obj.Placed = ""
	obj.SetFlag(gamedb.FlagGoing, true)
	g.Queue.Cancel(obj.Ref, "")
	persist := []*gamedb.Object{obj}
	if holder := g.DB.Get(loc); holder != nil {
		persist = append(persist, holder)
	}
	g.PersistObjects(persist...)
	if hadPlace && loc != gamedb.Nothing {
		g.UpdateDecor(loc)
	}
}

func cmdWait(g *Game, d *Descriptor, args string, _ []string) {
	lhs, rhs, ok := strings.Cut(args, "=")
	command := strings.TrimSpace(rhs)
	seconds, err := strconv.Atoi(strings.TrimSpace(lhs))
	if !ok || err != nil || seconds < 0 || command == "" {
		d.Send("Usage: @wait <seconds> = <command>")
		return
	}
	player := d.Player
	g.Queue.AddAfter(player, "wait", time.Duration(seconds)*time.Second, func() {
		if ds := g.Conns.GetByPlayer(player); len(ds) > 0 {
			g.DispatchCommand(ds[0], command)
		}
	})
	d.Sendf("Queued for %d seconds.", seconds)
}
