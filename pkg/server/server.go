package server

import (
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/crystal-mush/mudbits/pkg/events"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
	"github.com/crystal-mush/mudbits/pkg/oob"
)

// oobNegotiateTimeout bounds how long a new connection may stall the
// banner while the client answers our telnet option offers.
const oobNegotiateTimeout = 250 * time.Millisecond

// Server accepts telnet connections and runs the login and command loops.
type Server struct {
	Game     *Game
	listener net.Listener

	mu       sync.Mutex
	shutdown bool
}

// NewServer wraps a game in a telnet front end.
func NewServer(g *Game) *Server {
	s := &Server{Game: g}
	if g.Texts != nil {
		g.Texts.OnReload = func(name string) {
			s.notifyWizards(fmt.Sprintf("GAME: Text file %s reloaded.", name))
		}
	}
	return s
}

// notifyWizards sends a line to every connected wizard.
func (s *Server) notifyWizards(msg string) {
	for _, d := range s.Game.Conns.AllDescriptors() {
		if d.State == ConnConnected && Wizard(s.Game, d.Player) {
			d.Send(msg)
		}
	}
}

// Start listens on the configured port and accepts connections until Stop.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.Game.Conf.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = listener
	log.Printf("server: %s listening on %s", s.Game.Conf.MudName, addr)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				s.mu.Lock()
				down := s.shutdown
				s.mu.Unlock()
				if down {
					return
				}
				log.Printf("server: accept: %v", err)
				continue
			}
			go s.handleConnection(conn)
		}
	}()
	return nil
}

// Stop closes the listener and disconnects everyone.
func (s *Server) Stop() {
	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()
	if s.listener != nil {
		s.listener.Close()
	}
	for _, d := range s.Game.Conns.AllDescriptors() {
		d.Send("The server is shutting down.")
		s.Game.DisconnectPlayer(d)
		s.Game.Conns.Remove(d)
		d.Close()
	}
}

// handleConnection runs one descriptor's whole life: banner, login loop,
// command loop, disconnect.
func (s *Server) handleConnection(conn net.Conn) {
	g := s.Game
	if g.Metrics != nil {
		g.Metrics.ConnectionAccepted()
	}
	caps := oob.Negotiate(conn, oobNegotiateTimeout)

	d := NewDescriptor(g.Conns.NextID(), conn)
	d.Caps = caps
	g.Conns.Add(d)
	log.Printf("server: connection %d from %s", d.ID, d.Addr)

	if caps.MSSP {
		d.SendRaw(oob.EncodeMSSP(map[string]string{
			"NAME":    g.Conf.MudName,
			"PLAYERS": strconv.Itoa(g.Conns.Count()),
			"PORT":    strconv.Itoa(g.Conf.Port),
		}))
	}

	defer func() {
		g.DisconnectPlayer(d)
		g.Conns.Remove(d)
		d.Close()
		log.Printf("server: connection %d closed", d.ID)
	}()

	if banner := g.Texts.Get("connect.txt"); banner != "" {
		d.Send(banner)
	} else {
		d.Sendf("Welcome to %s.", g.Conf.MudName)
		d.Send("Use \"connect <name> <password>\" or \"create <name> <password>\".")
	}

	for {
		raw, err := d.Reader.ReadString('\n')
		if err != nil {
			return
		}
		d.BytesRecv += len(raw)
		line := strings.TrimSpace(stripTelnet(raw))
		if line == "" {
			continue
		}

		if d.State == ConnLogin {
			if !s.handleLogin(d, line) {
				return
			}
			continue
		}

		if line == "QUIT" {
			if quit := g.Texts.Get("quit.txt"); quit != "" {
				d.Send(quit)
			} else {
				d.Send("Goodbye!")
			}
			return
		}
		if d.Pending != nil {
			g.HandlePendingMatch(d, line)
			continue
		}
		g.DispatchCommand(d, line)
	}
}

// handleLogin processes one pre-login line. Returns false to drop the
// connection.
func (s *Server) handleLogin(d *Descriptor, line string) bool {
	g := s.Game
	fields := strings.Fields(line)
	if len(fields) < 3 {
		d.Send("Use \"connect <name> <password>\" or \"create <name> <password>\".")
		return true
	}
	verb := strings.ToLower(fields[0])
	name, password := fields[1], fields[2]

	switch {
	case strings.HasPrefix("connect", verb) && len(verb) >= 2:
		ref := g.LookupPlayer(name)
		var player *gamedb.Object
		if ref != gamedb.Nothing && ref != gamedb.Ambiguous {
			player = g.DB.Get(ref)
		}
		if player == nil || player.HasFlag(gamedb.FlagBot) || !CheckPassword(player, password) {
			d.Send("Either that player does not exist, or has a different password.")
			d.Retries--
			if d.Retries <= 0 {
				d.Send("Too many failed attempts.")
				return false
			}
			return true
		}
		s.completeLogin(d, player)
		return true

	case verb == "create":
		if g.LookupPlayer(name) != gamedb.Nothing {
			d.Send("That name is already taken.")
			return true
		}
		player := g.DB.NewObject(gamedb.TypePlayer, name, gamedb.Nothing)
		player.Owner = player.Ref
		player.Home = gamedb.DBRef(g.Conf.PlayerStartingHome)
		if err := SetPassword(player, password); err != nil {
			log.Printf("server: set password for %s: %v", name, err)
			d.Send("Something went wrong creating that player.")
			return true
		}
		g.DB.MoveTo(player.Ref, gamedb.DBRef(g.Conf.PlayerStartingRoom))
		if ch := g.GetChannel(g.Conf.PublicChannel); ch != nil {
			ch.Join(player.Ref)
			g.persistChannel(ch)
		}
		g.PersistObjects(player, g.DB.Get(player.Location))
		log.Printf("server: created player %s (#%d)", player.Name, player.Ref)
		s.completeLogin(d, player)
		return true

	default:
		d.Send("Use \"connect <name> <password>\" or \"create <name> <password>\".")
		return true
	}
}

// completeLogin attaches the descriptor to its player and shows the world.
func (s *Server) completeLogin(d *Descriptor, player *gamedb.Object) {
	g := s.Game
	g.Conns.Login(d, player.Ref)
	log.Printf("server: %s (#%d) connected on descriptor %d", player.Name, player.Ref, d.ID)

	if motd := g.Texts.Get("motd.txt"); motd != "" {
		d.Send(motd)
	} else if g.MOTD != "" {
		d.Send(g.MOTD)
	}

	if player.Location == gamedb.Nothing {
		g.DB.MoveTo(player.Ref, gamedb.DBRef(g.Conf.PlayerStartingRoom))
		g.PersistObject(player)
	}
	g.EmitRoomExcept(player.Location, player.Ref, events.Event{
		Type:   events.EvConnect,
		Source: player.Ref,
		Text:   fmt.Sprintf("%s has connected.", player.Name),
	})
	g.ShowRoom(d, player.Location)
}

// stripTelnet removes telnet IAC negotiation sequences and stray control
// characters from an input line.
func stripTelnet(s string) string {
	var out []byte
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == oob.IAC {
			if i+1 >= len(b) {
				break
			}
			switch b[i+1] {
			case oob.SB: // SB ... SE
				for i += 2; i < len(b) && b[i] != oob.SE; i++ {
				}
			case oob.WILL, oob.WONT, oob.DO, oob.DONT:
				i += 2
			default:
				i++
			}
			continue
		}
		if c < 32 && c != '\t' {
			continue
		}
		if c == 127 {
			continue
		}
		out = append(out, c)
	}
	return string(out)
}
