package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/crystal-mush/mudbits/pkg/events"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
	"github.com/crystal-mush/mudbits/pkg/palette"
	"github.com/gorilla/websocket"
)

// WebServer exposes the HTTP side of the game: the websocket client
// endpoint, token login, the Prometheus metrics endpoint, and the color
// palette reference page.
type WebServer struct {
	Game *Game
	Auth *AuthService

	srv      *http.Server
	upgrader websocket.Upgrader
}

// NewWebServer builds the web front end from the game config.
func NewWebServer(g *Game) *WebServer {
	ws := &WebServer{
		Game: g,
		Auth: NewAuthService(g.Conf.JWTSecret, g.Conf.JWTExpiry),
	}
	ws.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     ws.checkOrigin,
	}
	return ws
}

func (ws *WebServer) checkOrigin(r *http.Request) bool {
	origins := ws.Game.Conf.CORSOrigins
	if len(origins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range origins {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}
	return false
}

// Start runs the HTTP server in the background.
func (ws *WebServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", ws.handleLogin)
	mux.HandleFunc("/ws", ws.handleWebSocket)
	mux.HandleFunc("/palette", ws.handlePalette)
	if ws.Game.Metrics != nil {
		mux.Handle("/metrics", ws.Game.Metrics.Handler(ws.Game))
	}

	addr := fmt.Sprintf("%s:%d", ws.Game.Conf.WebHost, ws.Game.Conf.WebPort)
	ws.srv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	log.Printf("websrv: listening on %s", addr)
	go func() {
		if err := ws.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("websrv: %v", err)
		}
	}()
	return nil
}

// Stop shuts the HTTP server down.
func (ws *WebServer) Stop() {
	if ws.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ws.srv.Shutdown(ctx)
}

// handlePalette serves the xterm color reference table.
func (ws *WebServer) handlePalette(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := palette.WritePage(w); err != nil {
		log.Printf("websrv: palette page: %v", err)
	}
}

// handleLogin checks credentials and issues a JWT for the websocket client.
func (ws *WebServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	g := ws.Game
	ref := g.LookupPlayer(req.Name)
	var player *gamedb.Object
	if ref != gamedb.Nothing && ref != gamedb.Ambiguous {
		player = g.DB.Get(ref)
	}
	if player == nil || player.HasFlag(gamedb.FlagBot) || !CheckPassword(player, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	token, err := ws.Auth.IssueToken(player.Ref, player.Name)
	if err != nil {
		log.Printf("websrv: issue token for %s: %v", player.Name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token, "name": player.Name})
}

// wsEvent is the JSON envelope sent to websocket clients.
type wsEvent struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Channel string         `json:"channel,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// handleWebSocket upgrades the connection and runs a JSON command loop.
// The first client frame must be {"token": "..."} from /api/login.
func (ws *WebServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websrv: upgrade: %v", err)
		return
	}
	defer conn.Close()
	g := ws.Game
	if g.Metrics != nil {
		g.Metrics.ConnectionAccepted()
	}

	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	var hello struct {
		Token string `json:"token"`
	}
	if err := conn.ReadJSON(&hello); err != nil {
		return
	}
	claims, err := ws.Auth.ValidateToken(hello.Token)
	if err != nil {
		conn.WriteJSON(wsEvent{Type: "error", Text: "invalid token"})
		return
	}
	player := g.DB.Get(claims.Player)
	if player == nil || player.Type != gamedb.TypePlayer {
		conn.WriteJSON(wsEvent{Type: "error", Text: "unknown player"})
		return
	}
	conn.SetReadDeadline(time.Time{})

	d := &Descriptor{
		ID:        g.Conns.NextID(),
		State:     ConnLogin,
		Player:    gamedb.Nothing,
		Addr:      r.RemoteAddr,
		ConnTime:  time.Now(),
		LastCmd:   time.Now(),
		Transport: TransportWebSocket,
	}
	writeMu := make(chan struct{}, 1)
	writeMu <- struct{}{}
	send := func(ev wsEvent) {
		<-writeMu
		defer func() { writeMu <- struct{}{} }()
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(ev); err != nil {
			d.Close()
		}
	}
	d.SendFunc = func(msg string) {
		send(wsEvent{Type: "text", Text: msg})
	}
	d.ReceiveFunc = func(ev events.Event) {
		send(wsEvent{Type: ev.Type.String(), Text: ev.Text, Channel: ev.Channel, Data: ev.Data})
	}
	// Close needs no net.Conn for websocket descriptors; mark state only.
	d.Conn = wsNoopConn{}

	g.Conns.Add(d)
	defer func() {
		g.DisconnectPlayer(d)
		g.Conns.Remove(d)
		d.Close()
	}()

	g.Conns.Login(d, player.Ref)
	g.EmitRoomExcept(player.Location, player.Ref, events.Event{
		Type:   events.EvConnect,
		Source: player.Ref,
		Text:   fmt.Sprintf("%s has connected.", player.Name),
	})
	g.ShowRoom(d, player.Location)

	for {
		var frame struct {
			Command string `json:"command"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		line := strings.TrimSpace(frame.Command)
		if line == "" {
			continue
		}
		if line == "QUIT" {
			send(wsEvent{Type: "text", Text: "Goodbye!"})
			return
		}
		if d.Pending != nil {
			g.HandlePendingMatch(d, line)
			continue
		}
		g.DispatchCommand(d, line)
	}
}

// wsNoopConn satisfies Descriptor.Close for websocket descriptors, whose
// real connection is owned by the handler.
type wsNoopConn struct{}

func (wsNoopConn) Read(b []byte) (int, error)       { return 0, fmt.Errorf("not readable") }
func (wsNoopConn) Write(b []byte) (int, error)      { return len(b), nil }
func (wsNoopConn) Close() error                     { return nil }
func (wsNoopConn) LocalAddr() net.Addr              { return nil }
func (wsNoopConn) RemoteAddr() net.Addr             { return nil }
func (wsNoopConn) SetDeadline(t time.Time) error    { return nil }
func (wsNoopConn) SetReadDeadline(time.Time) error  { return nil }
func (wsNoopConn) SetWriteDeadline(time.Time) error { return nil }
