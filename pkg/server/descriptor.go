package server

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/crystal-mush/mudbits/pkg/events"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
	"github.com/crystal-mush/mudbits/pkg/oob"
)

// TransportType identifies the kind of transport a Descriptor uses.
type TransportType int

const (
	TransportTCP       TransportType = iota // Traditional telnet/TCP
	TransportWebSocket                      // WebSocket (JSON events)
)

// ConnState tracks the state of a connection.
type ConnState int

const (
	ConnLogin     ConnState = iota // Pre-login: awaiting connect/create
	ConnConnected                  // Logged in as a player
)

// Descriptor represents a single client connection.
// It implements events.Subscriber so it can receive events from the bus.
type Descriptor struct {
	ID        int
	Conn      net.Conn
	Reader    *bufio.Reader
	State     ConnState
	Player    gamedb.DBRef
	Addr      string
	ConnTime  time.Time
	LastCmd   time.Time
	Retries   int
	CmdCount  int
	BytesSent int
	BytesRecv int
	Transport TransportType

	// Pending holds an unanswered disambiguation prompt. While set, the next
	// input line selects a match instead of being dispatched as a command.
	Pending *MatchPrompt

	// Caps holds the OOB protocols negotiated at connect time, nil for
	// transports that skip negotiation.
	Caps *oob.Capabilities

	// SendFunc overrides the default Send behavior (used by WebSocket transport).
	SendFunc func(msg string)
	// ReceiveFunc overrides the default event-to-text path (WebSocket transport).
	ReceiveFunc func(ev events.Event)

	mu     sync.Mutex
	closed bool
}

// NewDescriptor wraps a net.Conn into a Descriptor.
func NewDescriptor(id int, conn net.Conn) *Descriptor {
	now := time.Now()
	return &Descriptor{
		ID:       id,
		Conn:     conn,
		Reader:   bufio.NewReaderSize(conn, 4096),
		State:    ConnLogin,
		Player:   gamedb.Nothing,
		Addr:     conn.RemoteAddr().String(),
		ConnTime: now,
		LastCmd:  now,
		Retries:  3,
	}
}

// Send writes a string to the client connection.
func (d *Descriptor) Send(msg string) {
	if d.SendFunc != nil {
		d.SendFunc(msg)
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	// Ensure lines end with \r\n for telnet
	if !strings.HasSuffix(msg, "\n") {
		msg += "\r\n"
	}
	d.Conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	n, _ := d.Conn.Write([]byte(msg))
	d.BytesSent += n
}

// Sendf formats and sends a message.
func (d *Descriptor) Sendf(format string, args ...any) {
	d.Send(fmt.Sprintf(format, args...))
}

// SendNoNewline writes a string without appending a newline.
func (d *Descriptor) SendNoNewline(msg string) {
	if d.SendFunc != nil {
		d.SendFunc(msg)
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.Conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	n, _ := d.Conn.Write([]byte(msg))
	d.BytesSent += n
}

// SendRaw writes bytes to the connection as-is, for telnet subnegotiation
// frames.
func (d *Descriptor) SendRaw(b []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.Conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	n, _ := d.Conn.Write(b)
	d.BytesSent += n
}

// Close shuts down the connection.
func (d *Descriptor) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.closed = true
		d.Conn.Close()
	}
}

// IsClosed returns whether the connection has been closed.
func (d *Descriptor) IsClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Receive implements events.Subscriber.
func (d *Descriptor) Receive(ev events.Event) {
	if d.ReceiveFunc != nil {
		d.ReceiveFunc(ev)
		return
	}
	if ev.Text != "" {
		d.Send(ev.Text)
	}
	if d.Caps != nil && d.Caps.GMCP && d.Caps.WantsPackage(oob.GMCPPackage(ev.Type)) {
		if frame := oob.EncodeGMCP(ev); frame != nil {
			d.SendRaw(frame)
		}
	}
}

// Closed implements events.Subscriber.
func (d *Descriptor) Closed() bool {
	return d.IsClosed()
}

var _ events.Subscriber = (*Descriptor)(nil)

// ConnManager tracks all active connections.
type ConnManager struct {
	mu          sync.RWMutex
	descriptors map[int]*Descriptor
	nextID      int
	byPlayer    map[gamedb.DBRef][]*Descriptor // player -> connections (multi-login)
	EventBus    *events.Bus                    // nil = disabled
}

// NewConnManager creates a new connection manager.
func NewConnManager() *ConnManager {
	return &ConnManager{
		descriptors: make(map[int]*Descriptor),
		byPlayer:    make(map[gamedb.DBRef][]*Descriptor),
		nextID:      1,
	}
}

// Add registers a new descriptor.
func (cm *ConnManager) Add(d *Descriptor) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.descriptors[d.ID] = d
}

// Remove unregisters a descriptor and unsubscribes it from the event bus.
func (cm *ConnManager) Remove(d *Descriptor) {
	if cm.EventBus != nil && d.Player != gamedb.Nothing {
		cm.EventBus.Unsubscribe(d.Player, d)
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.descriptors, d.ID)
	if d.Player != gamedb.Nothing {
		descs := cm.byPlayer[d.Player]
		for i, dd := range descs {
			if dd.ID == d.ID {
				cm.byPlayer[d.Player] = append(descs[:i], descs[i+1:]...)
				break
			}
		}
		if len(cm.byPlayer[d.Player]) == 0 {
			delete(cm.byPlayer, d.Player)
		}
	}
}

// Login associates a descriptor with a player and subscribes it to the event bus.
func (cm *ConnManager) Login(d *Descriptor, player gamedb.DBRef) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	d.State = ConnConnected
	d.Player = player
	cm.byPlayer[player] = append(cm.byPlayer[player], d)

	if cm.EventBus != nil {
		cm.EventBus.Subscribe(player, d)
	}
}

// NextID returns the next descriptor ID.
func (cm *ConnManager) NextID() int {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	id := cm.nextID
	cm.nextID++
	return id
}

// GetByPlayer returns all descriptors for a given player.
func (cm *ConnManager) GetByPlayer(player gamedb.DBRef) []*Descriptor {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.byPlayer[player]
}

// IsConnected returns true if the player has at least one active connection.
func (cm *ConnManager) IsConnected(player gamedb.DBRef) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.byPlayer[player]) > 0
}

// ConnectedPlayers returns all currently connected player dbrefs.
func (cm *ConnManager) ConnectedPlayers() []gamedb.DBRef {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	players := make([]gamedb.DBRef, 0, len(cm.byPlayer))
	for p := range cm.byPlayer {
		players = append(players, p)
	}
	return players
}

// AllDescriptors returns a snapshot of all active descriptors.
func (cm *ConnManager) AllDescriptors() []*Descriptor {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	descs := make([]*Descriptor, 0, len(cm.descriptors))
	for _, d := range cm.descriptors {
		descs = append(descs, d)
	}
	return descs
}

// Count returns the number of active connections.
func (cm *ConnManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.descriptors)
}

// SendToPlayer sends a message to all connections of a player.
func (cm *ConnManager) SendToPlayer(player gamedb.DBRef, msg string) {
	cm.mu.RLock()
	descs := cm.byPlayer[player]
	cm.mu.RUnlock()
	for _, d := range descs {
		d.Send(msg)
	}
}

// SendToRoom sends a message to all connected players in a room.
func (cm *ConnManager) SendToRoom(db *gamedb.Database, room gamedb.DBRef, msg string) {
	cm.SendToRoomExcept(db, room, gamedb.Nothing, msg)
}

// SendToRoomExcept sends a message to all connected players in a room except one.
func (cm *ConnManager) SendToRoomExcept(db *gamedb.Database, room, except gamedb.DBRef, msg string) {
	roomObj, ok := db.Objects[room]
	if !ok {
		return
	}
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	for _, ref := range roomObj.Contents {
		if ref == except {
			continue
		}
		for _, d := range cm.byPlayer[ref] {
			d.Send(msg)
		}
	}
}

// FormatIdleTime formats a duration as a human-readable idle time.
func FormatIdleTime(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	if secs < 3600 {
		return fmt.Sprintf("%dm", secs/60)
	}
	if secs < 86400 {
		return fmt.Sprintf("%dh", secs/3600)
	}
	return fmt.Sprintf("%dd", secs/86400)
}

// FormatConnTime formats a duration as connection time.
func FormatConnTime(d time.Duration) string {
	secs := int(d.Seconds())
	hours := secs / 3600
	mins := (secs % 3600) / 60
	return fmt.Sprintf("%02d:%02d", hours, mins)
}
