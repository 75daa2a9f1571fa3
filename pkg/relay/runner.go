package relay

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// Binding links one game channel to one Discord channel through a named bot.
type Binding struct {
	BotName          string // prefixed bot player name ("DC-public")
	GameChannel      string // game channel name
	DiscordChannelID string
}

// ChannelSink is the game side of the bridge: the comsys implements it to
// deliver relayed Discord text into a channel.
type ChannelSink interface {
	RelayToChannel(channel, text string, botName string)
}

// Manager tracks the active relay bindings. A Discord channel can be bound
// to at most one bot.
type Manager struct {
	mu       sync.RWMutex
	bindings map[string]Binding // lowercase bot name -> binding
}

// NewManager creates an empty binding set.
func NewManager() *Manager {
	return &Manager{bindings: make(map[string]Binding)}
}

// Add registers a binding. Fails if the Discord channel already has a bot.
func (m *Manager) Add(b Binding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.bindings {
		if existing.DiscordChannelID == b.DiscordChannelID {
			return fmt.Errorf("relay: there is already a bot sending to channel %s", b.DiscordChannelID)
		}
	}
	m.bindings[strings.ToLower(b.BotName)] = b
	return nil
}

// Remove drops a binding by bot name. Returns false if it did not exist.
func (m *Manager) Remove(botName string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(botName)
	_, ok := m.bindings[key]
	delete(m.bindings, key)
	return ok
}

// Get returns the binding for a bot name.
func (m *Manager) Get(botName string) (Binding, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bindings[strings.ToLower(botName)]
	return b, ok
}

// ByGameChannel returns the bindings attached to a game channel.
func (m *Manager) ByGameChannel(channel string) []Binding {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Binding
	for _, b := range m.bindings {
		if strings.EqualFold(b.GameChannel, channel) {
			out = append(out, b)
		}
	}
	return out
}

// All returns every binding.
func (m *Manager) All() []Binding {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Binding, 0, len(m.bindings))
	for _, b := range m.bindings {
		out = append(out, b)
	}
	return out
}

// Runner is the game-facing half of the relay. It polls the DiscordToEv
// tube once a second and delivers formatted text to every bound game
// channel; ForwardToDiscord pushes game channel traffic the other way.
//
// All bindings share one inbound tube, so a reserved message cannot be
// attributed to a single binding; it is delivered to every binding, which
// is identical for the single-binding case and predictable otherwise.
type Runner struct {
	cfg     Config
	queue   *Queue
	manager *Manager
	sink    ChannelSink
	done    chan struct{}
	once    sync.Once
}

// NewRunner connects the game side of the relay to the queue.
func NewRunner(cfg Config, manager *Manager, sink ChannelSink) (*Runner, error) {
	queue, err := DialQueue(cfg.BeanstalkAddr())
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:     cfg,
		queue:   queue,
		manager: manager,
		sink:    sink,
		done:    make(chan struct{}),
	}, nil
}

// Start launches the poll loop.
func (r *Runner) Start() {
	go r.loop()
}

// Stop shuts the runner down.
func (r *Runner) Stop() {
	r.once.Do(func() {
		close(r.done)
		r.queue.Close()
	})
}

func (r *Runner) loop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.drainInbound()
		}
	}
}

// drainInbound delivers every ready Discord message into the bound game
// channels.
func (r *Runner) drainInbound() {
	for {
		var msg InboundMessage
		err := r.queue.Take(TubeToGame, &msg)
		if err == ErrNoJob {
			return
		}
		if err != nil {
			log.Printf("relay: take inbound: %v", err)
			return
		}
		text := msg.Txt
		if msg.User != "" {
			text = FormatMessage(r.cfg.FormatToGame, msg.User, msg.Txt)
		}
		for _, b := range r.manager.All() {
			r.sink.RelayToChannel(b.GameChannel, text, b.BotName)
		}
	}
}

// ForwardToDiscord pushes a game channel message onto the Discord tube for
// every binding attached to that channel. Messages originated by a relay
// bot are skipped so the bridge never loops its own traffic.
func (r *Runner) ForwardToDiscord(channel, senderName, text string) {
	bindings := r.manager.ByGameChannel(channel)
	if len(bindings) == 0 {
		return
	}
	for _, b := range bindings {
		if strings.EqualFold(senderName, b.BotName) {
			continue
		}
		out := OutboundMessage{
			ChannelID: b.DiscordChannelID,
			Text:      FormatMessage(r.cfg.FormatToDiscord, senderName, text),
		}
		if err := r.queue.Put(TubeToDiscord, out); err != nil {
			log.Printf("relay: forward to discord: %v", err)
		}
	}
}
