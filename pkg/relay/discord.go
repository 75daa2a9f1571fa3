package relay

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Daemon is the Discord-facing half of the relay. It pushes incoming guild
// messages onto the DiscordToEv tube and drains EvToDiscord into Discord
// channel sends. Delivery is best effort: there are no retries and no
// ordering guarantees.
type Daemon struct {
	cfg     Config
	session *discordgo.Session
	queue   *Queue
	done    chan struct{}
}

// NewDaemon builds a daemon from config. The session is not opened yet.
func NewDaemon(cfg Config) (*Daemon, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("relay: no Discord token configured (set DISCORD_TOKEN)")
	}
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("relay: create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	queue, err := DialQueue(cfg.BeanstalkAddr())
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:     cfg,
		session: session,
		queue:   queue,
		done:    make(chan struct{}),
	}, nil
}

// Run opens the Discord session and blocks, polling EvToDiscord every five
// seconds, until Stop is called.
func (d *Daemon) Run() error {
	d.session.AddHandler(d.onMessage)
	d.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("relay: logged in to Discord as %s (ID: %s)", r.User.Username, r.User.ID)
	})

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("relay: open session: %w", err)
	}
	defer d.session.Close()

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return nil
		case <-ticker.C:
			d.drainOutbound()
		}
	}
}

// Stop shuts the daemon down.
func (d *Daemon) Stop() {
	close(d.done)
	d.queue.Close()
}

// onMessage forwards a Discord message to the game tube, skipping the bot's
// own messages so it never relays itself.
func (d *Daemon) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	msg := InboundMessage{Txt: m.Content, User: m.Author.Username}
	if m.Member != nil && m.Member.Nick != "" {
		msg.User = m.Member.Nick
	}
	if err := d.queue.Put(TubeToGame, msg); err != nil {
		log.Printf("relay: forward to game: %v", err)
	}
}

// drainOutbound moves every ready job from EvToDiscord into Discord sends.
func (d *Daemon) drainOutbound() {
	for {
		var msg OutboundMessage
		err := d.queue.Take(TubeToDiscord, &msg)
		if err == ErrNoJob {
			return
		}
		if err != nil {
			log.Printf("relay: take outbound: %v", err)
			return
		}
		if _, err := d.session.ChannelMessageSend(msg.ChannelID, msg.Text); err != nil {
			log.Printf("relay: send to channel %s: %v", msg.ChannelID, err)
		}
	}
}
