package server

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/crystal-mush/mudbits/pkg/events"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// GetChannel finds a channel by name, case-insensitively.
func (g *Game) GetChannel(name string) *gamedb.Channel {
	return g.DB.Channels[strings.ToLower(strings.TrimSpace(name))]
}

// EnsureChannel returns the named channel, creating it if missing.
func (g *Game) EnsureChannel(name string, owner gamedb.DBRef) *gamedb.Channel {
	key := strings.ToLower(strings.TrimSpace(name))
	if ch := g.DB.Channels[key]; ch != nil {
		return ch
	}
	ch := &gamedb.Channel{
		Name:   strings.TrimSpace(name),
		Owner:  owner,
		Header: fmt.Sprintf("[%s]", strings.TrimSpace(name)),
	}
	g.DB.Channels[key] = ch
	g.persistChannel(ch)
	return ch
}

func (g *Game) persistChannel(ch *gamedb.Channel) {
	if g.Store == nil {
		return
	}
	if err := g.Store.PutChannel(ch); err != nil {
		log.Printf("comsys: persist channel %s: %v", ch.Name, err)
	}
}

// deliverToChannel formats and delivers a message to every subscribed,
// connected member and emits the channel event for journaling.
func (g *Game) deliverToChannel(ch *gamedb.Channel, source gamedb.DBRef, senderName, text string) {
	header := ch.Header
	if header == "" {
		header = fmt.Sprintf("[%s]", ch.Name)
	}
	msg := fmt.Sprintf("%s %s: %s", header, senderName, text)
	for _, member := range ch.Members {
		g.Conns.SendToPlayer(member, msg)
	}
	ch.NumSent++
	g.persistChannel(ch)
	g.Emit(events.Event{
		Type:    events.EvChannel,
		Source:  source,
		Channel: ch.Name,
		Text:    msg,
		Data:    map[string]any{"sender": senderName, "text": text},
	})
}

// SendToChannel posts a player's message to a channel and forwards it to
// any Discord bridges on that channel.
func (g *Game) SendToChannel(ch *gamedb.Channel, source gamedb.DBRef, senderName, text string) {
	g.deliverToChannel(ch, source, senderName, text)
	if g.Relay != nil {
		g.Relay.ForwardToDiscord(ch.Name, senderName, text)
		if g.Metrics != nil {
			g.Metrics.RelayMessage()
		}
	}
}

// RelayToChannel delivers a bridged message arriving from Discord. The
// relay runner skips the originating bot when forwarding back out, so a
// message can cross several bridges without echoing to its source.
func (g *Game) RelayToChannel(channel, text, botName string) {
	ch := g.GetChannel(channel)
	if ch == nil {
		log.Printf("comsys: relay for unknown channel %q dropped", channel)
		return
	}
	g.deliverToChannel(ch, gamedb.Nothing, botName, text)
	if g.Metrics != nil {
		g.Metrics.RelayMessage()
	}
	if g.Relay != nil {
		g.Relay.ForwardToDiscord(ch.Name, botName, text)
	}
}

// cmdAddCom: addcom <channel>
func cmdAddCom(g *Game, d *Descriptor, args string, _ []string) {
	name := strings.TrimSpace(args)
	if name == "" {
		d.Send("Usage: addcom <channel>")
		return
	}
	ch := g.GetChannel(name)
	if ch == nil {
		d.Sendf("There is no channel named '%s'.", name)
		return
	}
	if ch.IsMember(d.Player) {
		d.Sendf("You are already on %s.", ch.Name)
		return
	}
	ch.Join(d.Player)
	g.persistChannel(ch)
	d.Sendf("You join %s.", ch.Name)
}

// cmdDelCom: delcom <channel>
func cmdDelCom(g *Game, d *Descriptor, args string, _ []string) {
	name := strings.TrimSpace(args)
	if name == "" {
		d.Send("Usage: delcom <channel>")
		return
	}
	ch := g.GetChannel(name)
	if ch == nil || !ch.IsMember(d.Player) {
		d.Sendf("You are not on any channel named '%s'.", name)
		return
	}
	ch.Leave(d.Player)
	g.persistChannel(ch)
	d.Sendf("You leave %s.", ch.Name)
}

// cmdComList lists channels with membership and traffic.
func cmdComList(g *Game, d *Descriptor, _ string, _ []string) {
	if len(g.DB.Channels) == 0 {
		d.Send("There are no channels.")
		return
	}
	var names []string
	for name := range g.DB.Channels {
		names = append(names, name)
	}
	sort.Strings(names)
	d.Send("Channel              Members  Sent  Joined")
	for _, name := range names {
		ch := g.DB.Channels[name]
		joined := "no"
		if ch.IsMember(d.Player) {
			joined = "yes"
		}
		d.Sendf("%-20s %7d %5d  %s", ch.Name, len(ch.Members), ch.NumSent, joined)
	}
}

// cmdChannelSay: +<channel> <message>
func cmdChannelSay(g *Game, d *Descriptor, args string, _ []string) {
	name, text, _ := strings.Cut(strings.TrimSpace(args), " ")
	text = strings.TrimSpace(text)
	if name == "" || text == "" {
		d.Send("Usage: +<channel> <message>")
		return
	}
	ch := g.GetChannel(name)
	if ch == nil {
		d.Sendf("There is no channel named '%s'.", name)
		return
	}
	if !ch.IsMember(d.Player) {
		d.Sendf("You are not on %s. Use addcom first.", ch.Name)
		return
	}
	g.SendToChannel(ch, d.Player, g.PlayerName(d.Player), text)
}
