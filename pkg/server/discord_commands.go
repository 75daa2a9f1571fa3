package server

import (
	"strings"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
	"github.com/crystal-mush/mudbits/pkg/relay"
)

// cmdDiscord2Chan: @discord2chan <channel> = <discord channel id>,<botname>
//
// Bridges a game channel to a Discord channel through the relay queue. A
// bot player joins the channel to represent the Discord side; its name
// carries the configured bot prefix so players can tell it apart.
//
//	@discord2chan/list                  show active bridges
//	@discord2chan/delete <botname>      tear a bridge down
func cmdDiscord2Chan(g *Game, d *Descriptor, args string, switches []string) {
	sw := ""
	if len(switches) > 0 {
		sw = switches[0]
	}
	switch sw {
	case "list":
		listDiscordBridges(g, d)
		return
	case "delete", "remove", "disconnect":
		deleteDiscordBridge(g, d, strings.TrimSpace(args))
		return
	case "":
	default:
		d.Sendf("Unknown switch: /%s", sw)
		return
	}

	lhs, rhs, ok := strings.Cut(args, "=")
	channelName := strings.TrimSpace(lhs)
	parts := splitList(rhs)
	if !ok || channelName == "" || len(parts) != 2 {
		d.Send("Usage: @discord2chan <channel> = <discord channel id>,<botname>")
		return
	}
	discordID, botName := parts[0], parts[1]

	for _, r := range discordID {
		if r < '0' || r > '9' {
			d.Sendf("Discord channel ID '%s' is not valid.", discordID)
			return
		}
	}

	ch := g.GetChannel(channelName)
	if ch == nil {
		d.Sendf("There is no channel named '%s'.", channelName)
		return
	}

	prefix := g.RelayConf.BotPrefix
	if prefix != "" && !strings.HasPrefix(botName, prefix) {
		botName = prefix + botName
	}
	if g.LookupPlayer(botName) != gamedb.Nothing {
		d.Sendf("There is already a player named %s.", botName)
		return
	}

	err := g.RelayBots.Add(relay.Binding{
		BotName:          botName,
		GameChannel:      ch.Name,
		DiscordChannelID: discordID,
	})
	if err != nil {
		d.Send("There is already a bot sending to that channel.")
		return
	}

	bot := g.DB.NewObject(gamedb.TypePlayer, botName, d.Player)
	bot.SetFlag(gamedb.FlagBot, true)
	bot.SetAttr("discord_channel", discordID)
	bot.SetAttr("game_channel", ch.Name)
	ch.Join(bot.Ref)
	g.PersistObject(bot)
	g.persistChannel(ch)
	d.Send("Connection to Discord created.")
}

// RestoreRelayBindings rebuilds the relay manager from bot players found
// in the database, so bridges survive a restart.
func (g *Game) RestoreRelayBindings() int {
	restored := 0
	for _, obj := range g.DB.Objects {
		if !obj.HasFlag(gamedb.FlagBot) || obj.IsGoing() {
			continue
		}
		discordID := obj.GetAttr("discord_channel")
		channel := obj.GetAttr("game_channel")
		if discordID == "" || channel == "" {
			continue
		}
		err := g.RelayBots.Add(relay.Binding{
			BotName:          obj.Name,
			GameChannel:      channel,
			DiscordChannelID: discordID,
		})
		if err == nil {
			restored++
		}
	}
	return restored
}

func listDiscordBridges(g *Game, d *Descriptor) {
	bindings := g.RelayBots.All()
	if len(bindings) == 0 {
		d.Send("There are no Discord bridges.")
		return
	}
	d.Send("Bot                  Channel              Discord ID")
	for _, b := range bindings {
		d.Sendf("%-20s %-20s %s", b.BotName, b.GameChannel, b.DiscordChannelID)
	}
}

func deleteDiscordBridge(g *Game, d *Descriptor, botName string) {
	if botName == "" {
		d.Send("Usage: @discord2chan/delete <botname>")
		return
	}
	prefix := g.RelayConf.BotPrefix
	binding, ok := g.RelayBots.Get(botName)
	if !ok && prefix != "" && !strings.HasPrefix(botName, prefix) {
		binding, ok = g.RelayBots.Get(prefix + botName)
	}
	if !ok {
		d.Sendf("There is no Discord bridge named '%s'.", botName)
		return
	}
	g.RelayBots.Remove(binding.BotName)

	if ref := g.LookupPlayer(binding.BotName); ref != gamedb.Nothing {
		if ch := g.GetChannel(binding.GameChannel); ch != nil {
			ch.Leave(ref)
			g.persistChannel(ch)
		}
		if bot := g.DB.Get(ref); bot != nil && bot.HasFlag(gamedb.FlagBot) {
			g.DestroyObject(bot)
		}
	}
	d.Send("Discord connection destroyed.")
}
