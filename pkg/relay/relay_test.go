package relay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestInboundMessageWireForm(t *testing.T) {
	var msg InboundMessage
	if err := json.Unmarshal([]byte(`{"txt":"hello there","user":"Griatch"}`), &msg); err != nil {
		t.Fatalf("unmarshal inbound: %v", err)
	}
	if msg.Txt != "hello there" || msg.User != "Griatch" {
		t.Errorf("got %+v", msg)
	}
}

func TestOutboundMessageWireForm(t *testing.T) {
	out := OutboundMessage{ChannelID: "123456789", Text: "**Anna**: hi"}
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal outbound: %v", err)
	}
	want := `["123456789","**Anna**: hi"]`
	if string(data) != want {
		t.Errorf("wire form = %s, want %s", data, want)
	}

	var back OutboundMessage
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal outbound: %v", err)
	}
	if back != out {
		t.Errorf("round trip = %+v, want %+v", back, out)
	}
}

func TestOutboundMessageNumericChannelID(t *testing.T) {
	var msg OutboundMessage
	if err := json.Unmarshal([]byte(`[123456789, "hi"]`), &msg); err != nil {
		t.Fatalf("unmarshal numeric id: %v", err)
	}
	if msg.ChannelID != "123456789" {
		t.Errorf("channel id = %q", msg.ChannelID)
	}
}

func TestFormatMessage(t *testing.T) {
	cfg := DefaultConfig()
	got := FormatMessage(cfg.FormatToDiscord, "Anna", "hello")
	if got != "**Anna**: hello" {
		t.Errorf("to discord = %q", got)
	}
	got = FormatMessage(cfg.FormatToGame, "Anna", "hello")
	if got != "[Anna] hello" {
		t.Errorf("to game = %q", got)
	}
}

func TestManagerOneBotPerDiscordChannel(t *testing.T) {
	m := NewManager()
	err := m.Add(Binding{BotName: "DC-public", GameChannel: "public", DiscordChannelID: "100"})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	err = m.Add(Binding{BotName: "DC-chat", GameChannel: "chat", DiscordChannelID: "100"})
	if err == nil {
		t.Fatal("expected second bot on same Discord channel to be rejected")
	}

	if _, ok := m.Get("dc-PUBLIC"); !ok {
		t.Error("bot lookup should be case insensitive")
	}
	if got := m.ByGameChannel("Public"); len(got) != 1 {
		t.Errorf("ByGameChannel = %d bindings, want 1", len(got))
	}
	if !m.Remove("DC-public") {
		t.Error("remove should report an existing binding")
	}
	if m.Remove("DC-public") {
		t.Error("second remove should report missing")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	data := []byte("beanstalk_host: queue.internal\nbeanstalk_port: 11301\nformat_to_discord: \"{user} says: {message}\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DISCORD_TOKEN", "abc123")
	t.Setenv("BEANSTALK_PORT", "11302")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BeanstalkHost != "queue.internal" {
		t.Errorf("host = %q", cfg.BeanstalkHost)
	}
	if cfg.BeanstalkPort != 11302 {
		t.Errorf("port = %d, env should win over yaml", cfg.BeanstalkPort)
	}
	if cfg.Token != "abc123" {
		t.Errorf("token = %q", cfg.Token)
	}
	if cfg.FormatToDiscord != "{user} says: {message}" {
		t.Errorf("format = %q", cfg.FormatToDiscord)
	}
	if cfg.BotPrefix != "DC-" {
		t.Errorf("bot prefix default lost: %q", cfg.BotPrefix)
	}
	if cfg.BeanstalkAddr() != "queue.internal:11302" {
		t.Errorf("addr = %q", cfg.BeanstalkAddr())
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BeanstalkAddr() != "127.0.0.1:11300" {
		t.Errorf("addr = %q", cfg.BeanstalkAddr())
	}
}
