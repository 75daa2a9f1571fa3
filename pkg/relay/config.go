// Package relay forwards messages between a Discord channel and a game
// channel through a beanstalkd job queue. The Discord-facing daemon and the
// game-facing runner never talk to each other directly; each side reads one
// tube and writes the other.
package relay

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Tube names. The Discord daemon consumes EvToDiscord and produces
// DiscordToEv; the game runner does the reverse.
const (
	TubeToDiscord = "EvToDiscord"
	TubeToGame    = "DiscordToEv"
)

// Config holds relay settings. The bot token is secret and is normally
// supplied through the environment rather than the yaml file.
type Config struct {
	Token         string `yaml:"token" env:"DISCORD_TOKEN"`
	BeanstalkHost string `yaml:"beanstalk_host" env:"BEANSTALK_HOST"`
	BeanstalkPort int    `yaml:"beanstalk_port" env:"BEANSTALK_PORT"`

	// Format strings; {user} and {message} are replaced.
	FormatToGame    string `yaml:"format_to_game"`
	FormatToDiscord string `yaml:"format_to_discord"`

	// BotPrefix is prepended to bot player names ("DC-").
	BotPrefix string `yaml:"bot_prefix"`
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		BeanstalkHost:   "127.0.0.1",
		BeanstalkPort:   11300,
		FormatToGame:    "[{user}] {message}",
		FormatToDiscord: "**{user}**: {message}",
		BotPrefix:       "DC-",
	}
}

// LoadConfig reads the yaml settings file (optional) and applies environment
// overrides on top.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("relay: read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("relay: parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("relay: env config: %w", err)
	}
	return cfg, nil
}

// BeanstalkAddr returns the host:port dial string for the queue.
func (c Config) BeanstalkAddr() string {
	return fmt.Sprintf("%s:%d", c.BeanstalkHost, c.BeanstalkPort)
}
