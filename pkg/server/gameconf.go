package server

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// GameConf holds game-level configuration parameters.
type GameConf struct {
	// --- Identity ---
	MudName string `yaml:"mud_name"`
	Port    int    `yaml:"port"`

	// --- Key rooms ---
	PlayerStartingRoom int `yaml:"player_starting_room"`
	PlayerStartingHome int `yaml:"player_starting_home"`

	// --- Paths ---
	DBPath      string `yaml:"db_path"`      // bbolt object database
	JournalPath string `yaml:"journal_path"` // sqlite message journal ("" = disabled)
	TextDir     string `yaml:"text_dir"`     // connect.txt, motd.txt, quit.txt
	BackupDir   string `yaml:"backup_dir"`   // where @backup writes archives

	// Path records where this config was loaded from so backups can
	// include the file. Not itself a config key.
	Path string `yaml:"-"`

	// --- Channels ---
	PublicChannel string `yaml:"public_channel"`

	// --- Web ---
	WebEnabled bool     `yaml:"web_enabled"`
	WebPort    int      `yaml:"web_port"`
	WebHost    string   `yaml:"web_host"`
	JWTSecret  string   `yaml:"jwt_secret" env:"MUDBITS_JWT_SECRET"`
	JWTExpiry  int      `yaml:"jwt_expiry"` // seconds
	CORSOrigins []string `yaml:"cors_origins"`

	// --- Journal ---
	JournalRetention int `yaml:"journal_retention"` // hours, 0 = keep forever

	// --- Relay ---
	RelayEnabled bool   `yaml:"relay_enabled"`
	RelayConf    string `yaml:"relay_conf"` // path to relay yaml (token comes from env)
}

// DefaultGameConf returns the stock settings.
func DefaultGameConf() *GameConf {
	return &GameConf{
		MudName:            "mudbits",
		Port:               4000,
		PlayerStartingRoom: 0,
		PlayerStartingHome: 0,
		DBPath:             "game.db",
		BackupDir:          "backups",
		PublicChannel:      "Public",
		WebPort:            8080,
		JWTExpiry:          86400,
	}
}

// LoadGameConf reads a yaml config file and applies environment overrides.
// A missing file is not an error; defaults are returned.
func LoadGameConf(path string) (*GameConf, error) {
	conf := DefaultGameConf()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		} else {
			conf.Path = path
		}
	}

	if err := env.Parse(conf); err != nil {
		return nil, fmt.Errorf("config env overrides: %w", err)
	}
	return conf, nil
}
