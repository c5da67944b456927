// Package config loads the TOML configuration of a game server.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/luca-patrignani/mental-rpsls/domain/rpsls"
)

type Config struct {
	Game      Game      `toml:"game"`
	Server    Server    `toml:"server"`
	Discovery Discovery `toml:"discovery"`
}

type Game struct {
	Owner       string `toml:"owner"`
	BetSize     uint64 `toml:"bet_size"`
	MaxPlayers  int    `toml:"max_players"`
	StakePolicy string `toml:"stake_policy"`
}

type Server struct {
	Listen         string   `toml:"listen"`
	Name           string   `toml:"name"`
	OriginPatterns []string `toml:"origin_patterns"`
	SendTimeout    Duration `toml:"send_timeout"`
}

type Discovery struct {
	Enabled   bool   `toml:"enabled"`
	Host      string `toml:"host"`
	StartPort uint16 `toml:"start_port"`
	EndPort   uint16 `toml:"end_port"`
	Attempts  uint   `toml:"attempts"`
}

// Duration reads TOML strings such as "2s" or "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func Default() Config {
	return Config{
		Game: Game{
			StakePolicy: string(rpsls.PerMove),
		},
		Server: Server{
			Listen:      "localhost:8080",
			Name:        "rpsls",
			SendTimeout: Duration{2 * time.Second},
		},
		Discovery: Discovery{
			Enabled:   true,
			Host:      "localhost",
			StartPort: 9000,
			EndPort:   9010,
			Attempts:  1,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, errors.Wrapf(err, "decode %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.Errorf("%s: unknown keys %v", path, undecoded)
		}
	}
	return cfg, nil
}

// Validate checks the values that cannot be fixed by defaults.
func (c Config) Validate() error {
	if c.Game.Owner == "" {
		return errors.New("game.owner is required")
	}
	if c.Game.MaxPlayers < 0 {
		return errors.Errorf("game.max_players must not be negative, got %d", c.Game.MaxPlayers)
	}
	if c.Game.MaxPlayers == 1 {
		return errors.New("game.max_players must allow at least two players")
	}
	if _, err := rpsls.ParseStakePolicy(c.Game.StakePolicy); err != nil {
		return errors.Wrap(err, "game.stake_policy")
	}
	if c.Server.Listen == "" {
		return errors.New("server.listen is required")
	}
	if c.Discovery.Enabled && c.Discovery.Host == "" {
		return errors.New("discovery.host is required")
	}
	if c.Discovery.Enabled && c.Discovery.EndPort < c.Discovery.StartPort {
		return errors.Errorf("discovery port range %d-%d is empty", c.Discovery.StartPort, c.Discovery.EndPort)
	}
	return nil
}

// NewGame builds the game described by the [game] section.
func (c Config) NewGame() (*rpsls.Game, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	policy, _ := rpsls.ParseStakePolicy(c.Game.StakePolicy)
	return rpsls.NewGame(rpsls.PlayerID(c.Game.Owner),
		rpsls.WithBetSize(c.Game.BetSize),
		rpsls.WithMaxPlayers(c.Game.MaxPlayers),
		rpsls.WithStakePolicy(policy),
	), nil
}
