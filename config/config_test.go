package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/mental-rpsls/domain/rpsls"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rpsls.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[game]
owner = "alice"
bet_size = 1000
max_players = 6
stake_policy = "entry"

[server]
listen = "0.0.0.0:9999"
send_timeout = "500ms"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "alice", cfg.Game.Owner)
	assert.Equal(t, uint64(1000), cfg.Game.BetSize)
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.Listen)
	assert.Equal(t, 500*time.Millisecond, cfg.Server.SendTimeout.Duration)
	// untouched sections keep their defaults
	assert.Equal(t, "rpsls", cfg.Server.Name)
	assert.Equal(t, uint16(9000), cfg.Discovery.StartPort)
	assert.Equal(t, "localhost", cfg.Discovery.Host)

	g, err := cfg.NewGame()
	require.NoError(t, err)
	assert.Equal(t, rpsls.PlayerID("alice"), g.Owner())
	assert.Equal(t, uint64(1000), g.Stake().BetSize())
	assert.Equal(t, rpsls.EntryOnly, g.Stake().Policy())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[game]
owner = "alice"
bet = 10
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown keys")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `
[server]
send_timeout = "soon"
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"missing owner":    func(c *Config) { c.Game.Owner = "" },
		"negative players": func(c *Config) { c.Game.MaxPlayers = -1 },
		"single player":    func(c *Config) { c.Game.MaxPlayers = 1 },
		"bad policy":       func(c *Config) { c.Game.StakePolicy = "sometimes" },
		"no listen":        func(c *Config) { c.Server.Listen = "" },
		"empty range":      func(c *Config) { c.Discovery.StartPort, c.Discovery.EndPort = 10, 5 },
		"no host":          func(c *Config) { c.Discovery.Host = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Game.Owner = "alice"
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.Game.Owner = "alice"
	assert.NoError(t, cfg.Validate())
}
