package config

import (
	"errors"
	"time"
)

// Config is the CLI configuration.
type Config struct {
	// EscapeTimeout is how long a lone ESC waits for the rest of a sequence.
	EscapeTimeout Duration `toml:"escape_timeout"`

	Keys  KeysConfig  `toml:"keys"`
	Theme ThemeConfig `toml:"theme"`
}

// KeysConfig lists key names per action, as accepted by twidge.ParseKeySet.
type KeysConfig struct {
	Interrupt []string `toml:"interrupt"`
	Submit    []string `toml:"submit"`
	NextField []string `toml:"next_field"`
	PrevField []string `toml:"prev_field"`

	// Abort is a key sequence that ends the run without a result.
	// An empty list disables it.
	Abort []string `toml:"abort"`
}

// ThemeConfig holds theme colours: ANSI numbers ("6") or hex ("#00ffff").
type ThemeConfig struct {
	Label  string `toml:"label"`
	Text   string `toml:"text"`
	Focus  string `toml:"focus"`
	Cursor string `toml:"cursor"`
	Echo   string `toml:"echo"`
	Frame  string `toml:"frame"`
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.EscapeTimeout.Duration <= 0 {
		return errors.New("escape_timeout must be positive")
	}
	if c.EscapeTimeout.Duration > 5*time.Second {
		return errors.New("escape_timeout must be at most 5s")
	}
	return nil
}
