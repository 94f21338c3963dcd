// Package config defines process configuration and its layered loading.
package config

// Config contains process configuration.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":3001".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database file. Empty means the default location
	// under the user's home directory.
	DBPath string `koanf:"db_path"`

	// DefaultPracticer is recorded when a write names no practicer.
	DefaultPracticer string `koanf:"default_practicer"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Addr:             ":3001",
		DefaultPracticer: "User",
	}
}
