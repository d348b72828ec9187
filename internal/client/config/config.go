package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the promptkeeper CLI.
//
// Fields:
//   - DatabasePath: SQLite file holding the prompt table (":memory:" works too).
//   - ExportDir: directory the export command writes backups into by default.
//   - LogLevel, LogFormat: slog level (debug|info|warn|error) and handler (text|json).
//   - ProbeURL: URL probed to detect connectivity; empty disables the watcher.
//   - OnlineCheckInterval: how often ProbeURL is probed.
type Config struct {
	DatabasePath        string
	ExportDir           string
	LogLevel            string
	LogFormat           string
	ProbeURL            string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "prompts.db"
	c.ExportDir = "."
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.ProbeURL = ""
	c.OnlineCheckInterval = 5 * time.Second
}

// LoadConfig builds a Config from os.Args; see Load.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load constructs a Config, applies defaults, then overlays values from a
// JSON/JSONC file (if -c is given) and command-line flags. Later sources take
// precedence over earlier ones. It panics on unreadable or invalid input.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
