package config

import (
	"fmt"

	"github.com/dmitrijs2005/promptkeeper/internal/flagx"
	"github.com/spf13/pflag"
)

var ownedFlags = []string{
	"-d", "--db",
	"-e", "--export-dir",
	"-l", "--log-level",
	"-p", "--probe-url",
	"-i", "--interval",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-d, --db string           SQLite database file
//	-e, --export-dir string   default directory for exports
//	-l, --log-level string    debug|info|warn|error
//	-p, --probe-url string    URL probed for connectivity
//	-i, --interval duration   connectivity probe interval (e.g. 5s)
//
// Args are filtered with flagx.FilterArgs first so -c and unknown flags
// do not trip the parser. Panics on invalid values.
func parseFlags(cfg *Config, args []string) {
	fs := pflag.NewFlagSet("main", pflag.ContinueOnError)

	fs.StringVarP(&cfg.DatabasePath, "db", "d", cfg.DatabasePath, "SQLite database file")
	fs.StringVarP(&cfg.ExportDir, "export-dir", "e", cfg.ExportDir, "default directory for exports")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "log level (debug|info|warn|error)")
	fs.StringVarP(&cfg.ProbeURL, "probe-url", "p", cfg.ProbeURL, "URL probed for connectivity")
	fs.DurationVarP(&cfg.OnlineCheckInterval, "interval", "i", cfg.OnlineCheckInterval, "connectivity probe interval")

	if err := fs.Parse(flagx.FilterArgs(args, ownedFlags)); err != nil {
		panic(err)
	}

	if cfg.OnlineCheckInterval <= 0 {
		panic(fmt.Sprintf("interval must be positive, got %s", cfg.OnlineCheckInterval))
	}
}
