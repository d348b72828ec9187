// Package flagx lets several loaders share one command line: each loader
// picks out only the flags it owns and parses them with its own pflag set.
package flagx

import (
	"strings"

	"github.com/spf13/pflag"
)

// FilterArgs returns the subset of args that belongs to the flags listed in
// owned (spelled as they appear on the command line, e.g. "-c", "--config").
//
// Both "--flag value" and "--flag=value" spellings are recognised. A token
// that follows an owned flag is taken as its value unless it starts with "-".
// Scanning stops at a bare "--".
func FilterArgs(args []string, owned []string) []string {
	set := make(map[string]bool, len(owned))
	for _, f := range owned {
		set[f] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if set[name] {
				out = append(out, arg)
			}
			continue
		}

		if !set[arg] {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, args[i])
		}
	}

	return out
}

// ConfigPath extracts the config file path given with -c or --config.
// It returns "" when neither is present. Other flags are ignored so callers
// can run it before the main flag set is built.
func ConfigPath(args []string) string {
	var path string

	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.StringVarP(&path, "config", "c", "", "path to config file (JSON or JSONC)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "--config"}))

	return path
}
