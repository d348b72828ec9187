package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/promptkeeper/internal/flagx"
	"github.com/dmitrijs2005/promptkeeper/internal/timex"
	"github.com/tailscale/hujson"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Fields are
// pointers so a file only overrides what it mentions. Intervals use
// timex.Duration and may be strings like "5s" or integer nanoseconds.
type JsonConfig struct {
	DatabasePath        *string         `json:"database_path"`
	ExportDir           *string         `json:"export_dir"`
	LogLevel            *string         `json:"log_level"`
	LogFormat           *string         `json:"log_format"`
	ProbeURL            *string         `json:"probe_url"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
}

// parseJson overlays cfg with values from the file named by -c/--config.
// Comments and trailing commas are accepted (hujson). Without the flag
// nothing happens. Panics on read or parse errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	data, err = hujson.Standardize(data)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	setIf(&cfg.DatabasePath, jc.DatabasePath)
	setIf(&cfg.ExportDir, jc.ExportDir)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	setIf(&cfg.ProbeURL, jc.ProbeURL)
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
