// Package config loads runtime configuration for the promptkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or JSONC file selected with -c or --config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Comments and trailing commas are allowed. Intervals use timex.Duration, so
// they can be strings like "5s" or integer nanoseconds:
//
//	{
//	  // where the prompts live
//	  "database_path": "prompts.db",
//	  "export_dir": "backups",
//	  "log_level": "debug",
//	  "log_format": "json",
//	  "probe_url": "https://example.com/health",
//	  "online_check_interval": "10s",
//	}
//
// Environment variables are not read.
package config
