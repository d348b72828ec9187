// Package migrations embeds the goose SQL migrations for the local prompt
// database. The schema has a single fixed version.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
