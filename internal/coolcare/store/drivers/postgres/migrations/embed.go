// Package migrations embeds the PostgreSQL goose migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
