// Package migrations embeds the SQL migration files applied at startup.
package migrations

import "embed"

// FS contains the goose migration files.
//
//go:embed *.sql
var FS embed.FS
