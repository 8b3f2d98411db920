// Package migrations embeds the SQL migration files that create and seed
// the canned answer table.
package migrations

import "embed"

// FS holds the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS
