// Package migrations embeds the SQL migration files for the sqlite
// storage adapter.
package migrations

import "embed"

// FS holds the migration files, applied in filename order.
//
//go:embed *.sql
var FS embed.FS
