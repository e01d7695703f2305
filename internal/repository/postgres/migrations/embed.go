package migrations

import "embed"

// FS contains embedded PostgreSQL migrations.
//
//go:embed *.sql
var FS embed.FS
