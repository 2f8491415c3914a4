// Package migrations embeds the schema migrations for the optional
// Postgres audit-log sink, applied by internal/auditlog.Runner.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
