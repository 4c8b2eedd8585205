// Package migrations embeds the SQL migration files so they can be applied
// from any working directory, including test binaries.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
