// Package migrations embeds the identity service's goose migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
