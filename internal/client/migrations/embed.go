// Package migrations embeds the client database schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
