// Package migrations embeds the SQL schema so the migrate binary and the
// integration tests apply the exact files shipped with the server.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
