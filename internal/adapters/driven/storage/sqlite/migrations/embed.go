// Package migrations holds the schema for the publish history database.
package migrations

import "embed"

// FS holds the numbered up/down migrations, applied in filename order.
//
//go:embed *.sql
var FS embed.FS
