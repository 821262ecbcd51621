// Package migrations embeds SQL migration files.
package migrations

import "embed"

// SchemaFS contains the schema migrations for the exception store.
//
//go:embed schema/*.sql
var SchemaFS embed.FS

// SchemaDir is the directory within SchemaFS where migrations live.
const SchemaDir = "schema"
