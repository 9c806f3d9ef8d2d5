// Package schemas embeds the JSON Schema documents used to validate input files.
package schemas

import _ "embed"

// CatalogSchemaJSON is the JSON Schema for model catalog documents.
//
//go:embed catalog.schema.json
var CatalogSchemaJSON string
