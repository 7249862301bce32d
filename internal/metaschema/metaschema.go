// Package metaschema embeds the Draft-07 meta-schema so the CLI can
// validate a schema document against itself when no instance is given.
package metaschema

import "embed"

//go:embed schema/draft-07.json
var schemaFS embed.FS

// URI is the Draft-07 meta-schema's canonical identifier.
const URI = "http://json-schema.org/draft-07/schema#"

// Draft07 returns the raw bytes of the embedded Draft-07 meta-schema.
func Draft07() ([]byte, error) {
	return schemaFS.ReadFile("schema/draft-07.json")
}
