package config

import (
	"encoding/json"

	"github.com/go-openapi/spec"
)

// SchemaPattern is the editor facing form of membertype.Pattern. JSON Schema
// regexes have no portable unicode classes, so \w stands in for them.
const SchemaPattern = `^\w+\|\|[0-9]+\|\|.*$`

// Schema describes the configuration file for editors that validate YAML.
func Schema() *spec.Schema {
	memberType := spec.StringProperty().
		WithPattern(SchemaPattern).
		WithDescription("defaultName||order||effectiveName, e.g. method||8||Methods")

	root := &spec.Schema{
		SchemaProps: spec.SchemaProps{
			Schema: spec.SchemaURL("http://json-schema.org/draft-07/schema#"),
			Type:   spec.StringOrArray{"object"},
			Properties: map[string]spec.Schema{
				"memberTypes": *spec.ArrayProperty(memberType).
					WithDescription("Serialized member type settings. Unknown or malformed entries fall back to defaults."),
				"alphabetize": *spec.BoolProperty().
					WithDescription("Sort declarations by name inside each group."),
				"regions": *spec.BoolProperty().
					WithDescription("Wrap each group in // region markers."),
				"excludes": *spec.ArrayProperty(spec.StringProperty()).
					WithDescription("Directories to skip."),
				"parseVendor": *spec.BoolProperty().
					WithDescription("Also reorganize vendor directories."),
			},
			AdditionalProperties: &spec.SchemaOrBool{Allows: false},
		},
	}
	return root.WithTitle("core-maid configuration")
}

// SchemaJSON renders Schema indented.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "    ")
}
