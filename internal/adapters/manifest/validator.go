package manifest

import (
	// blank import for embeds
	_ "embed"
	"strings"

	"github.com/plankbuild/plank/internal/core/domain"
	"github.com/xeipuuv/gojsonschema"
	"go.trai.ch/zerr"
)

//go:embed data/manifest_schema_v1.json
var schemaV1 []byte

// validateSchema checks the decoded manifest document against the embedded
// JSON schema, so unknown keys and mistyped fields fail before resolution
// starts rather than silently dropping.
func validateSchema(doc map[string]any) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaV1)
	docLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return zerr.Wrap(err, "manifest schema validation failed")
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	err = zerr.With(zerr.Wrap(domain.ErrInvalidManifest, "manifest schema validation failed"), "reason", "schema violation")
	return zerr.With(err, "problems", strings.Join(problems, "; "))
}
