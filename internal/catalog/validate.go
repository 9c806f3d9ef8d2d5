package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spboyer/llmcompare/schemas"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// catalogSchema is the compiled JSON Schema for catalog documents.
var catalogSchema *jsonschema.Schema

func init() {
	catalogSchema = mustCompileSchema(schemas.CatalogSchemaJSON, "catalog.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// Validate checks raw catalog bytes against the catalog schema and returns
// one message per violation, each prefixed with its JSON pointer.
// A nil result means the document is structurally valid.
func Validate(data []byte, format Format) []string {
	switch format {
	case FormatJSON:
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return []string{fmt.Sprintf("JSON parse error: %v", err)}
		}
		return validateAgainstSchema(catalogSchema, doc)
	case FormatCSV:
		ms, err := modelsFromCSV(data)
		if err != nil {
			return []string{err.Error()}
		}
		raw, err := json.Marshal(document{Models: ms})
		if err != nil {
			return []string{err.Error()}
		}
		return Validate(raw, FormatJSON)
	default:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return []string{fmt.Sprintf("YAML parse error: %v", err)}
		}
		return validateAgainstSchema(catalogSchema, convertToJSONCompatible(doc))
	}
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// convertToJSONCompatible rewrites YAML-decoded values into the shapes the
// schema validator accepts. yaml.v3 may produce map[any]any for non-string
// keys; those keys are stringified.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[fmt.Sprint(k)] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	default:
		return val
	}
}
