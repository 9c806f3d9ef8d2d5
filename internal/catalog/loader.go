package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spboyer/llmcompare/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed models.yaml
var embeddedCatalog []byte

// EmbeddedSource is the Source of the built-in catalog.
const EmbeddedSource = "embedded"

// Format is the serialization of a catalog document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown format %q: must be one of yaml, json, csv", s)
	}
}

// FormatOf infers a document format from a file extension. Anything that is
// not .json or .csv is read as YAML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	default:
		return FormatYAML
	}
}

// document is the on-disk shape of a catalog.
type document struct {
	Version string         `json:"version,omitempty" yaml:"version,omitempty"`
	Models  []models.Model `json:"models" yaml:"models"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog compiled into the binary. It is parsed once
// and shared.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(embeddedCatalog, FormatYAML, WithSource(EmbeddedSource))
	})
	return defaultCatalog, defaultErr
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data, FormatOf(path), WithSource(path))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return c, nil
}

// Parse validates data against the catalog schema, decodes it and checks the
// catalog invariants. Schema failures wrap ErrSchema and list every problem.
func Parse(data []byte, format Format, opts ...Option) (*Catalog, error) {
	if problems := Validate(data, format); len(problems) > 0 {
		return nil, fmt.Errorf("%w:\n  %s", ErrSchema, strings.Join(problems, "\n  "))
	}

	var doc document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding catalog JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding catalog YAML: %w", err)
		}
	case FormatCSV:
		ms, err := modelsFromCSV(data)
		if err != nil {
			return nil, err
		}
		doc.Models = ms
	default:
		return nil, fmt.Errorf("catalogs cannot be read from %s", format)
	}

	opts = append([]Option{WithVersion(doc.Version)}, opts...)
	return New(doc.Models, opts...)
}
