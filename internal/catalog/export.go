package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spboyer/llmcompare/internal/models"
	"gopkg.in/yaml.v3"
)

// csvHeader lists the flattened columns written by Export in CSV format.
var csvHeader = []string{
	"id", "name", "provider", "released", "contextWindow", "booksInContext",
	"inputCostPer1M", "outputCostPer1M", "mmlu", "humanEval", "tags", "bestFor",
}

// Export writes ms to w. JSON and YAML produce a document Parse can read
// back; CSV is a flat table for spreadsheets.
func Export(w io.Writer, version string, ms []models.Model, format Format) error {
	doc := document{Version: version, Models: ms}
	if doc.Models == nil {
		doc.Models = []models.Model{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, ms)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func writeCSV(w io.Writer, ms []models.Model) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, m := range ms {
		row := []string{
			m.ID,
			m.Name,
			m.Provider,
			m.Released,
			strconv.Itoa(m.ContextWindow),
			strconv.Itoa(m.BooksInContext()),
			formatFloat(m.InputCostPer1M),
			formatFloat(m.OutputCostPer1M),
			optionalScore(m.Benchmarks, models.BenchmarkMMLU),
			optionalScore(m.Benchmarks, models.BenchmarkHumanEval),
			strings.Join(m.Tags, ";"),
			strings.Join(m.BestFor, ";"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func optionalScore(b models.Benchmarks, name string) string {
	if v, ok := b.Score(name); ok {
		return formatFloat(v)
	}
	return ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
