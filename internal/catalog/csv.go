package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spboyer/llmcompare/internal/capability"
	"github.com/spboyer/llmcompare/internal/models"
)

// csvRow is one CSV record keyed by column name.
type csvRow map[string]string

// csvRequired lists the columns a CSV catalog must have.
var csvRequired = []string{"id", "name", "provider", "contextWindow", "inputCostPer1M", "outputCostPer1M"}

// readCSV reads r and returns the data rows as maps of column to value.
// The first row is treated as headers.
func readCSV(r io.Reader) ([]csvRow, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: empty (no header row)")
	}

	headers := records[0]
	for _, col := range csvRequired {
		if !containsString(headers, col) {
			return nil, fmt.Errorf("csv: missing column %q", col)
		}
	}

	rows := make([]csvRow, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		row := make(csvRow, len(headers))
		for j, h := range headers {
			row[h] = strings.TrimSpace(record[j])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// modelsFromCSV reads the flat layout Export writes. Derived columns such as
// booksInContext are ignored; blank scores mean the benchmark is unknown.
func modelsFromCSV(data []byte) ([]models.Model, error) {
	rows, err := readCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	ms := make([]models.Model, 0, len(rows))
	for i, row := range rows {
		m, err := row.model()
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: %w", i+2, err)
		}
		ms = append(ms, m)
	}
	return ms, nil
}

func (r csvRow) model() (models.Model, error) {
	m := models.Model{
		ID:          r["id"],
		Name:        r["name"],
		Provider:    r["provider"],
		Description: r["description"],
		Released:    r["released"],
		Tags:        r.list("tags"),
		BestFor:     r.list("bestFor"),
		KeyFeatures: r.list("keyFeatures"),
	}

	var err error
	if m.ContextWindow, err = strconv.Atoi(r["contextWindow"]); err != nil {
		return m, fmt.Errorf("contextWindow: %w", err)
	}
	if m.InputCostPer1M, err = strconv.ParseFloat(r["inputCostPer1M"], 64); err != nil {
		return m, fmt.Errorf("inputCostPer1M: %w", err)
	}
	if m.OutputCostPer1M, err = strconv.ParseFloat(r["outputCostPer1M"], 64); err != nil {
		return m, fmt.Errorf("outputCostPer1M: %w", err)
	}

	for _, name := range []string{models.BenchmarkMMLU, models.BenchmarkHumanEval} {
		s := r[name]
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return m, fmt.Errorf("%s: %w", name, err)
		}
		if m.Benchmarks == nil {
			m.Benchmarks = models.Benchmarks{}
		}
		m.Benchmarks[name] = v
	}
	return m, nil
}

// list splits a ";"-joined cell. Blank cells yield nil.
func (r csvRow) list(col string) capability.Labels {
	s := r[col]
	if s == "" {
		return nil
	}
	var out capability.Labels
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
