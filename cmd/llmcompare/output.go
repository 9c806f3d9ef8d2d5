package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/llmcompare/internal/models"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

// notAvailable is shown for missing benchmark scores.
const notAvailable = "n/a"

var numberPrinter = message.NewPrinter(language.English)

// checkFormat rejects output formats the command does not support.
func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q: must be one of %s", format, strings.Join(allowed, ", "))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatTokens renders a token count with thousands separators.
func formatTokens(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// formatPrice renders a per-1M-token price. Sub-dime prices keep a third
// decimal so $0.075 does not collapse to $0.08.
func formatPrice(v float64) string {
	if v > 0 && v < 0.1 {
		return numberPrinter.Sprintf("$%.3f", v)
	}
	return numberPrinter.Sprintf("$%.2f", v)
}

// formatScore renders a benchmark score, or n/a when the model has none.
func formatScore(b models.Benchmarks, name string) string {
	v, ok := b.Score(name)
	if !ok {
		return notAvailable
	}
	return fmt.Sprintf("%.1f", v)
}

// formatBudget renders a cost ceiling; an unbounded one reads "any".
func formatBudget(c models.Constraints) string {
	if c.Unbounded() || math.IsNaN(c.MaxCostPer1M) {
		return "any"
	}
	return formatPrice(c.MaxCostPer1M)
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if maxLen <= 0 || len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// table renders aligned columns. The last column is never padded and is
// truncated to fit a terminal.
type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range t.rows {
		for i, c := range r {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(c))
			}
		}
	}
	return widths
}

func (t *table) render(w io.Writer) {
	widths := t.widths()
	total := 0
	for _, wd := range widths {
		total += wd + 2
	}

	lastMax := 0
	if tw := terminalWidth(w); tw > 0 && len(widths) > 0 {
		lastMax = tw - (total - widths[len(widths)-1] - 2)
		if lastMax < 10 {
			lastMax = 0
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			if i == len(cells)-1 {
				parts[i] = truncateName(c, lastMax)
				continue
			}
			parts[i] = padRight(c, widths[i])
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	fmt.Fprintln(w, line(t.headers))                      //nolint:errcheck
	fmt.Fprintln(w, strings.Repeat("─", max(total-2, 0))) //nolint:errcheck
	for _, r := range t.rows {
		fmt.Fprintln(w, line(r)) //nolint:errcheck
	}
}

// section prints a titled block header.
func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("─", runewidth.StringWidth(title))) //nolint:errcheck
}
