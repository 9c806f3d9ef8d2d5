package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testCatalogYAML = `version: "test-1"
models:
  - id: alpha
    name: Alpha
    provider: OpenAI
    description: Flagship **multimodal** model
    contextWindow: 128000
    inputCostPer1M: 2.5
    outputCostPer1M: 10
    benchmarks: {mmlu: 88, humanEval: 90}
    tags: [Chat, Coding]
    bestFor: [Coding assistants]
    released: "2024"
  - id: beta
    name: Beta
    provider: Anthropic
    contextWindow: 200000
    inputCostPer1M: 0.25
    outputCostPer1M: 1.25
    benchmarks: {mmlu: 75}
    tags: [Chat]
    bestFor: [Customer support]
    released: "2024"
  - id: gamma
    name: Gamma
    provider: Google
    contextWindow: 1000000
    inputCostPer1M: 1.25
    outputCostPer1M: 5
    benchmarks: {mmlu: 86, humanEval: 80}
    tags: [Chat, Long context]
    released: "2025"
    status: {isNew: true}
  - id: delta
    name: Delta
    provider: Meta
    contextWindow: 8000
    inputCostPer1M: 0.1
    outputCostPer1M: 0.1
    tags: [Open weights]
    released: "2025"
`

// testEnv points the CLI at a temporary catalog and preference directory.
type testEnv struct {
	catalogPath string
	prefsDir    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogYAML), 0o644))
	return &testEnv{catalogPath: path, prefsDir: filepath.Join(dir, "prefs")}
}

// run executes the root command with args and returns stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--catalog", e.catalogPath, "--prefs-dir", e.prefsDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "llmcompare %v", args)
	return out
}
