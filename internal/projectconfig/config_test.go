package projectconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assertEqual(t, "Catalog", "", cfg.Catalog)
	assertEqual(t, "PrefsDir", "", cfg.PrefsDir)

	// Defaults
	assertEqual(t, "Defaults.Task", "chat", cfg.Defaults.Task)
	assertEqual(t, "Defaults.Priority", "balanced", cfg.Defaults.Priority)
	assertEqualInt(t, "Defaults.Limit", 5, cfg.Defaults.Limit)
	assertEqual(t, "Defaults.Sort", "", cfg.Defaults.Sort)
	assertEqual(t, "Defaults.Order", "asc", cfg.Defaults.Order)
	assertEqual(t, "Defaults.Format", "table", cfg.Defaults.Format)

	// Cost
	assertEqualInt(t, "Cost.InputTokens", 1000, int(cfg.Cost.InputTokens))
	assertEqualInt(t, "Cost.OutputTokens", 500, int(cfg.Cost.OutputTokens))
	assertEqualInt(t, "Cost.RequestsPerDay", 1000, int(cfg.Cost.RequestsPerDay))
	assertEqualInt(t, "Cost.Days", 30, cfg.Cost.Days)

	// Server
	assertEqual(t, "Server.Host", "127.0.0.1", cfg.Server.Host)
	assertEqualInt(t, "Server.Port", 3000, cfg.Server.Port)
	assertBoolPtr(t, "Server.Gzip", true, cfg.Server.Gzip)
	assertBoolPtr(t, "Server.Metrics", true, cfg.Server.Metrics)
	if cfg.Server.AllowedOrigins != nil {
		t.Error("Server.AllowedOrigins should be nil by default")
	}
	assertEqual(t, "Dir", "", cfg.Dir())
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
catalog: data/models.json
prefs_dir: /var/lib/llmcompare
defaults:
  task: code-generation
  priority: quality
  limit: 3
  sort: inputCost
  order: desc
  format: json
cost:
  input_tokens: 4000
  output_tokens: 800
  requests_per_day: 250
  days: 7
server:
  host: 0.0.0.0
  port: 8080
  allowed_origins: ["http://localhost:5173"]
  gzip: false
  metrics: false
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	assertEqual(t, "Catalog", "data/models.json", cfg.Catalog)
	assertEqual(t, "CatalogPath", filepath.Join(dir, "data/models.json"), cfg.CatalogPath())
	assertEqual(t, "PrefsDir", "/var/lib/llmcompare", cfg.PrefsDir)
	assertEqual(t, "Defaults.Task", "code-generation", cfg.Defaults.Task)
	assertEqual(t, "Defaults.Priority", "quality", cfg.Defaults.Priority)
	assertEqualInt(t, "Defaults.Limit", 3, cfg.Defaults.Limit)
	assertEqual(t, "Defaults.Sort", "inputCost", cfg.Defaults.Sort)
	assertEqual(t, "Defaults.Order", "desc", cfg.Defaults.Order)
	assertEqual(t, "Defaults.Format", "json", cfg.Defaults.Format)
	assertEqualInt(t, "Cost.InputTokens", 4000, int(cfg.Cost.InputTokens))
	assertEqualInt(t, "Cost.OutputTokens", 800, int(cfg.Cost.OutputTokens))
	assertEqualInt(t, "Cost.RequestsPerDay", 250, int(cfg.Cost.RequestsPerDay))
	assertEqualInt(t, "Cost.Days", 7, cfg.Cost.Days)
	assertEqual(t, "Server.Host", "0.0.0.0", cfg.Server.Host)
	assertEqualInt(t, "Server.Port", 8080, cfg.Server.Port)
	assertBoolPtr(t, "Server.Gzip", false, cfg.Server.Gzip)
	assertBoolPtr(t, "Server.Metrics", false, cfg.Server.Metrics)
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("Server.AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
defaults:
  priority: cost
server:
  port: 9090
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	assertEqual(t, "Defaults.Priority", "cost", cfg.Defaults.Priority)
	assertEqualInt(t, "Server.Port", 9090, cfg.Server.Port)

	// Untouched fields keep defaults.
	assertEqual(t, "Defaults.Task", "chat", cfg.Defaults.Task)
	assertEqual(t, "Server.Host", "127.0.0.1", cfg.Server.Host)
	assertBoolPtr(t, "Server.Gzip", true, cfg.Server.Gzip)
	assertEqual(t, "CatalogPath", "", cfg.CatalogPath())
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("expected nil error for missing file, got %v", err)
	}

	defaults := New()
	assertEqual(t, "Defaults.Task", defaults.Defaults.Task, cfg.Defaults.Task)
	assertEqualInt(t, "Server.Port", defaults.Server.Port, cfg.Server.Port)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "defaults: [unclosed")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_WalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "catalog: models.yaml\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nested)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "Dir", root, cfg.Dir())
	assertEqual(t, "CatalogPath", filepath.Join(root, "models.yaml"), cfg.CatalogPath())
}

func TestResolvePath_KeepsAbsolutePaths(t *testing.T) {
	cfg := &ProjectConfig{dir: "/project"}
	abs := filepath.Join(string(filepath.Separator), "srv", "models.yaml")

	assertEqual(t, "absolute", abs, cfg.ResolvePath(abs))
	assertEqual(t, "empty", "", cfg.ResolvePath(""))
	assertEqual(t, "relative", filepath.Join("/project", "x.yaml"), cfg.ResolvePath("x.yaml"))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", field, got, want)
	}
}

func assertEqualInt(t *testing.T, field string, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", field, got, want)
	}
}

func assertBoolPtr(t *testing.T, field string, want bool, got *bool) {
	t.Helper()
	if got == nil {
		t.Errorf("%s is nil, want *%v", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %v, want %v", field, *got, want)
	}
}
