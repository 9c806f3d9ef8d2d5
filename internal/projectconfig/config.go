// Package projectconfig provides the ProjectConfig struct and loader for
// .llmcompare.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the project configuration file.
const FileName = ".llmcompare.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultTask     = "chat"
	DefaultPriority = "balanced"
	DefaultLimit    = 5
	DefaultOrder    = "asc"
	DefaultFormat   = "table"

	DefaultInputTokens    = 1000
	DefaultOutputTokens   = 500
	DefaultRequestsPerDay = 1000
	DefaultDays           = 30

	DefaultServerHost = "127.0.0.1"
	DefaultServerPort = 3000
)

// DefaultsConfig holds default command parameters.
type DefaultsConfig struct {
	Task     string `yaml:"task,omitempty"`
	Priority string `yaml:"priority,omitempty"`
	Limit    int    `yaml:"limit,omitempty"`
	Sort     string `yaml:"sort,omitempty"`
	Order    string `yaml:"order,omitempty"`
	Format   string `yaml:"format,omitempty"`
}

// CostConfig holds the default workload for cost estimates.
type CostConfig struct {
	InputTokens    int64 `yaml:"input_tokens,omitempty"`
	OutputTokens   int64 `yaml:"output_tokens,omitempty"`
	RequestsPerDay int64 `yaml:"requests_per_day,omitempty"`
	Days           int   `yaml:"days,omitempty"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string   `yaml:"host,omitempty"`
	Port           int      `yaml:"port,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
	Gzip           *bool    `yaml:"gzip,omitempty"`
	Metrics        *bool    `yaml:"metrics,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .llmcompare.yaml.
type ProjectConfig struct {
	// Catalog is a catalog file to use instead of the built-in one.
	Catalog string `yaml:"catalog,omitempty"`
	// PrefsDir overrides where favorites and scenarios are stored.
	PrefsDir string         `yaml:"prefs_dir,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Cost     CostConfig     `yaml:"cost,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`

	// dir is the directory the file was found in; empty for defaults.
	dir string
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Defaults: DefaultsConfig{
			Task:     DefaultTask,
			Priority: DefaultPriority,
			Limit:    DefaultLimit,
			Order:    DefaultOrder,
			Format:   DefaultFormat,
		},
		Cost: CostConfig{
			InputTokens:    DefaultInputTokens,
			OutputTokens:   DefaultOutputTokens,
			RequestsPerDay: DefaultRequestsPerDay,
			Days:           DefaultDays,
		},
		Server: ServerConfig{
			Host:    DefaultServerHost,
			Port:    DefaultServerPort,
			Gzip:    boolPtr(true),
			Metrics: boolPtr(true),
		},
	}
}

// Load finds .llmcompare.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, path, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Dir returns the directory containing the loaded file, or "" when running
// on defaults.
func (c *ProjectConfig) Dir() string { return c.dir }

// ResolvePath makes p absolute relative to the config file's directory.
// Absolute paths and empty strings are returned unchanged.
func (c *ProjectConfig) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// CatalogPath returns the resolved catalog path, or "" for the built-in catalog.
func (c *ProjectConfig) CatalogPath() string { return c.ResolvePath(c.Catalog) }

// findConfigFile walks up from dir looking for .llmcompare.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Catalog != "" {
		dst.Catalog = src.Catalog
	}
	if src.PrefsDir != "" {
		dst.PrefsDir = src.PrefsDir
	}

	// Defaults
	if src.Defaults.Task != "" {
		dst.Defaults.Task = src.Defaults.Task
	}
	if src.Defaults.Priority != "" {
		dst.Defaults.Priority = src.Defaults.Priority
	}
	if src.Defaults.Limit != 0 {
		dst.Defaults.Limit = src.Defaults.Limit
	}
	if src.Defaults.Sort != "" {
		dst.Defaults.Sort = src.Defaults.Sort
	}
	if src.Defaults.Order != "" {
		dst.Defaults.Order = src.Defaults.Order
	}
	if src.Defaults.Format != "" {
		dst.Defaults.Format = src.Defaults.Format
	}

	// Cost
	if src.Cost.InputTokens != 0 {
		dst.Cost.InputTokens = src.Cost.InputTokens
	}
	if src.Cost.OutputTokens != 0 {
		dst.Cost.OutputTokens = src.Cost.OutputTokens
	}
	if src.Cost.RequestsPerDay != 0 {
		dst.Cost.RequestsPerDay = src.Cost.RequestsPerDay
	}
	if src.Cost.Days != 0 {
		dst.Cost.Days = src.Cost.Days
	}

	// Server
	if src.Server.Host != "" {
		dst.Server.Host = src.Server.Host
	}
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.AllowedOrigins != nil {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}
	if src.Server.Gzip != nil {
		dst.Server.Gzip = src.Server.Gzip
	}
	if src.Server.Metrics != nil {
		dst.Server.Metrics = src.Server.Metrics
	}
}

func boolPtr(b bool) *bool {
	return &b
}
