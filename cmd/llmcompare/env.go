package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spboyer/llmcompare/internal/catalog"
	"github.com/spboyer/llmcompare/internal/prefs"
	"github.com/spboyer/llmcompare/internal/projectconfig"
)

// env is what every command needs: the project config, a catalog source and
// the preference store.
type env struct {
	cfg      *projectconfig.ProjectConfig
	provider catalog.Provider
	// file is set when the catalog comes from disk and can be refreshed.
	file  *catalog.FileProvider
	store prefs.Store
}

// loadEnv resolves configuration from the working directory. Flags win over
// .llmcompare.yaml, which wins over built-in defaults.
func loadEnv() (*env, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}

	catalogPath := rootCatalogPath
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath()
	}
	if catalogPath != "" {
		slog.Debug("using catalog file", "path", catalogPath)
		e.file = catalog.NewFileProvider(catalogPath, slog.Default())
		e.provider = e.file
	} else {
		c, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		e.provider = catalog.NewStaticProvider(c)
	}

	dir := rootPrefsDir
	if dir == "" && cfg.PrefsDir != "" {
		dir = cfg.ResolvePath(cfg.PrefsDir)
	}
	if dir == "" {
		if dir, err = prefs.DefaultDir(); err != nil {
			return nil, err
		}
	}
	e.store = prefs.NewFileStore(dir)

	return e, nil
}

func (e *env) catalog(ctx context.Context) (*catalog.Catalog, error) {
	return e.provider.Snapshot(ctx)
}
