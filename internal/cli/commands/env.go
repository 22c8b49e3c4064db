package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/conduit-lang/propls/internal/catalog"
	"github.com/conduit-lang/propls/internal/cli/config"
	"github.com/conduit-lang/propls/internal/cli/ui"
	"github.com/conduit-lang/propls/internal/properties"
	"github.com/conduit-lang/propls/internal/values"
)

// environment is what the catalog commands work on.
type environment struct {
	config   *config.Config
	metadata *properties.ConfigurationMetadata
	rules    *values.RulesManager
}

// loadConfig loads propls.yml and applies the global flag overrides.
// Failures are also reported on errOut.
func loadConfig(errOut io.Writer) (*config.Config, error) {
	dir := configDir
	if dir == "" {
		root, err := config.FindRoot()
		if err != nil {
			fmt.Fprint(errOut, ui.ConfigError(err.Error(), nil, noColor))
			return nil, err
		}
		dir = root
	}

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		fmt.Fprint(errOut, ui.ConfigError(err.Error(), nil, noColor))
		return nil, err
	}
	if len(catalogPaths) > 0 {
		cfg.Catalog.Paths = catalogPaths
	}
	if rulesPath != "" {
		cfg.Rules.Path = rulesPath
	}
	return cfg, nil
}

// loadEnvironment loads the configuration, the catalog and the values rules.
// Catalog files that fail to load are reported on errOut and skipped.
func loadEnvironment(errOut io.Writer) (*environment, error) {
	cfg, err := loadConfig(errOut)
	if err != nil {
		return nil, err
	}
	if len(cfg.Catalog.Paths) == 0 {
		return nil, fmt.Errorf("no catalog files configured: set catalog.paths in propls.yml or pass --catalog")
	}

	store := catalog.NewStore(cfg.Catalog.Paths, cfg.Catalog.CacheTTL, zap.NewNop())
	metadata, err := store.Load()
	if err != nil {
		fmt.Fprint(errOut, ui.CatalogError(err.Error(), "Properties of these files are unknown.", noColor))
	} else if len(metadata.Items) == 0 {
		fmt.Fprint(errOut, ui.Warning("The catalog has no properties.", nil, noColor))
	}

	rules := values.Default()
	if cfg.Rules.Path != "" {
		custom, err := values.Load(cfg.Rules.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load values rules: %w", err)
		}
		rules = rules.Merge(custom)
	}

	return &environment{config: cfg, metadata: metadata, rules: rules}, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
