package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of source definitions
type Loader struct {
	sourcesDir string
}

// NewLoader creates a new source definition loader
func NewLoader(sourcesDir string) *Loader {
	return &Loader{sourcesDir: sourcesDir}
}

// LoadAll loads all YAML source definitions from the sources directory,
// ordered by filename so the processing order is stable between runs.
func (l *Loader) LoadAll() ([]*SourceConfig, error) {
	if _, err := os.Stat(l.sourcesDir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}

	// Also check for .yml extension
	ymlFiles, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)
	sort.Strings(files)

	configs := make([]*SourceConfig, 0, len(files))
	for _, file := range files {
		config, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(config); err != nil {
			return nil, fmt.Errorf("invalid source definition %s: %w", file, err)
		}

		configs = append(configs, config)
		slog.Debug("Loaded source definition", "file", file, "source", config.Name, "kind", config.Kind)
	}

	return configs, nil
}

// loadFile loads a single YAML source definition file
func (l *Loader) loadFile(path string) (*SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config SourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.Name = nameFromFile(path)
	l.setDefaults(&config)

	return &config, nil
}

// setDefaults applies default values to a source definition
func (l *Loader) setDefaults(config *SourceConfig) {
	if config.Settings.Timeout == 0 {
		config.Settings.Timeout = 20 // seconds
	}
	if config.Kind == KindHTML && config.HTML.Selector == "" {
		config.HTML.Selector = "a"
	}
	if config.Kind == KindHTML && config.HTML.Match == "" {
		config.HTML.Match = "contains"
	}
}

// validate validates a source definition
func (l *Loader) validate(config *SourceConfig) error {
	if config.URL == "" {
		return fmt.Errorf("source URL is required")
	}

	switch config.Kind {
	case KindFeed, KindHTML, KindRendered:
	case "":
		return fmt.Errorf("source kind is required")
	default:
		return fmt.Errorf("unknown source kind: %s", config.Kind)
	}

	if config.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}

	if config.Kind == KindHTML {
		switch config.HTML.Match {
		case "prefix", "suffix", "contains":
		default:
			return fmt.Errorf("invalid match mode: %s", config.HTML.Match)
		}
	}

	if config.Kind == KindRendered && len(config.Rendered.LinkPatterns) == 0 {
		return fmt.Errorf("rendered source requires at least one link pattern")
	}

	return nil
}

func nameFromFile(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base
}
