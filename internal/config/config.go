// Package config loads command line settings from a YAML or JSON file with
// FORMFIELD_ environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/goliatone/go-formfield/internal/logging"
)

// EnvPrefix marks environment overrides. Nested keys use a double
// underscore: FORMFIELD_SERVER__ADDR sets server.addr.
const EnvPrefix = "FORMFIELD_"

type Config struct {
	// Namespace is the skin used when a request leaves it empty.
	Namespace string        `json:"namespace"`
	Logging   LoggingConfig `json:"logging"`
	Server    ServerConfig  `json:"server"`
	Labels    LabelsConfig  `json:"labels"`
	Theme     ThemeConfig   `json:"theme"`
	Layout    LayoutConfig  `json:"layout"`
}

type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type ServerConfig struct {
	Addr    string `json:"addr"`
	Metrics bool   `json:"metrics"`
}

// LabelsConfig controls label sanitising. When Sanitize is set every label
// passes through the resolver's bluemonday policy.
type LabelsConfig struct {
	Sanitize bool `json:"sanitize"`
}

type ThemeConfig struct {
	// Manifest is the path of a YAML theme manifest. Themes are disabled
	// when empty.
	Manifest string `json:"manifest"`
	Name     string `json:"name"`
	Variant  string `json:"variant"`
}

type LayoutConfig struct {
	// Dir holds page templates searched ahead of the embedded ones.
	Dir      string `json:"dir"`
	Template string `json:"template"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: logging.FormatConsole},
		Server:  ServerConfig{Addr: ":8080", Metrics: true},
	}
}

// Load reads path (optional) and then applies environment overrides on top
// of Default().
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("config: unsupported format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("config: unknown log format %q", c.Logging.Format)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("config: server.addr is required")
	}
	if c.Theme.Name != "" && c.Theme.Manifest == "" {
		return fmt.Errorf("config: theme.name requires theme.manifest")
	}
	return nil
}
