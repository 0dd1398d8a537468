package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/jlconnor/md2site/internal/config"
)

// envPrefix is shared by every recognized environment variable.
const envPrefix = "MD2SITE_"

// ErrEnvConfig indicates an environment variable could not be parsed.
var ErrEnvConfig = errors.New("invalid environment configuration")

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath      string `env:"CONFIG"`           // MD2SITE_CONFIG: config file name or path
	InputDir        string `env:"INPUT_DIR"`        // MD2SITE_INPUT_DIR: source tree
	OutputDir       string `env:"OUTPUT_DIR"`       // MD2SITE_OUTPUT_DIR: destination tree
	CodeStyle       string `env:"CODE_STYLE"`       // MD2SITE_CODE_STYLE: chroma style
	UnknownLanguage string `env:"UNKNOWN_LANGUAGE"` // MD2SITE_UNKNOWN_LANGUAGE: fallback or error
	AssetPath       string `env:"ASSET_PATH"`       // MD2SITE_ASSET_PATH: custom templates/styles
	LogLevel        string `env:"LOG_LEVEL"`        // MD2SITE_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid MD2SITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	envPrefix + "CONFIG":           true,
	envPrefix + "INPUT_DIR":        true,
	envPrefix + "OUTPUT_DIR":       true,
	envPrefix + "CODE_STYLE":       true,
	envPrefix + "UNKNOWN_LANGUAGE": true,
	envPrefix + "ASSET_PATH":       true,
	envPrefix + "LOG_LEVEL":        true,
}

// loadEnvConfig reads MD2SITE_* values from environ (KEY=value pairs).
func loadEnvConfig(environ []string) (*envConfig, error) {
	cfg, err := env.ParseAsWithOptions[envConfig](env.Options{
		Prefix:      envPrefix,
		Environment: envMap(environ),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvConfig, err)
	}
	return &cfg, nil
}

// warnUnknownEnvVars logs a warning for every unrecognized MD2SITE_* variable.
// Helps catch typos like MD2SITE_CODESTYLE instead of MD2SITE_CODE_STYLE.
func warnUnknownEnvVars(logger *slog.Logger, environ []string) {
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies environment values to cfg. A set variable wins
// over the config file; flags are merged afterwards and win over both.
func applyEnvConfig(e *envConfig, cfg *config.Config) {
	if e.InputDir != "" {
		cfg.Input.Dir = e.InputDir
	}
	if e.OutputDir != "" {
		cfg.Output.Dir = e.OutputDir
	}
	if e.CodeStyle != "" {
		cfg.Highlight.Style = e.CodeStyle
	}
	if e.UnknownLanguage != "" {
		cfg.Highlight.UnknownLanguage = e.UnknownLanguage
	}
	if e.AssetPath != "" {
		cfg.Assets.BasePath = e.AssetPath
	}
}

func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}
