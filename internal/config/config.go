package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/jlconnor/md2site/internal/fileutil"
	"github.com/jlconnor/md2site/internal/hints"
	"github.com/jlconnor/md2site/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Unknown fence language policies.
const (
	UnknownLanguageFallback = "fallback"
	UnknownLanguageError    = "error"
)

// Field length limits.
const (
	MaxNameLength        = 100  // Site or author name
	MaxDescriptionLength = 300  // Meta description
	MaxURLLength         = 2048 // Browser limit
	MaxLangLength        = 35   // BCP 47 tag
	MaxLinkTextLength    = 100  // Home link label
	MaxFooterLength      = 1000 // Footer HTML
	MaxWidthLength       = 20   // "70ch", "42rem"
	MaxStyleNameLength   = 50   // Chroma style or asset name
	MaxExtensionLength   = 16   // ".markdown"
	MaxPathLength        = 4096 // PATH_MAX on Linux
)

// Config holds all configuration for a site build.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Site      SiteConfig      `yaml:"site"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Highlight HighlightConfig `yaml:"highlight"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// InputConfig defines the source tree.
type InputConfig struct {
	Dir string `yaml:"dir"` // Empty = must be given on the command line
}

// OutputConfig defines the destination tree.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = must be given on the command line
}

// SiteConfig holds the values every page template receives.
type SiteConfig struct {
	Name         string `yaml:"name"`
	Author       string `yaml:"author"`
	Description  string `yaml:"description"`
	Image        string `yaml:"image"`      // Open Graph image, empty = omitted
	Lang         string `yaml:"lang"`       // <html lang>
	Stylesheet   string `yaml:"stylesheet"` // Base stylesheet URL, empty = omitted
	HomePage     string `yaml:"homePage"`   // Title of the page that gets no home link
	HomeLinkText string `yaml:"homeLinkText"`
	Footer       string `yaml:"footer"` // Trusted HTML
}

// MarkdownConfig defines which files are Markdown and how paragraphs render.
type MarkdownConfig struct {
	Extensions        []string `yaml:"extensions"`
	ParagraphMaxWidth string   `yaml:"paragraphMaxWidth"` // Empty = no style attribute
}

// HighlightConfig defines code block highlighting.
type HighlightConfig struct {
	Style           string `yaml:"style"`           // Chroma style name
	UnknownLanguage string `yaml:"unknownLanguage"` // "fallback" or "error"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
	Template string `yaml:"template"` // Page template name
	Style    string `yaml:"style"`    // Layout stylesheet name
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for callers that build
// a Config by hand or apply overrides after loading.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.dir", c.Input.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"site.name", c.Site.Name, MaxNameLength},
		{"site.author", c.Site.Author, MaxNameLength},
		{"site.description", c.Site.Description, MaxDescriptionLength},
		{"site.image", c.Site.Image, MaxURLLength},
		{"site.lang", c.Site.Lang, MaxLangLength},
		{"site.stylesheet", c.Site.Stylesheet, MaxURLLength},
		{"site.homePage", c.Site.HomePage, MaxNameLength},
		{"site.homeLinkText", c.Site.HomeLinkText, MaxLinkTextLength},
		{"site.footer", c.Site.Footer, MaxFooterLength},
		{"markdown.paragraphMaxWidth", c.Markdown.ParagraphMaxWidth, MaxWidthLength},
		{"highlight.style", c.Highlight.Style, MaxStyleNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.template", c.Assets.Template, MaxStyleNameLength},
		{"assets.style", c.Assets.Style, MaxStyleNameLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if len(c.Markdown.Extensions) == 0 {
		return fmt.Errorf("%w: markdown.extensions: at least one extension is required", ErrInvalidValue)
	}
	for i, ext := range c.Markdown.Extensions {
		field := fmt.Sprintf("markdown.extensions[%d]", i)
		if err := validateFieldLength(field, ext, MaxExtensionLength); err != nil {
			return err
		}
		if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext[1:], "./\\") {
			return fmt.Errorf("%w: %s: %q must look like \".md\"", ErrInvalidValue, field, ext)
		}
	}

	if c.Markdown.ParagraphMaxWidth != "" && strings.ContainsAny(c.Markdown.ParagraphMaxWidth, ";\"'<>{}") {
		return fmt.Errorf("%w: markdown.paragraphMaxWidth: %q is not a CSS length", ErrInvalidValue, c.Markdown.ParagraphMaxWidth)
	}

	switch c.Highlight.UnknownLanguage {
	case UnknownLanguageFallback, UnknownLanguageError:
		// valid
	default:
		return fmt.Errorf("%w: highlight.unknownLanguage: %q (must be %s or %s)",
			ErrInvalidValue, c.Highlight.UnknownLanguage, UnknownLanguageFallback, UnknownLanguageError)
	}

	if c.Highlight.Style != "" {
		if _, ok := styles.Registry[strings.ToLower(c.Highlight.Style)]; !ok {
			return fmt.Errorf("%w: highlight.style: unknown style %q%s",
				ErrInvalidValue, c.Highlight.Style, hints.ForStyleNotFound(styles.Names()))
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration of the built-in personal site.
// Input and output directories are left empty.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Name:         "Jason Connor",
			Author:       "Jason Connor",
			Description:  "Personal website of Jason Connor - Software Engineer",
			Image:        "assets/profile.jpg",
			Lang:         "en",
			Stylesheet:   "https://cdn.jsdelivr.net/npm/@picocss/pico@2/css/pico.classless.min.css",
			HomePage:     "index",
			HomeLinkText: "← Return to homepage",
			Footer:       `© 2025 Jason Connor • Built with <a href="https://picocss.com">Pico CSS</a>`,
		},
		Markdown: MarkdownConfig{
			Extensions:        []string{".md"},
			ParagraphMaxWidth: "70ch",
		},
		Highlight: HighlightConfig{
			Style:           "friendly",
			UnknownLanguage: UnknownLanguageFallback,
		},
		Assets: AssetsConfig{
			Template: "page",
			Style:    "default",
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// A bare file name ending in .yaml or .yml is tried as a path first, then
// searched by its stem. Anything else is a config name searched in standard
// locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	switch {
	case fileutil.IsFilePath(nameOrPath):
		configPath = nameOrPath
	case fileutil.HasExtension(nameOrPath, configExtensions) && fileutil.FileExists(nameOrPath):
		configPath = nameOrPath
	case fileutil.HasExtension(nameOrPath, configExtensions):
		configPath, err = resolveConfigPath(strings.TrimSuffix(nameOrPath, filepath.Ext(nameOrPath)))
		if err != nil {
			return nil, err
		}
	default:
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s%s", ErrConfigNotFound, configPath, hints.ForConfigNotFound(nil))
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// configExtensions are tried in order when resolving a config name.
var configExtensions = []string{".yaml", ".yml"}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/md2site/
func resolveConfigPath(name string) (string, error) {
	triedPaths := make([]string, 0, len(configExtensions)*2)

	for _, ext := range configExtensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range configExtensions {
			userPath := filepath.Join(userConfigDir, "md2site", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s%s", ErrConfigNotFound,
		strings.Join(triedPaths, ", "), hints.ForConfigNotFound(triedPaths))
}
