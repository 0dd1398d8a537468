package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/jlconnor/md2site"
	"github.com/jlconnor/md2site/internal/config"
	"github.com/jlconnor/md2site/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrNoInput     = errors.New("no input directory specified")
	ErrNoOutput    = errors.New("no output directory specified")
	ErrBuildFailed = errors.New("site build failed")
)

// runBuild orchestrates one site build: config resolution, converter and
// builder setup, per-file output and the summary.
func runBuild(ctx context.Context, positional []string, flags *buildFlags, env *Environment) error {
	environ := env.Environ()
	envCfg, err := loadEnvConfig(environ)
	if err != nil {
		return err
	}

	logger, err := newLogger(env, flags, envCfg.LogLevel)
	if err != nil {
		return err
	}
	warnUnknownEnvVars(logger, environ)

	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		return err
	}

	inputDir, outputDir, err := resolveDirs(positional, cfg)
	if err != nil {
		return err
	}

	conv, err := md2site.NewConverter(converterOptions(cfg, logger)...)
	if err != nil {
		return err
	}

	printer := &resultPrinter{env: env, quiet: flags.common.quiet, verbose: flags.common.verbose}
	builder := md2site.NewBuilder(conv,
		md2site.WithFilesystems(afero.NewReadOnlyFs(afero.NewOsFs()), afero.NewOsFs()),
		md2site.WithExtensions(cfg.Markdown.Extensions),
		md2site.WithLinkCheck(!flags.noLinkCheck),
		md2site.WithProgress(printer.printResult),
	)

	logger.Debug("building site", "input", inputDir, "output", outputDir)
	start := env.Now()
	report, err := builder.Build(ctx, inputDir, outputDir)
	if err != nil {
		if errors.Is(err, md2site.ErrCreateDir) {
			return fmt.Errorf("building site: %w%s", err, hints.ForOutputDirectory())
		}
		return fmt.Errorf("building site: %w", err)
	}

	printer.printBrokenLinks(report.BrokenLinks)
	printer.printSummary(report, env.Now().Sub(start))

	if report.Failed > 0 {
		return fmt.Errorf("%w: %d file(s) failed", ErrBuildFailed, report.Failed)
	}
	return nil
}

// resolveConfig loads the config file named by the flag or environment,
// then layers environment and flag overrides on top.
// Priority: flags > environment > config file > defaults.
func resolveConfig(flags *buildFlags, envCfg *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.highlight.style != "" {
		cfg.Highlight.Style = flags.highlight.style
	}
	if flags.highlight.strictLanguages {
		cfg.Highlight.UnknownLanguage = config.UnknownLanguageError
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// resolveDirs picks the input and output directories: positional arguments
// first, then the config.
func resolveDirs(positional []string, cfg *config.Config) (string, string, error) {
	if len(positional) > 2 {
		return "", "", fmt.Errorf("%w: expected at most 2 arguments, got %d%s",
			ErrUsage, len(positional), hints.ForMissingDirs())
	}

	inputDir, outputDir := cfg.Input.Dir, cfg.Output.Dir
	if len(positional) > 0 {
		inputDir = positional[0]
	}
	if len(positional) > 1 {
		outputDir = positional[1]
	}

	if inputDir == "" {
		return "", "", fmt.Errorf("%w%s", ErrNoInput, hints.ForMissingDirs())
	}
	if outputDir == "" {
		return "", "", fmt.Errorf("%w%s", ErrNoOutput, hints.ForMissingDirs())
	}
	return inputDir, outputDir, nil
}

// converterOptions maps the resolved config onto library options.
func converterOptions(cfg *config.Config, logger *slog.Logger) []md2site.Option {
	site := md2site.Site{
		Name:         cfg.Site.Name,
		Author:       cfg.Site.Author,
		Description:  cfg.Site.Description,
		Image:        cfg.Site.Image,
		Lang:         cfg.Site.Lang,
		Stylesheet:   cfg.Site.Stylesheet,
		HomePage:     cfg.Site.HomePage,
		HomeLinkText: cfg.Site.HomeLinkText,
		Footer:       cfg.Site.Footer,
	}
	return []md2site.Option{
		md2site.WithSite(site),
		md2site.WithCodeStyle(cfg.Highlight.Style),
		md2site.WithUnknownLanguage(cfg.Highlight.UnknownLanguage),
		md2site.WithParagraphMaxWidth(cfg.Markdown.ParagraphMaxWidth),
		md2site.WithAssetPath(cfg.Assets.BasePath),
		md2site.WithTemplate(cfg.Assets.Template),
		md2site.WithStyle(cfg.Assets.Style),
		md2site.WithLogger(logger),
	}
}

// newLogger builds the stderr text logger. --verbose means debug and
// --quiet means errors only; otherwise MD2SITE_LOG_LEVEL decides, default warn.
func newLogger(env *Environment, flags *buildFlags, envLevel string) (*slog.Logger, error) {
	level := slog.LevelWarn
	if envLevel != "" {
		if err := level.UnmarshalText([]byte(envLevel)); err != nil {
			return nil, fmt.Errorf("%w: %sLOG_LEVEL: %v", ErrEnvConfig, envPrefix, err)
		}
	}
	switch {
	case flags.common.verbose:
		level = slog.LevelDebug
	case flags.common.quiet:
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level})), nil
}
