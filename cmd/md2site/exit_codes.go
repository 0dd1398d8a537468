package main

import (
	"errors"
	"os"

	"github.com/jlconnor/md2site"
	"github.com/jlconnor/md2site/internal/config"
)

// Exit codes for md2site CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Site built, no file failed
	ExitGeneral = 1 // General error, including failed files
	ExitUsage   = 2 // Invalid flags, config, or options
	ExitIO      = 3 // Input missing, output not creatable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Failed files are reported per file; the run itself completed.
	if errors.Is(err, ErrBuildFailed) {
		return ExitGeneral
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2site.ErrReadSource) ||
		errors.Is(err, md2site.ErrInputNotDir) ||
		errors.Is(err, md2site.ErrCreateDir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoOutput) ||
		errors.Is(err, ErrEnvConfig) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2site.ErrSameDirectory) ||
		errors.Is(err, md2site.ErrInvalidOption) ||
		errors.Is(err, md2site.ErrUnknownStyle) ||
		errors.Is(err, md2site.ErrStyleNotFound) ||
		errors.Is(err, md2site.ErrTemplateNotFound) ||
		errors.Is(err, md2site.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
