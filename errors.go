package md2site

import (
	"errors"

	"github.com/jlconnor/md2site/internal/assets"
	"github.com/jlconnor/md2site/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrInvalidOption  = errors.New("invalid option")
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrTemplateRender = pipeline.ErrTemplateRender
	ErrFrontMatter    = pipeline.ErrFrontMatter

	// Highlighting errors.
	ErrUnknownLanguage = pipeline.ErrUnknownLanguage
	ErrUnknownStyle    = pipeline.ErrUnknownStyle

	// Site build errors.
	ErrInputNotDir     = errors.New("input is not a directory")
	ErrSameDirectory   = errors.New("output directory must differ from input directory")
	ErrReadSource      = errors.New("failed to read source file")
	ErrInvalidEncoding = errors.New("source file is not valid UTF-8")
	ErrWritePage       = errors.New("failed to write page")
	ErrCopyAsset       = errors.New("failed to copy file")
	ErrCreateDir       = errors.New("failed to create directory")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
