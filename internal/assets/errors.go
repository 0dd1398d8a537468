package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName is returned for names that are empty or carry a
	// separator, a dot or a NUL byte.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath is returned when a custom asset directory cannot
	// be used.
	ErrInvalidBasePath = errors.New("invalid asset directory")

	ErrAssetRead = errors.New("reading asset")

	// ErrPathTraversal is returned when an asset resolves, through a
	// symlink, to a file outside its asset directory.
	ErrPathTraversal = errors.New("asset outside asset directory")
)
