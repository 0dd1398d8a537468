package assets

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

//go:embed styles templates
var builtin embed.FS

// FSLoader reads assets from a filesystem laid out as styles/ and
// templates/ under its root.
type FSLoader struct {
	fs afero.Fs
	// realBase is the symlink-resolved root on disk, empty for in-memory
	// and embedded filesystems.
	realBase string
}

// NewEmbeddedLoader returns a loader over the assets compiled into the
// binary.
func NewEmbeddedLoader() *FSLoader {
	return NewFSLoader(afero.FromIOFS{FS: builtin})
}

// NewFSLoader returns a loader over fsys.
func NewFSLoader(fsys afero.Fs) *FSLoader {
	return &FSLoader{fs: fsys}
}

// NewDirLoader returns a read-only loader over the directory at basePath.
// Returns ErrInvalidBasePath if basePath is not a readable directory.
func NewDirLoader(basePath string) (*FSLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	osFs := afero.NewOsFs()
	info, err := osFs.Stat(abs)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidBasePath, abs)
	}
	if _, err := afero.ReadDir(osFs, abs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	return &FSLoader{
		fs:       afero.NewReadOnlyFs(afero.NewBasePathFs(osFs, abs)),
		realBase: abs,
	}, nil
}

// LoadStyle reads styles/{name}.css.
func (l *FSLoader) LoadStyle(name string) (string, error) {
	return l.Load(Style, name)
}

// LoadTemplate reads templates/{name}.html.
func (l *FSLoader) LoadTemplate(name string) (string, error) {
	return l.Load(Template, name)
}

// Load reads the named asset of the given kind. A missing file is reported
// as ErrStyleNotFound or ErrTemplateNotFound.
func (l *FSLoader) Load(kind Kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	rel := kind.Path(name)
	if err := l.contain(rel); err != nil {
		return "", err
	}

	data, err := afero.ReadFile(l.fs, rel)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("%w: %q", kind.notFound(), name)
	case err != nil:
		return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, rel, err)
	}
	return string(data), nil
}

// contain follows symlinks on disk and rejects assets that land outside
// realBase. Missing files pass; the read reports them.
func (l *FSLoader) contain(rel string) error {
	if l.realBase == "" {
		return nil
	}
	resolved, err := filepath.EvalSymlinks(filepath.Join(l.realBase, filepath.FromSlash(rel)))
	if err != nil {
		return nil
	}
	if !strings.HasPrefix(resolved, l.realBase+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, rel)
	}
	return nil
}

var _ AssetLoader = (*FSLoader)(nil)
