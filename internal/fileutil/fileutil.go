// Package fileutil provides file and path helpers shared by the site builder
// and the CLI. File operations go through afero so the same code runs against
// the OS and against in-memory trees.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ErrExtensionEmpty is returned by ReplaceExt for an empty target extension.
var ErrExtensionEmpty = errors.New("extension cannot be empty")

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "site" -> false (name)
//   - "./site.yaml" -> true (relative path)
//   - "/etc/md2site/site.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// HasExtension reports whether name ends with one of exts (case-insensitive).
func HasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// ReplaceExt swaps the extension of path for ext (which must include the dot).
func ReplaceExt(path, ext string) (string, error) {
	if ext == "" {
		return "", ErrExtensionEmpty
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext, nil
}

// IsWithin reports whether target is root itself or lies below it.
// Both paths are cleaned; neither needs to exist.
func IsWithin(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// CopyFile copies src on srcFs to dst on dstFs, truncating any existing file.
// Returns the number of bytes copied. Metadata is not touched; see
// PreserveMetadata.
func CopyFile(srcFs afero.Fs, src string, dstFs afero.Fs, dst string) (int64, error) {
	in, err := srcFs.Open(src)
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	out, err := dstFs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePermissions)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return n, err
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("closing %s: %w", dst, err)
	}
	return n, nil
}

// PreserveMetadata applies the mode and modification time of info to dst.
// Both steps are attempted; the joined error lets callers decide whether to
// care.
func PreserveMetadata(dstFs afero.Fs, dst string, info os.FileInfo) error {
	var errs []error
	if err := dstFs.Chmod(dst, info.Mode().Perm()); err != nil {
		errs = append(errs, fmt.Errorf("chmod: %w", err))
	}
	mtime := info.ModTime()
	if err := dstFs.Chtimes(dst, mtime, mtime); err != nil {
		errs = append(errs, fmt.Errorf("chtimes: %w", err))
	}
	return errors.Join(errs...)
}
