package md2site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/jlconnor/md2site/internal/fileutil"
	"github.com/jlconnor/md2site/internal/pipeline"
)

// Builder mirrors an input tree into an output tree: Markdown files become
// pages, everything else is copied byte for byte. One Builder runs one build
// at a time; files are processed sequentially in lexical walk order.
type Builder struct {
	conv       *Converter
	src        afero.Fs
	dst        afero.Fs
	extensions []string
	checkLinks bool
	progress   func(FileResult)
	logger     *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithFilesystems sets the filesystems the input is read from and the
// output is written to. Defaults are a read-only OS filesystem and the OS
// filesystem.
func WithFilesystems(src, dst afero.Fs) BuilderOption {
	return func(b *Builder) {
		b.src = src
		b.dst = dst
	}
}

// WithExtensions sets which file extensions are Markdown.
func WithExtensions(exts []string) BuilderOption {
	return func(b *Builder) {
		if len(exts) > 0 {
			b.extensions = exts
		}
	}
}

// WithProgress registers a callback invoked after each file, in walk order.
func WithProgress(fn func(FileResult)) BuilderOption {
	return func(b *Builder) {
		b.progress = fn
	}
}

// WithLinkCheck toggles the broken internal link report. On by default.
func WithLinkCheck(enabled bool) BuilderOption {
	return func(b *Builder) {
		b.checkLinks = enabled
	}
}

// NewBuilder creates a Builder that renders pages with conv.
func NewBuilder(conv *Converter, opts ...BuilderOption) *Builder {
	b := &Builder{
		conv:       conv,
		src:        afero.NewReadOnlyFs(afero.NewOsFs()),
		dst:        afero.NewOsFs(),
		extensions: DefaultExtensions,
		checkLinks: true,
		logger:     conv.cfg.logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build walks inputRoot and writes the site under outputRoot.
//
// Per-file failures are recorded in the report and the walk continues.
// The returned error is reserved for conditions that stop the build: an
// unreadable input root, a directory that cannot be created, or ctx being
// done. The report is returned in every case and holds whatever was
// processed.
func (b *Builder) Build(ctx context.Context, inputRoot, outputRoot string) (*Report, error) {
	report := &Report{}

	info, err := b.src.Stat(inputRoot)
	if err != nil {
		return report, fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("%w: %s", ErrInputNotDir, inputRoot)
	}

	absIn, absOut, err := absRoots(inputRoot, outputRoot)
	if err != nil {
		return report, err
	}
	if absIn == absOut {
		return report, fmt.Errorf("%w: %s", ErrSameDirectory, inputRoot)
	}
	// Generated pages are not fed back in when the output lives inside the input.
	var skipDir string
	if fileutil.IsWithin(absIn, absOut) {
		skipDir = absOut
	}

	w := &walk{
		Builder:    b,
		ctx:        ctx,
		inputRoot:  inputRoot,
		outputRoot: outputRoot,
		skipDir:    skipDir,
		report:     report,
		pages:      make(map[string][]string),
		outputs:    make(map[string]bool),
	}
	err = afero.Walk(b.src, inputRoot, w.visit)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return report, err
	}

	if b.checkLinks {
		w.checkLinks()
	}
	return report, nil
}

// walk carries the state of one Build.
type walk struct {
	*Builder
	ctx        context.Context
	inputRoot  string
	outputRoot string
	skipDir    string
	report     *Report
	// pages maps each converted page (slash path under the output root) to
	// its local links; outputs holds every path written.
	pages   map[string][]string
	outputs map[string]bool
}

func (w *walk) visit(path string, info os.FileInfo, walkErr error) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	rel, err := filepath.Rel(w.inputRoot, path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	if walkErr != nil {
		if rel == "." {
			return fmt.Errorf("%w: %v", ErrReadSource, walkErr)
		}
		w.record(FileResult{Source: rel, Err: fmt.Errorf("%w: %v", ErrReadSource, walkErr)})
		if info != nil && info.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}

	if info.IsDir() {
		return w.visitDir(path, rel)
	}

	switch {
	case !info.Mode().IsRegular() && info.Mode()&os.ModeSymlink == 0:
		w.record(FileResult{Kind: KindSkipped, Source: rel, Reason: "not a regular file"})
	case info.Mode()&os.ModeSymlink != 0 && w.linksToDir(path):
		w.record(FileResult{Kind: KindSkipped, Source: rel, Reason: "symlinked directory"})
	case fileutil.HasExtension(rel, w.extensions):
		start := time.Now()
		res := w.convertFile(path, rel)
		res.Duration = time.Since(start)
		w.record(res)
	default:
		w.record(w.copyFile(path, rel, info))
	}
	return nil
}

func (w *walk) visitDir(path, rel string) error {
	if w.skipDir != "" {
		if abs, err := filepath.Abs(path); err == nil && abs == w.skipDir {
			w.logger.Debug("skipping output directory inside input", "dir", rel)
			return filepath.SkipDir
		}
	}

	outDir := filepath.Join(w.outputRoot, rel)
	if err := w.dst.MkdirAll(outDir, fileutil.DirPermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCreateDir, outDir, err)
	}
	return nil
}

// linksToDir reports whether the symlink at path points at a directory.
// Such links are not followed.
func (w *walk) linksToDir(path string) bool {
	target, err := w.src.Stat(path)
	return err == nil && target.IsDir()
}

func (w *walk) convertFile(path, rel string) FileResult {
	res := FileResult{Kind: KindConverted, Source: rel}

	outRel, err := fileutil.ReplaceExt(rel, ".html")
	if err != nil {
		res.Err = err
		return res
	}
	res.Output = filepath.Join(w.outputRoot, outRel)

	data, err := afero.ReadFile(w.src, path)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrReadSource, err)
		return res
	}
	if !utf8.Valid(data) {
		res.Err = ErrInvalidEncoding
		return res
	}

	pagePath := filepath.ToSlash(outRel)
	result, err := w.conv.Convert(w.ctx, Input{
		Markdown: string(data),
		Title:    strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel)),
		Path:     pagePath,
	})
	if errors.Is(err, ErrEmptyMarkdown) {
		return FileResult{Kind: KindSkipped, Source: rel, Reason: "empty file"}
	}
	if err != nil {
		res.Err = err
		return res
	}

	if err := afero.WriteFile(w.dst, res.Output, result.HTML, fileutil.FilePermissions); err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrWritePage, err)
		return res
	}
	res.Bytes = int64(len(result.HTML))
	w.pages[pagePath] = result.Links
	w.outputs[pagePath] = true
	return res
}

func (w *walk) copyFile(path, rel string, info os.FileInfo) FileResult {
	start := time.Now()
	res := FileResult{Kind: KindCopied, Source: rel, Output: filepath.Join(w.outputRoot, rel)}

	n, err := fileutil.CopyFile(w.src, path, w.dst, res.Output)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", ErrCopyAsset, err)
		return res
	}
	res.Bytes = n
	w.outputs[filepath.ToSlash(rel)] = true

	if info.Mode()&os.ModeSymlink != 0 {
		if target, err := w.src.Stat(path); err == nil {
			info = target
		}
	}
	if err := fileutil.PreserveMetadata(w.dst, res.Output, info); err != nil {
		w.logger.Debug("metadata not preserved", "file", rel, "error", err)
	}
	return res
}

func (w *walk) record(res FileResult) {
	if res.Failed() {
		w.logger.Debug("file failed", "file", res.Source, "error", res.Err)
	} else {
		w.logger.Debug("file done", "file", res.Source, "kind", res.Kind, "bytes", res.Bytes, "duration", res.Duration)
	}
	w.report.add(res)
	if w.progress != nil {
		w.progress(res)
	}
}

// checkLinks reports local links whose target was not generated by this
// build. Pages are checked in walk order.
func (w *walk) checkLinks() {
	for _, res := range w.report.Results {
		if res.Kind != KindConverted || res.Failed() {
			continue
		}
		outRel, err := filepath.Rel(w.outputRoot, res.Output)
		if err != nil {
			continue
		}
		page := filepath.ToSlash(outRel)
		for _, link := range w.pages[page] {
			target, ok := pipeline.ResolveLink(page, link)
			if ok && w.outputs[target] {
				continue
			}
			w.logger.Warn("broken link", "page", page, "link", link)
			w.report.BrokenLinks = append(w.report.BrokenLinks, BrokenLink{Page: page, Link: link})
		}
	}
}

func absRoots(inputRoot, outputRoot string) (string, string, error) {
	absIn, err := filepath.Abs(inputRoot)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	absOut, err := filepath.Abs(outputRoot)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrCreateDir, err)
	}
	return absIn, absOut, nil
}
