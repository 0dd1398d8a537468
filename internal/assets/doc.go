// Package assets provides the page template and layout CSS that wrap
// rendered Markdown.
//
// Every loader is an FSLoader over an afero filesystem:
//
//	NewEmbeddedLoader()    assets compiled into the binary
//	NewDirLoader(path)     a custom asset directory on disk
//	NewFSLoader(fs)        any afero.Fs, used by tests
//
// AssetResolver chains a custom directory in front of the embedded assets,
// so a site can override only its page template and keep the built-in
// layout style, or the reverse.
//
// Both kinds share one layout:
//
//	{root}/
//	├── styles/{name}.css
//	└── templates/{name}.html
//
// Names are validated before any lookup, and a directory loader refuses
// files that symlink out of the directory.
package assets
