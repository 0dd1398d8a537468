package assets

import (
	"fmt"
	"strings"
)

// Built-in asset names.
const (
	DefaultTemplateName = "page"
	DefaultStyleName    = "default"
)

// Kind is one of the two asset families a site is built from.
type Kind int

const (
	// Style is layout CSS, stored as styles/{name}.css.
	Style Kind = iota
	// Template is a page shell, stored as templates/{name}.html.
	Template
)

func (k Kind) String() string {
	if k == Template {
		return "template"
	}
	return "style"
}

// Path returns the slash-separated location of the named asset relative to
// an asset root. name must already have passed ValidateAssetName.
func (k Kind) Path(name string) string {
	if k == Template {
		return "templates/" + name + ".html"
	}
	return "styles/" + name + ".css"
}

func (k Kind) notFound() error {
	if k == Template {
		return ErrTemplateNotFound
	}
	return ErrStyleNotFound
}

// AssetLoader loads the layout CSS and page templates a converter needs.
// Names never carry an extension.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// ValidateAssetName rejects names that could address anything other than a
// single file in styles/ or templates/.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
