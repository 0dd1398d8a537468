package assets

import "errors"

// AssetResolver looks each asset up in a chain of loaders: the custom
// asset directory when one is configured, then the embedded assets. Only a
// missing asset moves the lookup down the chain; a bad name or a read
// error stops it.
type AssetResolver struct {
	chain []*FSLoader
}

// NewAssetResolver creates a resolver. An empty customBasePath leaves only
// the embedded assets.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		dir, err := NewDirLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.chain = append(r.chain, dir)
	}
	r.chain = append(r.chain, NewEmbeddedLoader())
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.Load(Style, name)
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.Load(Template, name)
}

// Load returns the first copy of the asset found along the chain.
func (r *AssetResolver) Load(kind Kind, name string) (string, error) {
	var err error
	for _, l := range r.chain {
		var content string
		content, err = l.Load(kind, name)
		if !errors.Is(err, kind.notFound()) {
			return content, err
		}
	}
	return "", err
}

// HasCustomLoader reports whether a custom asset directory is in the chain.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
