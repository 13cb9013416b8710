// Package manifest reads tour manifests.
//
// A tour manifest is a tour.toml file placed inside a playground bundle.
// It declares the reading order and display titles of the bundle's pages,
// standing in for the opaque XML page listing that playground bundles
// usually carry.
//
//	title = "A Mutation Tour"
//
//	[[pages]]
//	name = "mutating"
//	title = "Mutating Parameters and Methods"
//
//	[[pages]]
//	name = "optionals"
package manifest

import (
	"fmt"
	"os"

	"braces.dev/errtrace"
	toml "github.com/pelletier/go-toml/v2"
)

// Filename is the name of the manifest file inside a playground bundle.
const Filename = "tour.toml"

// Tour describes a playground bundle and its pages.
type Tour struct {
	// Title of the tour as a whole.
	// Optional; defaults to a title derived from the bundle name.
	Title string `toml:"title"`

	// Pages lists the bundle's pages in reading order.
	Pages []Page `toml:"pages"`
}

// Page is a single page entry in a tour manifest.
type Page struct {
	// Name of the page directory under Pages/, without its extension.
	// Required.
	Name string `toml:"name"`

	// Title shown for the page.
	// Optional; defaults to a title derived from Name.
	Title string `toml:"title"`
}

// PageTitled returns the title recorded for the page with the given name,
// or "" if the manifest doesn't title it.
func (t *Tour) PageTitled(name string) string {
	for _, p := range t.Pages {
		if p.Name == name {
			return p.Title
		}
	}
	return ""
}

// Load reads the manifest file at the given path.
func Load(path string) (*Tour, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	t, err := Parse(bs)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%s: %w", path, err))
	}
	return t, nil
}

// Parse decodes a manifest document.
func Parse(bs []byte) (*Tour, error) {
	var t Tour
	if err := toml.Unmarshal(bs, &t); err != nil {
		return nil, errtrace.Wrap(err)
	}

	seen := make(map[string]struct{}, len(t.Pages))
	for i, p := range t.Pages {
		if p.Name == "" {
			return nil, errtrace.Wrap(fmt.Errorf("page %d: name is required", i))
		}
		if _, ok := seen[p.Name]; ok {
			return nil, errtrace.Wrap(fmt.Errorf("page %d: duplicate page %q", i, p.Name))
		}
		seen[p.Name] = struct{}{}
	}

	return &t, nil
}
