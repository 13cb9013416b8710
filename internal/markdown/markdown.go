// Package markdown renders prose blocks written in Markdown into HTML.
package markdown

import (
	"bytes"
	"html/template"
	"sync"

	"braces.dev/errtrace"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts Markdown prose into HTML.
//
// The zero value of this is ready to use.
type Renderer struct {
	once sync.Once
	md   goldmark.Markdown
}

func (r *Renderer) init() {
	r.once.Do(func() {
		r.md = goldmark.New(
			goldmark.WithExtensions(
				extension.Linkify,
				extension.Typographer,
			),
		)
	})
}

// Render renders the given Markdown source as HTML.
func (r *Renderer) Render(src []byte) (template.HTML, error) {
	r.init()

	var buff bytes.Buffer
	if err := r.md.Convert(src, &buff); err != nil {
		return "", errtrace.Wrap(err)
	}
	return template.HTML(buff.String()), nil
}
