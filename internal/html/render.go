// Package html renders HTML from tour.Page.
package html

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	ttemplate "text/template"

	"braces.dev/errtrace"
	"go.anag.dev/play2html/internal/highlight"
	"go.anag.dev/play2html/internal/markdown"
	"go.anag.dev/play2html/internal/must"
	"go.anag.dev/play2html/internal/relative"
	"go.anag.dev/play2html/internal/tour"
)

const _staticDir = "_"

var (
	//go:embed tmpl/*.html
	_tmplFS embed.FS

	//go:embed static/**
	_staticFS embed.FS

	// Trick borrowed from pkgsite:
	// Unusable function references at parse time,
	// and then Clone and replace at render time.
	// This way, template validity is still
	// verified at init.
	_pageTmpl = template.Must(
		template.New("page.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS,
				"tmpl/page.html", "tmpl/layout.html", "tmpl/pages.html"),
	)

	_tourIndexTmpl = template.Must(
		template.New("directory.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS, "tmpl/directory.html", "tmpl/layout.html", "tmpl/pages.html"),
	)
)

// Highlighter renders snippet source code into HTML.
type Highlighter interface {
	Snippet([]byte) string
	WriteCSS(io.Writer) error
}

var _ Highlighter = (*highlight.Highlighter)(nil)

// Prose renders Markdown prose into HTML.
type Prose interface {
	Render([]byte) (template.HTML, error)
}

var _ Prose = (*markdown.Renderer)(nil)

// Renderer renders components into HTML.
type Renderer struct {
	// Path to the home page of the generated site.
	Home string

	// Whether we're in embedded mode.
	// In this mode, output will only contain the page content
	// and will not generate complete, stylized HTML pages.
	Embedded bool

	// FrontMatter to include at the top of each file, if any.
	FrontMatter *ttemplate.Template

	// Highlighter renders snippet blocks into HTML.
	Highlighter Highlighter

	// Prose renders prose blocks into HTML.
	Prose Prose

	// NormalizeRelativePath is an optional function that
	// normalizes relative paths printed in the generated HTML.
	NormalizeRelativePath func(string) string
}

func (r *Renderer) templateName() string {
	if r.Embedded {
		return "Body"
	}
	return "Page"
}

func (r *Renderer) highlighter() Highlighter {
	if r.Highlighter != nil {
		return r.Highlighter
	}
	return _defaultHighlighter
}

func (r *Renderer) prose() Prose {
	if r.Prose != nil {
		return r.Prose
	}
	return _defaultProse
}

var (
	_defaultHighlighter = new(highlight.Highlighter)
	_defaultProse       = new(markdown.Renderer)
)

// WriteStatic dumps the contents of static/ into the given directory.
//
// This is a no-op if the renderer is running in embedded mode.
func (r *Renderer) WriteStatic(dir string) error {
	if r.Embedded {
		return nil
	}

	dir = filepath.Join(dir, _staticDir)
	static, err := fs.Sub(_staticFS, "static")
	must.NotErrorf(err, "embedded static directory is missing")
	return errtrace.Wrap(fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == "." {
			return err
		}

		outPath := filepath.Join(dir, path)
		if d.IsDir() {
			return errtrace.Wrap(os.MkdirAll(outPath, 0o1755))
		}

		bs, err := fs.ReadFile(static, path)
		if err != nil {
			return errtrace.Wrap(err)
		}

		// The highlighter's stylesheet rides along with the main one
		// so that pages need only a single <link>.
		if path == "css/main.css" {
			buff := bytes.NewBuffer(bs)
			buff.WriteString("\n")
			if err := r.highlighter().WriteCSS(buff); err != nil {
				return errtrace.Wrap(err)
			}
			bs = buff.Bytes()
		}

		return errtrace.Wrap(os.WriteFile(outPath, bs, 0o644))
	}))
}

type frontmatterPageData struct {
	Title    string
	Synopsis string
}

type frontmatterData struct {
	Path        string
	Basename    string
	NumChildren int
	Page        frontmatterPageData
}

func (r *Renderer) renderFrontmatter(w io.Writer, d frontmatterData) error {
	if r.FrontMatter == nil {
		return nil
	}

	var buff bytes.Buffer
	if err := r.FrontMatter.Execute(&buff, d); err != nil {
		return errtrace.Wrap(err)
	}

	bs := bytes.TrimSpace(buff.Bytes())
	if len(bs) == 0 {
		return nil
	}
	bs = append(bs, '\n', '\n')

	_, err := w.Write(bs)
	return errtrace.Wrap(err)
}

// Breadcrumb holds information about parents of a page
// so that we can leave a trail up for navigation.
type Breadcrumb struct {
	// Text for the crumb.
	Text string

	// Path to the crumb from the root of the output.
	Path string
}

// PageInfo specifies the page that should be rendered.
type PageInfo struct {
	// Assembled page content.
	*tour.Page

	NumChildren int
	Subpages    []Subpage
	Breadcrumbs []Breadcrumb
}

// Basename is the last component of this page's path.
func (b *PageInfo) Basename() string {
	return path.Base(b.Path)
}

// RenderPage renders a single tutorial page.
// It does not include subpage information.
func (r *Renderer) RenderPage(w io.Writer, info *PageInfo) error {
	err := r.renderFrontmatter(w, frontmatterData{
		Path:        info.Path,
		Basename:    info.Basename(),
		NumChildren: info.NumChildren,
		Page: frontmatterPageData{
			Title:    info.Title,
			Synopsis: info.Synopsis,
		},
	})
	if err != nil {
		return errtrace.Wrap(err)
	}
	render := render{
		Home:                  r.Home,
		Path:                  info.Path,
		Highlighter:           r.highlighter(),
		Prose:                 r.prose(),
		NormalizeRelativePath: r.NormalizeRelativePath,
	}
	tmpl, err := _pageTmpl.Clone()
	must.NotErrorf(err, "clone page template")
	return errtrace.Wrap(tmpl.
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, r.templateName(), info))
}

// TourIndex holds information about a directory listing of pages.
type TourIndex struct {
	// Path to this listing.
	Path string

	NumChildren int
	Subpages    []Subpage
	Breadcrumbs []Breadcrumb
}

// Basename is the last component of this directory's path,
// or if it's the top level directory, an empty string.
func (idx *TourIndex) Basename() string {
	if len(idx.Path) == 0 {
		return ""
	}
	return path.Base(idx.Path)
}

// Subpage is a descendant of a tutorial page or directory.
//
// This is typically a direct descendant,
// but it may be a couple levels deeper
// if there are no intermediate pages.
type Subpage struct {
	// RelativePath is the path to the subpage
	// relative to the page it's a subpage of.
	RelativePath string

	// Title of the subpage for display.
	Title string

	// Synopsis is a short, one-sentence summary
	// extracted from the subpage's prose.
	Synopsis string
}

// RenderTourIndex renders the list of descendants for a directory
// as HTML.
func (r *Renderer) RenderTourIndex(w io.Writer, idx *TourIndex) error {
	fmdata := frontmatterData{
		Path:        idx.Path,
		Basename:    idx.Basename(),
		NumChildren: idx.NumChildren,
	}
	if err := r.renderFrontmatter(w, fmdata); err != nil {
		return errtrace.Wrap(err)
	}
	render := render{
		Home:                  r.Home,
		Path:                  idx.Path,
		Highlighter:           r.highlighter(),
		Prose:                 r.prose(),
		NormalizeRelativePath: r.NormalizeRelativePath,
	}
	tmpl, err := _tourIndexTmpl.Clone()
	must.NotErrorf(err, "clone directory template")
	return errtrace.Wrap(tmpl.
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, r.templateName(), idx))
}

type render struct {
	Home string
	Path string

	Highlighter           Highlighter
	Prose                 Prose
	NormalizeRelativePath func(string) string
}

func (r *render) FuncMap() template.FuncMap {
	return template.FuncMap{
		"prose":        r.prose,
		"snippet":      r.snippet,
		"static":       r.static,
		"relativePath": r.relativePath,
		"normalizeRelativePath": func(p string) string {
			if f := r.NormalizeRelativePath; f != nil {
				return f(p)
			}
			return p
		},
	}
}

func (r *render) relativePath(p string) string {
	p = relative.Path(r.Path, p)
	if r.NormalizeRelativePath != nil {
		p = r.NormalizeRelativePath(p)
	}
	return p
}

func (r *render) static(p string) string {
	return r.relativePath(path.Join(r.Home, _staticDir, p))
}

func (r *render) snippet(body string) template.HTML {
	return template.HTML(r.Highlighter.Snippet([]byte(body)))
}

func (r *render) prose(body string) (template.HTML, error) {
	return errtrace.Wrap2(r.Prose.Render([]byte(body)))
}
