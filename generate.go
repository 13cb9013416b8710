package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"braces.dev/errtrace"
	"go.anag.dev/play2html/internal/errdefer"
	"go.anag.dev/play2html/internal/html"
	"go.anag.dev/play2html/internal/lint"
	"go.anag.dev/play2html/internal/pathtree"
	"go.anag.dev/play2html/internal/playsrc"
	"go.anag.dev/play2html/internal/relative"
	"go.anag.dev/play2html/internal/tour"
)

// Parser loads a page reference from disk
// and parses its markup into raw segments.
type Parser interface {
	ParsePage(*playsrc.PageRef) (*playsrc.Page, error)
}

var _ Parser = (*playsrc.Parser)(nil)

// Assembler consumes a parsed page
// and builds the renderable block sequence for it.
type Assembler interface {
	Assemble(*playsrc.Page) (*tour.Page, error)
}

var _ Assembler = (*tour.Assembler)(nil)

// Linter checks assembled pages for authoring mistakes.
type Linter interface {
	CheckPage(*tour.Page) []lint.Finding
}

var _ Linter = (*lint.Checker)(nil)

// Renderer renders tutorial pages to HTML.
type Renderer interface {
	WriteStatic(string) error
	RenderPage(io.Writer, *html.PageInfo) error
	RenderTourIndex(io.Writer, *html.TourIndex) error
}

var _ Renderer = (*html.Renderer)(nil)

// Generator generates the tutorial site for user-specified pages.
//
// In terms of code organization,
// Generator's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Generator struct {
	Log       *log.Logger
	DebugLog  *log.Logger
	Parser    Parser
	Assembler Assembler
	Renderer  Renderer

	// Linter checks every assembled page.
	// Use nil to skip content checks.
	Linter Linter

	OutDir   string
	Basename string
}

// Generate runs the generator over the provided page references.
//
// If a linter is set and reports findings on any page,
// Generate still renders the whole site,
// but logs the findings and fails afterwards.
func (g *Generator) Generate(refs []*playsrc.PageRef) error {
	if err := g.Renderer.WriteStatic(g.OutDir); err != nil {
		return errtrace.Wrap(err)
	}

	var findings []lint.Finding
	trees := buildTrees(refs)
	rpages, err := g.renderTrees(&findings, nil, trees)
	if err != nil {
		return err
	}

	// A listing at the site root ties the tours together.
	idx := html.TourIndex{
		NumChildren: len(trees),
		Subpages:    g.subpages("", rpages),
	}
	if err := g.renderIndexFile(&idx); err != nil {
		return err
	}

	for _, f := range findings {
		g.Log.Printf("%v", f)
	}
	if n := len(findings); n > 0 {
		return errtrace.Wrap(fmt.Errorf("found %d content problems", n))
	}
	return nil
}

func (g *Generator) renderTrees(findings *[]lint.Finding, crumbs []html.Breadcrumb, trees []pageTree) ([]*renderedPage, error) {
	var pages []*renderedPage
	for _, t := range trees {
		rpages, err := g.renderTree(findings, crumbs, t)
		if err != nil {
			return nil, err
		}
		pages = append(pages, rpages...)
	}
	return pages, nil
}

func (g *Generator) renderTree(findings *[]lint.Finding, crumbs []html.Breadcrumb, t pageTree) ([]*renderedPage, error) {
	var crumbText string
	if n := len(crumbs); n > 0 {
		crumbText = relative.Path(crumbs[n-1].Path, t.Path)
	} else {
		crumbText = t.Path
	}
	crumbs = append(crumbs, html.Breadcrumb{Text: crumbText, Path: t.Path})

	if t.Value == nil {
		return g.renderTourIndex(findings, crumbs, t)
	}
	rpage, err := g.renderPage(findings, crumbs, t)
	if err != nil {
		return nil, err
	}
	return []*renderedPage{rpage}, nil
}

func (g *Generator) renderTourIndex(findings *[]lint.Finding, crumbs []html.Breadcrumb, t pageTree) ([]*renderedPage, error) {
	subpages, err := g.renderTrees(findings, crumbs, t.Children)
	if err != nil {
		return nil, err
	}

	g.debugf("Rendering index %v", t.Path)

	idx := html.TourIndex{
		Path:        t.Path,
		NumChildren: len(t.Children),
		Subpages:    g.subpages(t.Path, subpages),
		Breadcrumbs: crumbs,
	}
	if err := g.renderIndexFile(&idx); err != nil {
		return nil, err
	}

	return subpages, nil
}

func (g *Generator) renderIndexFile(idx *html.TourIndex) (err error) {
	dir := filepath.Join(g.OutDir, filepath.FromSlash(idx.Path))
	if err := os.MkdirAll(dir, 0o1755); err != nil {
		return errtrace.Wrap(err)
	}

	f, err := os.Create(filepath.Join(dir, g.basename()))
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	return errtrace.Wrap(g.Renderer.RenderTourIndex(f, idx))
}

type renderedPage struct {
	Path     string
	Title    string
	Synopsis string
}

func (g *Generator) renderPage(findings *[]lint.Finding, crumbs []html.Breadcrumb, t pageTree) (_ *renderedPage, err error) {
	subpages, err := g.renderTrees(findings, crumbs, t.Children)
	if err != nil {
		return nil, err
	}

	ref := *t.Value
	g.debugf("Rendering page %v", t.Path)
	src, err := g.Parser.ParsePage(ref)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%v: parse: %w", t.Path, err))
	}

	page, err := g.Assembler.Assemble(src)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%v: assemble: %w", t.Path, err))
	}

	if g.Linter != nil {
		*findings = append(*findings, g.Linter.CheckPage(page)...)
	}

	dir := filepath.Join(g.OutDir, filepath.FromSlash(t.Path))
	if err := os.MkdirAll(dir, 0o1755); err != nil {
		return nil, errtrace.Wrap(err)
	}

	f, err := os.Create(filepath.Join(dir, g.basename()))
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	info := html.PageInfo{
		Page:        page,
		NumChildren: len(t.Children),
		Subpages:    g.subpages(t.Path, subpages),
		Breadcrumbs: crumbs,
	}
	if err := g.Renderer.RenderPage(f, &info); err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%v: render: %w", t.Path, err))
	}

	return &renderedPage{
		Path:     ref.Path,
		Title:    page.Title,
		Synopsis: page.Synopsis,
	}, nil
}

func (g *Generator) subpages(from string, rpages []*renderedPage) []html.Subpage {
	subpages := make([]html.Subpage, 0, len(rpages))
	for _, rp := range rpages {
		subpages = append(subpages, html.Subpage{
			RelativePath: relative.Path(from, rp.Path),
			Title:        rp.Title,
			Synopsis:     rp.Synopsis,
		})
	}
	return subpages
}

func (g *Generator) basename() string {
	if len(g.Basename) > 0 {
		return g.Basename
	}
	return "index.html"
}

func (g *Generator) debugf(format string, args ...any) {
	if g.DebugLog != nil {
		g.DebugLog.Printf(format, args...)
	}
}

type pageTree = pathtree.Snapshot[*playsrc.PageRef]

func buildTrees(refs []*playsrc.PageRef) []pageTree {
	var root pathtree.Root[*playsrc.PageRef]
	for _, ref := range refs {
		root.Set(ref.Path, ref)
	}
	return root.Snapshot()
}
