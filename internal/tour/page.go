// Package tour provides the means of converting parsed playground sources
// into the renderable form of a tutorial page:
// an ordered sequence of content blocks.
package tour

import "fmt"

// BlockKind classifies a content block.
type BlockKind int

const (
	// Prose is formatted explanatory text, written in Markdown.
	Prose BlockKind = iota

	// EditableSnippet is example code a reader may edit and run.
	EditableSnippet

	// IllustrativeSnippet is display-only example code,
	// typically demonstrating something that must not compile.
	// A viewer must never attempt to run it.
	IllustrativeSnippet
)

// String returns a human-readable name for the block kind.
func (k BlockKind) String() string {
	switch k {
	case Prose:
		return "prose"
	case EditableSnippet:
		return "snippet-editable"
	case IllustrativeSnippet:
		return "snippet-illustrative"
	default:
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
}

// IsSnippet reports whether the kind is one of the snippet kinds.
func (k BlockKind) IsSnippet() bool {
	return k == EditableSnippet || k == IllustrativeSnippet
}

// IsEditable reports whether a viewer may edit and run
// blocks of this kind.
func (k BlockKind) IsEditable() bool {
	return k == EditableSnippet
}

// ContentBlock is a single block of page content.
// Blocks are immutable once assembled.
type ContentBlock struct {
	Kind BlockKind

	// Body is the block content:
	// Markdown for Prose, source code for snippets.
	Body string

	// Order is the position of the block on its page.
	// Orders on a page start at zero and are contiguous.
	Order int
}

// Page is a tutorial page: an ordered sequence of content blocks.
type Page struct {
	// Title of the page for display.
	Title string

	// Path is the logical /-separated path of the page
	// in the generated output.
	Path string

	// Synopsis is a short, one-sentence summary
	// extracted from the page's first prose block.
	Synopsis string

	Blocks []ContentBlock
}
