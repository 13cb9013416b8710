// Package lint checks assembled tutorial pages for authoring mistakes.
//
// The checks are content-integrity checks only:
// pages are static artifacts, so anything a check reports
// is a mistake made at authoring time.
package lint

import (
	"fmt"

	"go.anag.dev/play2html/internal/tour"
)

// Finding is a single problem found on a page.
type Finding struct {
	// Path of the page the finding is about.
	Path string

	// Order of the offending block,
	// or -1 for page-level findings.
	Order int

	Msg string
}

// String renders the finding in "page: block N: message" form.
func (f Finding) String() string {
	if f.Order < 0 {
		return fmt.Sprintf("%v: %v", f.Path, f.Msg)
	}
	return fmt.Sprintf("%v: block %d: %v", f.Path, f.Order, f.Msg)
}

// Checker validates the content integrity of assembled pages.
//
// The zero value of this is ready to use.
type Checker struct{}

// CheckPage runs all content checks against the page
// and returns its findings, if any.
func (c *Checker) CheckPage(page *tour.Page) []Finding {
	var findings []Finding
	report := func(order int, format string, args ...any) {
		findings = append(findings, Finding{
			Path:  page.Path,
			Order: order,
			Msg:   fmt.Sprintf(format, args...),
		})
	}

	var prose, snippets int
	for i, b := range page.Blocks {
		if b.Order != i {
			report(i, "order %d out of sequence, want %d", b.Order, i)
		}

		switch b.Kind {
		case tour.Prose:
			prose++
		case tour.EditableSnippet:
			snippets++
			if err := ScanSnippet(b.Body); err != nil {
				report(i, "snippet is not well formed: %v", err)
			}
		case tour.IllustrativeSnippet:
			// Illustrative snippets often show code that must not
			// compile, so they're exempt from the snippet scan.
			snippets++
		default:
			report(i, "unknown block kind %v", b.Kind)
		}
	}

	if prose == 0 {
		report(-1, "page has no prose blocks")
	}
	if snippets == 0 {
		report(-1, "page has no code blocks")
	}

	return findings
}
