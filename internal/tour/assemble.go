package tour

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"
	"go.anag.dev/play2html/internal/playsrc"
)

// Assembler assembles a [Page] from a parsed playground source.
type Assembler struct{}

// Assemble converts raw source segments into an ordered block sequence.
//
// Top-level code becomes editable snippets.
// Markup becomes prose, except for fenced code regions inside it,
// which become illustrative snippets of their own.
func (a *Assembler) Assemble(src *playsrc.Page) (*Page, error) {
	page := Page{}
	if ref := src.Ref; ref != nil {
		page.Title = ref.Title
		page.Path = ref.Path
	}

	push := func(kind BlockKind, body string) {
		page.Blocks = append(page.Blocks, ContentBlock{
			Kind:  kind,
			Body:  body,
			Order: len(page.Blocks),
		})
	}

	for _, seg := range src.Segments {
		switch seg.Kind {
		case playsrc.CodeSegment:
			if len(seg.Text) > 0 {
				push(EditableSnippet, seg.Text)
			}

		case playsrc.MarkupSegment:
			parts, err := splitFenced(seg.Text)
			if err != nil {
				return nil, errtrace.Wrap(fmt.Errorf("line %d: %w", seg.Line, err))
			}
			for _, part := range parts {
				if part.code {
					push(IllustrativeSnippet, part.text)
				} else if len(strings.TrimSpace(part.text)) > 0 {
					push(Prose, part.text)
				}
			}

		default:
			return nil, errtrace.Wrap(fmt.Errorf("line %d: unknown segment kind %v", seg.Line, seg.Kind))
		}
	}

	var heading string
	page.Blocks, heading = takeLeadingHeading(page.Blocks)
	if page.Title == "" {
		page.Title = heading
	}
	page.Synopsis = synopsis(page.Blocks)

	return &page, nil
}

type markupPart struct {
	text string
	code bool
}

// splitFenced splits Markdown text on ``` fences,
// alternating prose parts and code parts.
func splitFenced(text string) ([]markupPart, error) {
	var (
		parts   []markupPart
		current []string
		inFence bool
		opened  int // line the open fence was on, 1-based
	)

	flush := func(code bool) {
		parts = append(parts, markupPart{
			text: strings.Join(current, "\n"),
			code: code,
		})
		current = nil
	}

	for i, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inFence {
				flush(true)
			} else {
				flush(false)
				opened = i + 1
			}
			inFence = !inFence
			continue
		}
		current = append(current, line)
	}

	if inFence {
		return nil, errtrace.Wrap(fmt.Errorf("markup line %d: unterminated code fence", opened))
	}
	if len(current) > 0 {
		flush(false)
	}
	return parts, nil
}

// takeLeadingHeading removes a level-one heading
// from the top of the page's first prose block and returns its text.
// The page layout renders the title itself,
// so a heading left in the prose would show up twice.
func takeLeadingHeading(blocks []ContentBlock) ([]ContentBlock, string) {
	for i, b := range blocks {
		if b.Kind != Prose {
			continue
		}
		first, rest, _ := strings.Cut(strings.TrimLeft(b.Body, "\n"), "\n")
		heading, ok := strings.CutPrefix(strings.TrimSpace(first), "#")
		if !ok || strings.HasPrefix(heading, "#") {
			return blocks, ""
		}
		if rest = strings.TrimLeft(rest, "\n"); len(strings.TrimSpace(rest)) > 0 {
			blocks[i].Body = rest
		} else {
			blocks = append(blocks[:i], blocks[i+1:]...)
			for j := range blocks {
				blocks[j].Order = j
			}
		}
		return blocks, strings.TrimSpace(heading)
	}
	return blocks, ""
}

// synopsis extracts a one-sentence summary
// from the page's first prose block.
// Headings are skipped, and inline Markdown markers are dropped.
func synopsis(blocks []ContentBlock) string {
	for _, b := range blocks {
		if b.Kind != Prose {
			continue
		}

		var text string
		for _, line := range strings.Split(b.Body, "\n") {
			line = strings.TrimSpace(line)
			if len(line) == 0 || strings.HasPrefix(line, "#") {
				if len(text) > 0 {
					break
				}
				continue
			}
			if len(text) > 0 {
				text += " "
			}
			text += line
		}

		text = strings.NewReplacer("*", "", "_", "", "`", "").Replace(text)
		return firstSentence(text)
	}
	return ""
}

func firstSentence(text string) string {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if i+1 == len(text) || text[i+1] == ' ' {
				return text[:i+1]
			}
		}
	}
	return text
}
