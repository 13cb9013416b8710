package playsrc

import (
	"fmt"
	"os"
	"strings"

	"braces.dev/errtrace"
)

// SegmentKind classifies a raw segment of a page source.
type SegmentKind int

const (
	// MarkupSegment is prose markup: Markdown text
	// carried in '//:' lines or a '/*: ... */' range.
	MarkupSegment SegmentKind = iota

	// CodeSegment is a run of top-level example code.
	CodeSegment
)

// String returns a human-readable name for the segment kind.
func (k SegmentKind) String() string {
	switch k {
	case MarkupSegment:
		return "markup"
	case CodeSegment:
		return "code"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// Segment is a contiguous region of a page source.
type Segment struct {
	Kind SegmentKind

	// Text is the segment body with markup delimiters stripped:
	// Markdown for markup segments, source code for code segments.
	Text string

	// Line is the 1-based source line the segment starts on.
	Line int

	// Block reports whether a markup segment used the '/*: ... */' form
	// rather than a run of '//:' lines.
	Block bool
}

// Page is a parsed page source: an ordered list of raw segments.
type Page struct {
	// Ref is the page this was parsed from, if known.
	Ref *PageRef

	Segments []Segment
}

// Parser loads the contents of a page by parsing its source.
type Parser struct{}

// ParsePage reads and parses the source of the referenced page.
func (p *Parser) ParsePage(ref *PageRef) (*Page, error) {
	src, err := os.ReadFile(ref.File)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	page, err := p.Parse(src)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%s: %w", ref.File, err))
	}
	page.Ref = ref
	return page, nil
}

// Parse splits page source into markup and code segments.
//
// It fails if the source contains an unterminated '/*:' markup range.
func (*Parser) Parse(src []byte) (*Page, error) {
	lines := strings.Split(string(src), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		// Split leaves an empty tail after a trailing newline.
		lines = lines[:n-1]
	}

	var segs []Segment
	for i := 0; i < len(lines); {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case trimmed == "":
			// Blank lines between segments are separators.
			i++

		case strings.HasPrefix(trimmed, "/*:"):
			text, next, err := parseMarkupRange(lines, i)
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			segs = append(segs, Segment{
				Kind:  MarkupSegment,
				Text:  text,
				Line:  i + 1,
				Block: true,
			})
			i = next

		case strings.HasPrefix(trimmed, "//:"):
			start := i
			var body []string
			for i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "//:") {
				body = append(body, markupLineText(lines[i]))
				i++
			}
			segs = append(segs, Segment{
				Kind: MarkupSegment,
				Text: strings.Join(body, "\n"),
				Line: start + 1,
			})

		default:
			start := i
			var body []string
			for i < len(lines) {
				t := strings.TrimSpace(lines[i])
				if strings.HasPrefix(t, "//:") || strings.HasPrefix(t, "/*:") {
					break
				}
				body = append(body, lines[i])
				i++
			}
			// Blank lines before the next markup belong to neither segment.
			for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
				body = body[:len(body)-1]
			}
			segs = append(segs, Segment{
				Kind: CodeSegment,
				Text: strings.Join(body, "\n"),
				Line: start + 1,
			})
		}
	}

	return &Page{Segments: segs}, nil
}

// parseMarkupRange consumes a '/*: ... */' range starting at lines[i],
// returning its text and the index of the line after the range.
func parseMarkupRange(lines []string, i int) (text string, next int, err error) {
	rem := lines[i][strings.Index(lines[i], "/*:")+len("/*:"):]

	// The whole range may sit on one line.
	if idx := strings.Index(rem, "*/"); idx >= 0 {
		return strings.TrimSpace(rem[:idx]), i + 1, nil
	}

	var body []string
	if t := strings.TrimSpace(rem); len(t) > 0 {
		body = append(body, t)
	}

	for j := i + 1; j < len(lines); j++ {
		line := lines[j]
		if idx := strings.Index(line, "*/"); idx >= 0 {
			if pre := strings.TrimSpace(line[:idx]); len(pre) > 0 {
				body = append(body, markupGutterText(line[:idx]))
			}
			// Blank lines hugging the delimiters are not content.
			for len(body) > 0 && body[0] == "" {
				body = body[1:]
			}
			for len(body) > 0 && body[len(body)-1] == "" {
				body = body[:len(body)-1]
			}
			return strings.Join(body, "\n"), j + 1, nil
		}
		body = append(body, markupGutterText(line))
	}

	return "", 0, fmt.Errorf("line %d: unterminated '/*:' markup", i+1)
}

// markupLineText strips the '//:' marker and its gutter space from a line.
func markupLineText(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "//:")
	return strings.TrimPrefix(line, " ")
}

// markupGutterText strips the conventional single-space gutter
// from a line inside a markup range, keeping deeper indentation
// so that Markdown constructs like nested lists survive.
func markupGutterText(line string) string {
	line = strings.TrimRight(line, " \t")
	return strings.TrimPrefix(line, " ")
}
