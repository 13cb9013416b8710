package playsrc

import (
	"io"
	"strings"

	"braces.dev/errtrace"
)

// Encode writes the page back out as playground page source.
//
// The output is canonical rather than byte-identical to the input:
// markup ranges are written with a one-space gutter
// and segments are separated by a single blank line.
// Re-parsing the output yields the same segment sequence,
// prose byte-for-byte and code token-for-token.
func Encode(w io.Writer, page *Page) error {
	var sb strings.Builder
	for i, seg := range page.Segments {
		if i > 0 {
			sb.WriteByte('\n')
		}

		switch {
		case seg.Kind == CodeSegment:
			sb.WriteString(seg.Text)
			sb.WriteByte('\n')

		case seg.Block:
			sb.WriteString("/*:\n")
			for _, line := range strings.Split(seg.Text, "\n") {
				if len(line) > 0 {
					sb.WriteByte(' ')
					sb.WriteString(line)
				}
				sb.WriteByte('\n')
			}
			sb.WriteString("*/\n")

		default:
			for _, line := range strings.Split(seg.Text, "\n") {
				sb.WriteString("//:")
				if len(line) > 0 {
					sb.WriteByte(' ')
					sb.WriteString(line)
				}
				sb.WriteByte('\n')
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return errtrace.Wrap(err)
}
