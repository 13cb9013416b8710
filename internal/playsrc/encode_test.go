package playsrc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []Segment
		want string
	}{
		{
			desc: "empty page",
		},
		{
			desc: "line markup",
			give: []Segment{
				{Kind: MarkupSegment, Text: "First.\n\nSecond."},
			},
			want: "//: First.\n//:\n//: Second.\n",
		},
		{
			desc: "block markup",
			give: []Segment{
				{Kind: MarkupSegment, Text: "# Title\n\nProse.", Block: true},
			},
			want: "/*:\n # Title\n\n Prose.\n*/\n",
		},
		{
			desc: "code",
			give: []Segment{
				{Kind: CodeSegment, Text: "var x = 1\nx += 1"},
			},
			want: "var x = 1\nx += 1\n",
		},
		{
			desc: "segments separated by a blank line",
			give: []Segment{
				{Kind: MarkupSegment, Text: "prose"},
				{Kind: CodeSegment, Text: "var x = 1"},
			},
			want: "//: prose\n\nvar x = 1\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			var sb strings.Builder
			require.NoError(t, Encode(&sb, &Page{Segments: tt.give}))
			assert.Equal(t, tt.want, sb.String())
		})
	}
}

// Parsing encoded output must yield the same segment sequence,
// prose byte-for-byte and code token-for-token.
func TestEncode_roundTrip(t *testing.T) {
	t.Parallel()

	sources := map[string]string{
		"line markup and code": strings.Join([]string{
			"//: Swift passes arguments *by value*.",
			"",
			"func double(_ n: inout Int) {",
			"    n *= 2",
			"}",
			"",
			"//: The copy is written back on return.",
			"",
		}, "\n"),
		"block markup with fence": strings.Join([]string{
			"/*:",
			" # Mutating Parameters",
			"",
			" Only an lvalue may be passed:",
			"",
			" ```swift",
			" double(&21) // error",
			" ```",
			"*/",
			"var score = 21",
			"double(&score)",
			"",
		}, "\n"),
	}

	for desc, src := range sources {
		src := src
		t.Run(desc, func(t *testing.T) {
			t.Parallel()

			parser := new(Parser)

			first, err := parser.Parse([]byte(src))
			require.NoError(t, err)

			var sb strings.Builder
			require.NoError(t, Encode(&sb, first))

			second, err := parser.Parse([]byte(sb.String()))
			require.NoError(t, err)

			require.Len(t, second.Segments, len(first.Segments))
			for i, want := range first.Segments {
				got := second.Segments[i]
				assert.Equal(t, want.Kind, got.Kind, "segment %d kind", i)
				assert.Equal(t, want.Block, got.Block, "segment %d form", i)
				assert.Equal(t, want.Text, got.Text, "segment %d text", i)
			}
		})
	}
}
