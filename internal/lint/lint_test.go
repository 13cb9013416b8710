package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.anag.dev/play2html/internal/tour"
)

func TestChecker_CheckPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc   string
		blocks []tour.ContentBlock
		want   []string // rendered findings
	}{
		{
			desc: "well-formed page",
			blocks: []tour.ContentBlock{
				{Kind: tour.Prose, Body: "Some prose.", Order: 0},
				{Kind: tour.EditableSnippet, Body: "var x = 1", Order: 1},
			},
		},
		{
			desc: "order out of sequence",
			blocks: []tour.ContentBlock{
				{Kind: tour.Prose, Body: "prose", Order: 0},
				{Kind: tour.EditableSnippet, Body: "var x = 1", Order: 2},
			},
			want: []string{
				"mutating: block 1: order 2 out of sequence, want 1",
			},
		},
		{
			desc: "malformed editable snippet",
			blocks: []tour.ContentBlock{
				{Kind: tour.Prose, Body: "prose", Order: 0},
				{Kind: tour.EditableSnippet, Body: "struct Point {", Order: 1},
			},
			want: []string{
				`mutating: block 1: snippet is not well formed: line 1: unclosed "{"`,
			},
		},
		{
			desc: "illustrative snippets are exempt from the scan",
			blocks: []tour.ContentBlock{
				{Kind: tour.Prose, Body: "This must not compile:", Order: 0},
				{Kind: tour.IllustrativeSnippet, Body: "double(&21", Order: 1},
			},
		},
		{
			desc: "prose only",
			blocks: []tour.ContentBlock{
				{Kind: tour.Prose, Body: "prose", Order: 0},
			},
			want: []string{
				"mutating: page has no code blocks",
			},
		},
		{
			desc: "code only",
			blocks: []tour.ContentBlock{
				{Kind: tour.EditableSnippet, Body: "var x = 1", Order: 0},
			},
			want: []string{
				"mutating: page has no prose blocks",
			},
		},
		{
			desc: "empty page",
			want: []string{
				"mutating: page has no prose blocks",
				"mutating: page has no code blocks",
			},
		},
		{
			desc: "unknown kind",
			blocks: []tour.ContentBlock{
				{Kind: tour.Prose, Body: "prose", Order: 0},
				{Kind: tour.BlockKind(42), Body: "?", Order: 1},
			},
			want: []string{
				"mutating: block 1: unknown block kind BlockKind(42)",
				"mutating: page has no code blocks",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			findings := new(Checker).CheckPage(&tour.Page{
				Path:   "mutating",
				Blocks: tt.blocks,
			})

			var got []string
			for _, f := range findings {
				got = append(got, f.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFinding_String_pageLevel(t *testing.T) {
	t.Parallel()

	f := Finding{Path: "tour/mutating", Order: -1, Msg: "page has no prose blocks"}
	require.Equal(t, "tour/mutating: page has no prose blocks", f.String())
}
