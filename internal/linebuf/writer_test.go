package linebuf

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc   string
		writes []string
		want   []string
	}{
		{
			desc:   "single line",
			writes: []string{"hello\n"},
			want:   []string{"hello\n"},
		},
		{
			desc:   "multiple lines in one write",
			writes: []string{"foo\nbar\n"},
			want:   []string{"foo\n", "bar\n"},
		},
		{
			desc:   "partial writes joined",
			writes: []string{"hel", "lo\nwor", "ld\n"},
			want:   []string{"hello\n", "world\n"},
		},
		{
			desc:   "trailing partial flushed",
			writes: []string{"no newline"},
			want:   []string{"no newline"},
		},
		{
			desc:   "empty write",
			writes: []string{""},
			want:   nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			var got []string
			w, done := Writer(func(line []byte) {
				got = append(got, string(line))
			})

			for _, s := range tt.writes {
				_, err := io.WriteString(w, s)
				assert.NoError(t, err)
			}
			done()

			assert.Equal(t, tt.want, got)
		})
	}
}
