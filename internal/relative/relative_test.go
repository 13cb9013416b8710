package relative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc     string
		src, dst string
		want     string
	}{
		{
			desc: "sibling",
			src:  "foo/bar",
			dst:  "foo/baz",
			want: "../baz",
		},
		{
			desc: "child",
			src:  "foo",
			dst:  "foo/bar",
			want: "bar",
		},
		{
			desc: "parent",
			src:  "foo/bar",
			dst:  "foo",
			want: "..",
		},
		{
			desc: "same",
			src:  "foo/bar",
			dst:  "foo/bar",
			want: "",
		},
		{
			desc: "from root",
			src:  "",
			dst:  "foo/bar",
			want: "foo/bar",
		},
		{
			desc: "to root",
			src:  "foo/bar",
			dst:  "",
			want: "../..",
		},
		{
			desc: "divergent",
			src:  "a/b/c",
			dst:  "a/x/y",
			want: "../../x/y",
		},
		{
			desc: "trailing slash on src",
			src:  "foo/",
			dst:  "foo/bar",
			want: "bar",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Path(tt.src, tt.dst))
		})
	}
}

func TestPath_absoluteMismatch(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		Path("/foo", "bar")
	})
}
