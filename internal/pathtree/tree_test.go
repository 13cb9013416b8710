package pathtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoot_Snapshot(t *testing.T) {
	t.Parallel()

	var root Root[int]
	root.Set("tour/optionals", 2)
	root.Set("tour/basics", 1)
	root.Set("tour/basics/mutating", 3)

	snap := root.Snapshot()
	if assert.Len(t, snap, 1) {
		tour := snap[0]
		assert.Equal(t, "tour", tour.Path)
		assert.Nil(t, tour.Value)

		// Children come out sorted by name.
		if assert.Len(t, tour.Children, 2) {
			basics, optionals := tour.Children[0], tour.Children[1]

			assert.Equal(t, "tour/basics", basics.Path)
			if assert.NotNil(t, basics.Value) {
				assert.Equal(t, 1, *basics.Value)
			}
			if assert.Len(t, basics.Children, 1) {
				mutating := basics.Children[0]
				assert.Equal(t, "tour/basics/mutating", mutating.Path)
				if assert.NotNil(t, mutating.Value) {
					assert.Equal(t, 3, *mutating.Value)
				}
			}

			assert.Equal(t, "tour/optionals", optionals.Path)
			if assert.NotNil(t, optionals.Value) {
				assert.Equal(t, 2, *optionals.Value)
			}
		}
	}
}

func TestRoot_Set_overwrite(t *testing.T) {
	t.Parallel()

	var root Root[string]
	root.Set("foo", "old")
	root.Set("foo", "new")

	snap := root.Snapshot()
	if assert.Len(t, snap, 1) && assert.NotNil(t, snap[0].Value) {
		assert.Equal(t, "new", *snap[0].Value)
	}
}

func TestRoot_Set_extraSlashes(t *testing.T) {
	t.Parallel()

	var root Root[int]
	root.Set("foo//bar", 42)

	snap := root.Snapshot()
	if assert.Len(t, snap, 1) && assert.Len(t, snap[0].Children, 1) {
		bar := snap[0].Children[0]
		assert.Equal(t, "foo/bar", bar.Path)
		if assert.NotNil(t, bar.Value) {
			assert.Equal(t, 42, *bar.Value)
		}
	}
}

func TestRoot_Snapshot_empty(t *testing.T) {
	t.Parallel()

	var root Root[int]
	assert.Empty(t, root.Snapshot())
}
