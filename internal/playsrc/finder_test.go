package playsrc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.anag.dev/play2html/internal/iotest"
)

func TestFinder_FindPages_standaloneFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "mutating-methods.swift")
	require.NoError(t, os.WriteFile(file, []byte("//: prose\n"), 0o644))

	refs, err := (&Finder{Log: iotest.Logger(t)}).FindPages(file)
	require.NoError(t, err)

	require.Len(t, refs, 1)
	assert.Equal(t, "Mutating Methods", refs[0].Title)
	assert.Equal(t, "mutating-methods", refs[0].Path)
	assert.Equal(t, file, refs[0].File)
}

func TestFinder_FindPages_singlePageBundle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bundle := filepath.Join(dir, "mutating.playground")
	require.NoError(t, os.MkdirAll(bundle, 0o755))
	require.NoError(t,
		os.WriteFile(filepath.Join(bundle, "Contents.swift"), []byte("//: hi\n"), 0o644))

	refs, err := (&Finder{Log: iotest.Logger(t)}).FindPages(bundle)
	require.NoError(t, err)

	require.Len(t, refs, 1)
	assert.Equal(t, "Mutating", refs[0].Title)
	assert.Equal(t, "mutating", refs[0].Path)
}

func TestFinder_FindPages_bundleManifestTitle(t *testing.T) {
	t.Parallel()

	bundle := filepath.Join(t.TempDir(), "mutating.playground")
	require.NoError(t, os.MkdirAll(bundle, 0o755))
	require.NoError(t,
		os.WriteFile(filepath.Join(bundle, "Contents.swift"), []byte("//: hi\n"), 0o644))
	require.NoError(t,
		os.WriteFile(filepath.Join(bundle, "tour.toml"),
			[]byte(`title = "Mutating Parameters and Methods"`), 0o644))

	refs, err := (&Finder{Log: iotest.Logger(t)}).FindPages(bundle)
	require.NoError(t, err)

	require.Len(t, refs, 1)
	assert.Equal(t, "Mutating Parameters and Methods", refs[0].Title)
}

func TestFinder_FindPages_multiPageBundle(t *testing.T) {
	t.Parallel()

	bundle := filepath.Join(t.TempDir(), "tour.playground")
	for _, name := range []string{"optionals", "mutating", "basics"} {
		pageDir := filepath.Join(bundle, "Pages", name+".xcplaygroundpage")
		require.NoError(t, os.MkdirAll(pageDir, 0o755))
		require.NoError(t,
			os.WriteFile(filepath.Join(pageDir, "Contents.swift"), []byte("//: hi\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(bundle, "tour.toml"), []byte(`
[[pages]]
name = "basics"

[[pages]]
name = "mutating"
title = "Mutating Parameters"
`), 0o644))

	refs, err := (&Finder{Log: iotest.Logger(t)}).FindPages(bundle)
	require.NoError(t, err)

	// Manifest order first, unlisted pages after, lexically.
	require.Len(t, refs, 3)
	assert.Equal(t, "tour/basics", refs[0].Path)
	assert.Equal(t, "Basics", refs[0].Title)
	assert.Equal(t, "tour/mutating", refs[1].Path)
	assert.Equal(t, "Mutating Parameters", refs[1].Title)
	assert.Equal(t, "tour/optionals", refs[2].Path)
}

func TestFinder_FindPages_walkDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	bundle := filepath.Join(root, "a", "tour.playground")
	require.NoError(t, os.MkdirAll(bundle, 0o755))
	require.NoError(t,
		os.WriteFile(filepath.Join(bundle, "Contents.swift"), []byte("//: hi\n"), 0o644))

	loose := filepath.Join(root, "b", "loose.swift")
	require.NoError(t, os.MkdirAll(filepath.Dir(loose), 0o755))
	require.NoError(t, os.WriteFile(loose, []byte("//: hi\n"), 0o644))

	// Hidden directories are skipped.
	hidden := filepath.Join(root, ".cache", "ignored.swift")
	require.NoError(t, os.MkdirAll(filepath.Dir(hidden), 0o755))
	require.NoError(t, os.WriteFile(hidden, []byte("//: no\n"), 0o644))

	refs, err := (&Finder{Log: iotest.Logger(t)}).FindPages(root)
	require.NoError(t, err)

	var paths []string
	for _, ref := range refs {
		paths = append(paths, ref.Path)
	}
	assert.ElementsMatch(t, []string{"tour", "loose"}, paths)
}

func TestFinder_FindPages_exclude(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"keep.swift", "skip.draft.swift"} {
		require.NoError(t,
			os.WriteFile(filepath.Join(root, name), []byte("//: hi\n"), 0o644))
	}

	scratch := filepath.Join(root, "scratch", "wip.swift")
	require.NoError(t, os.MkdirAll(filepath.Dir(scratch), 0o755))
	require.NoError(t, os.WriteFile(scratch, []byte("//: hi\n"), 0o644))

	finder := Finder{
		Log:     iotest.Logger(t),
		Exclude: []string{"*.draft.swift", "scratch"},
	}
	refs, err := finder.FindPages(root)
	require.NoError(t, err)

	require.Len(t, refs, 1)
	assert.Equal(t, "keep", refs[0].Path)
}

func TestFinder_FindPages_deduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "page.swift")
	require.NoError(t, os.WriteFile(file, []byte("//: hi\n"), 0o644))

	refs, err := (&Finder{Log: iotest.Logger(t)}).FindPages(file, dir, file)
	require.NoError(t, err)
	assert.Len(t, refs, 1)
}

func TestFinder_FindPages_errors(t *testing.T) {
	t.Parallel()

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := (&Finder{Log: iotest.Logger(t)}).
			FindPages(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()

		_, err := (&Finder{Log: iotest.Logger(t)}).FindPages(t.TempDir())
		assert.ErrorContains(t, err, "no pages found")
	})

	t.Run("bad manifest", func(t *testing.T) {
		t.Parallel()

		bundle := filepath.Join(t.TempDir(), "tour.playground")
		require.NoError(t, os.MkdirAll(bundle, 0o755))
		require.NoError(t,
			os.WriteFile(filepath.Join(bundle, "Contents.swift"), []byte("//: hi\n"), 0o644))
		require.NoError(t,
			os.WriteFile(filepath.Join(bundle, "tour.toml"), []byte("title ="), 0o644))

		_, err := (&Finder{Log: iotest.Logger(t)}).FindPages(bundle)
		assert.ErrorContains(t, err, "tour.toml")
	})
}
