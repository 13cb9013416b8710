package flagvalue

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	t.Parallel()

	var items []stringValue
	fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	lv := ListOf(&items)
	fset.Var(lv, "item", "")

	require.NoError(t, fset.Parse([]string{
		"-item", "foo",
		"-item=bar",
	}))

	assert.Equal(t, []stringValue{"foo", "bar"}, items)
	assert.Equal(t, []stringValue{"foo", "bar"}, lv.Get())
	assert.Equal(t, "foo; bar", lv.String())
}

func TestList_setError(t *testing.T) {
	t.Parallel()

	var items []failValue
	err := ListOf(&items).Set("anything")
	assert.ErrorContains(t, err, "great sadness")
	assert.Empty(t, items)
}

func TestFileSwitch(t *testing.T) {
	t.Parallel()

	t.Run("unset", func(t *testing.T) {
		t.Parallel()

		var fs FileSwitch
		assert.False(t, fs.Bool())

		w, closef, err := fs.Create(io.Discard)
		require.NoError(t, err)
		defer closef()

		assert.Equal(t, io.Discard, w)
	})

	t.Run("no value", func(t *testing.T) {
		t.Parallel()

		var fs FileSwitch
		require.NoError(t, fs.Set("true"))
		assert.True(t, fs.Bool())
		assert.Equal(t, "-", fs.String())

		fallback := new(testWriter)
		w, closef, err := fs.Create(fallback)
		require.NoError(t, err)
		defer closef()

		assert.Equal(t, io.Writer(fallback), w)
	})

	t.Run("file path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "log.txt")

		fs := FileSwitch(path)
		assert.True(t, fs.Bool())

		w, closef, err := fs.Create(io.Discard)
		require.NoError(t, err)

		_, err = io.WriteString(w, "hello")
		require.NoError(t, err)
		require.NoError(t, closef())

		bs, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(bs))
	})
}

// stringValue is a minimal flag.Getter over a string.
type stringValue string

func (v *stringValue) Get() any       { return string(*v) }
func (v *stringValue) String() string { return string(*v) }
func (v *stringValue) Set(s string) error {
	*v = stringValue(s)
	return nil
}

// failValue always fails to parse.
type failValue struct{}

func (failValue) Get() any       { return nil }
func (failValue) String() string { return "" }
func (failValue) Set(string) error {
	return errors.New("great sadness")
}

type testWriter struct{}

func (*testWriter) Write(b []byte) (int, error) { return len(b), nil }
