package metadata_test

import (
	"testing"

	"fnum/core/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	t.Run("Layout", func(t *testing.T) {
		r := metadata.NewRecord()
		r.Rename("a.txt", "1.txt")
		r.SetMax(1)

		data, err := metadata.Marshal(r)
		require.NoError(t, err)
		assert.Equal(t, "max: 1\norder:\n  - 1.txt\noriginals:\n  a.txt: 1.txt\n", string(data))
	})

	t.Run("NullMaxAndEmptyCollections", func(t *testing.T) {
		data, err := metadata.Marshal(metadata.NewRecord())
		require.NoError(t, err)
		assert.Equal(t, "max: null\norder: []\noriginals: {}\n", string(data))
	})

	t.Run("UnicodeVerbatim", func(t *testing.T) {
		r := metadata.NewRecord()
		r.Rename("café.jpg", "1.jpg")

		data, err := metadata.Marshal(r)
		require.NoError(t, err)
		assert.Contains(t, string(data), "café.jpg: 1.jpg")
	})
}

func TestUnmarshal(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		r, err := metadata.Unmarshal(nil)
		require.NoError(t, err)
		assert.Empty(t, r.Order)
		assert.Empty(t, r.Originals)
		assert.Nil(t, r.Max)
	})

	t.Run("ExtraKeysSurvive", func(t *testing.T) {
		src := "max: 2\norder: [1.txt, 2.txt]\noriginals: {b.txt: 2.txt}\ntitle: Holiday\n"
		r, err := metadata.Unmarshal([]byte(src))
		require.NoError(t, err)
		assert.Equal(t, "Holiday", r.Extra["title"])
		assert.Equal(t, 2, *r.Max)

		data, err := metadata.Marshal(r)
		require.NoError(t, err)
		assert.Contains(t, string(data), "title: Holiday")

		back, err := metadata.Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, r.Order, back.Order)
		assert.Equal(t, r.Originals, back.Originals)
	})

	t.Run("DuplicateCurrentNames", func(t *testing.T) {
		r, err := metadata.Unmarshal([]byte("originals:\n  b.txt: 1.txt\n  a.txt: 1.txt\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"1.txt"}, r.Duplicates())

		orig, ok := r.OriginalOf("1.txt")
		assert.True(t, ok)
		assert.Equal(t, "a.txt", orig)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := metadata.Unmarshal([]byte("order: {broken"))
		assert.ErrorContains(t, err, "failed to decode record")
	})
}
