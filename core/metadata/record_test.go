package metadata_test

import (
	"testing"

	"fnum/core/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Rename(t *testing.T) {
	t.Run("NewFileBecomesItsOwnOriginal", func(t *testing.T) {
		r := metadata.NewRecord()
		r.Rename("a.txt", "1.txt")

		assert.Equal(t, []string{"1.txt"}, r.Order)
		assert.Equal(t, map[string]string{"a.txt": "1.txt"}, r.Originals)
		orig, ok := r.OriginalOf("1.txt")
		assert.True(t, ok)
		assert.Equal(t, "a.txt", orig)
	})

	t.Run("ChainedRenameKeepsOriginalKey", func(t *testing.T) {
		r := metadata.NewRecord()
		r.Rename("a.txt", "3.txt")
		r.Rename("3.txt", "1.txt")

		assert.Equal(t, []string{"1.txt"}, r.Order)
		assert.Equal(t, map[string]string{"a.txt": "1.txt"}, r.Originals)
		_, ok := r.OriginalOf("3.txt")
		assert.False(t, ok)
	})

	t.Run("ReplacesOrderEntryInPlace", func(t *testing.T) {
		r := metadata.NewRecord()
		r.Order = []string{"2.txt", "b.txt", "5.txt"}
		r.Rename("b.txt", "3.txt")

		assert.Equal(t, []string{"2.txt", "3.txt", "5.txt"}, r.Order)
	})

	t.Run("DropsStaleOriginalPointingAtDestination", func(t *testing.T) {
		r, err := metadata.Unmarshal([]byte("originals:\n  gone.txt: 9.txt\n"))
		require.NoError(t, err)

		r.Rename("new.txt", "9.txt")
		assert.Equal(t, map[string]string{"new.txt": "9.txt"}, r.Originals)
	})
}

func TestRecord_Track(t *testing.T) {
	r := metadata.NewRecord()
	r.Track("1.txt")
	r.Track("1.txt")

	assert.Equal(t, []string{"1.txt"}, r.Order)
	assert.Equal(t, map[string]string{"1.txt": "1.txt"}, r.Originals)

	r.Rename("x.txt", "2.txt")
	r.Track("2.txt")
	assert.Equal(t, "2.txt", r.Originals["x.txt"])
	assert.NotContains(t, r.Originals, "2.txt")
}

func TestRecord_Remove(t *testing.T) {
	r := metadata.NewRecord()
	r.Rename("a.txt", "1.txt")
	r.Rename("b.txt", "2.txt")

	r.Remove("1.txt")
	assert.Equal(t, []string{"2.txt"}, r.Order)
	assert.Equal(t, map[string]string{"b.txt": "2.txt"}, r.Originals)
	assert.False(t, r.Contains("1.txt"))
	assert.False(t, r.Contains("a.txt"))

	r.Remove("missing.txt")
	assert.Equal(t, []string{"2.txt"}, r.Order)
}

func TestRecord_Contains(t *testing.T) {
	r := metadata.NewRecord()
	r.Order = []string{"cover.txt"}
	r.Rename("a.txt", "1.txt")

	tests := []struct {
		name string
		want bool
	}{
		{"cover.txt", true},
		{"a.txt", true},
		{"1.txt", true},
		{"2.txt", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.name))
		})
	}
}

func TestRecord_MaxAndClone(t *testing.T) {
	r := metadata.NewRecord()
	assert.Nil(t, r.Max)
	assert.Equal(t, metadata.Max{}, r.MaxMarker())

	r.SetMax(4)
	r.Rename("a.txt", "1.txt")
	r.Extra["site"] = "demo"

	c := r.Clone()
	c.SetMax(9)
	c.Rename("1.txt", "2.txt")
	c.Extra["site"] = "other"

	assert.Equal(t, metadata.Max{Value: 4}, r.MaxMarker())
	assert.Equal(t, []string{"1.txt"}, r.Order)
	assert.Equal(t, "demo", r.Extra["site"])
	orig, ok := c.OriginalOf("2.txt")
	assert.True(t, ok)
	assert.Equal(t, "a.txt", orig)
}

func TestParseMax(t *testing.T) {
	m, err := metadata.ParseMax(" 12\n")
	require.NoError(t, err)
	assert.Equal(t, 12, m.Value)
	assert.Equal(t, "12", m.String())

	_, err = metadata.ParseMax("twelve")
	assert.ErrorContains(t, err, "invalid max marker")
}
