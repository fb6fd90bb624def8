package suggestion

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays fixed indices and records each bound it was asked for.
type scriptedSource struct {
	picks  []int
	bounds []int
}

func (s *scriptedSource) IntN(n int) int {
	s.bounds = append(s.bounds, n)
	j := s.picks[0]
	s.picks = s.picks[1:]
	return j
}

func TestShuffle_FisherYatesOrder(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	source := &scriptedSource{picks: []int{0, 0, 0}}

	got := Shuffle(items, source)

	// i=3 swaps with 0, i=2 with 0, i=1 with 0
	assert.Equal(t, []string{"b", "c", "d", "a"}, got)
	assert.Equal(t, []int{4, 3, 2}, source.bounds)
	assert.Equal(t, []string{"a", "b", "c", "d"}, items)
}

func TestShuffle_IdentityWhenEachIndexPicksItself(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	got := Shuffle(items, &scriptedSource{picks: []int{4, 3, 2, 1}})

	assert.Equal(t, items, got)
}

func TestShuffle_ShortInputs(t *testing.T) {
	assert.Empty(t, Shuffle([]string{}, &scriptedSource{}))
	assert.Equal(t, []string{"solo"}, Shuffle([]string{"solo"}, &scriptedSource{}))
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	require.Equal(t, 16, c.Len())
	assert.Equal(t, "¿Qué es el amor según 1 Corintios 13?", c.Entries()[0])
	assert.Equal(t, "Resume el libro de Apocalipsis.", c.Entries()[15])
}

func TestPick_DistinctEntriesFromCatalog(t *testing.T) {
	c, err := NewCatalog(defaultEntries, rand.New(rand.NewPCG(7, 11)))
	require.NoError(t, err)

	catalog := make(map[string]bool)
	for _, e := range c.Entries() {
		catalog[e] = true
	}

	for trial := 0; trial < 1000; trial++ {
		picked := c.Pick(DefaultPickSize)
		require.Len(t, picked, DefaultPickSize)

		seen := make(map[string]bool)
		for _, p := range picked {
			assert.True(t, catalog[p], "unknown suggestion %q", p)
			assert.False(t, seen[p], "duplicate suggestion %q", p)
			seen[p] = true
		}
	}
}

func TestPick_FirstPositionRoughlyUniform(t *testing.T) {
	c, err := NewCatalog(defaultEntries, rand.New(rand.NewPCG(42, 1024)))
	require.NoError(t, err)

	const trials = 32000
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		counts[c.Pick(DefaultPickSize)[0]]++
	}

	expected := trials / c.Len()
	require.Len(t, counts, c.Len())
	for entry, n := range counts {
		assert.InDelta(t, expected, n, float64(expected)*0.2, "entry %q", entry)
	}
}

func TestPick_Bounds(t *testing.T) {
	c, err := NewCatalog([]string{"uno", "dos"}, nil)
	require.NoError(t, err)

	assert.Empty(t, c.Pick(0))
	assert.Len(t, c.Pick(10), 2)
}

func TestNewCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
	}{
		{name: "empty", entries: nil},
		{name: "blank entry", entries: []string{"uno", "  "}},
		{name: "duplicate", entries: []string{"uno", "uno "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.entries, nil)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "suggestions.yaml")
		require.NoError(t, os.WriteFile(path, []byte("suggestions:\n  - Salmo 23\n  - Juan 3:16\n"), 0o644))

		c, err := LoadFile(path, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Salmo 23", "Juan 3:16"}, c.Entries())
	})

	t.Run("no entries", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("suggestions: []\n"), 0o644))

		_, err := LoadFile(path, nil)
		assert.ErrorIs(t, err, ErrEmptyCatalog)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.yaml"), nil)
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("suggestions: [unterminated\n"), 0o644))

		_, err := LoadFile(path, nil)
		assert.Error(t, err)
	})
}
