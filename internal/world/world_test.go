package world

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/chronicler/internal/history"
)

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance(HexCoord{}, HexCoord{}))
	assert.Equal(t, 1, Distance(HexCoord{}, HexCoord{Q: 1, R: -1}))
	assert.Equal(t, 3, Distance(HexCoord{Q: -1, R: -1}, HexCoord{Q: 2, R: -1}))
	for _, n := range (HexCoord{Q: 2, R: 3}).Neighbors() {
		assert.Equal(t, 1, Distance(HexCoord{Q: 2, R: 3}, n))
	}
}

func TestGenerateTerrainBounds(t *testing.T) {
	cfg := SmallTestConfig()
	m := GenerateTerrain(cfg)

	// 3R(R+1)+1 hexes in a radius-R grid.
	assert.Len(t, m.Hexes, 3*cfg.Radius*(cfg.Radius+1)+1)
	for c := range m.Hexes {
		assert.True(t, m.InBounds(c), "hex %v out of bounds", c)
	}

	land := m.Land()
	assert.True(t, slices.IsSortedFunc(land, func(a, b *Hex) int {
		if a.Coord.R != b.Coord.R {
			return a.Coord.R - b.Coord.R
		}
		return a.Coord.Q - b.Coord.Q
	}))
}

func TestGenerateHistoryDeterministic(t *testing.T) {
	cfg := SmallTestConfig()
	a := GenerateHistory(cfg)
	b := GenerateHistory(cfg)
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)

	cfg.Seed++
	c := GenerateHistory(cfg)
	assert.NotEqual(t, a, c)
}

func TestGenerateHistoryProducesValidEvents(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 7
	records := GenerateHistory(cfg)
	require.NotEmpty(t, records)
	assert.LessOrEqual(t, len(records), cfg.Civilizations)

	seenCivs := map[string]bool{}
	for _, rec := range records {
		civ := rec.Civilization
		assert.False(t, seenCivs[civ.ID], "duplicate civilization %s", civ.ID)
		seenCivs[civ.ID] = true

		require.NoError(t, history.Validate(civ.Name, rec.Events))
		require.NotEmpty(t, rec.Events)
		assert.Equal(t, history.CategoryFounding, rec.Events[0].Category)
		assert.Equal(t, civ.FoundedYear, rec.Events[0].Year)

		ids := map[string]bool{}
		for i, e := range rec.Events {
			assert.False(t, ids[e.ID], "duplicate event %s", e.ID)
			ids[e.ID] = true
			assert.Equal(t, civ.ID, e.CivilizationID)
			assert.GreaterOrEqual(t, e.Significance, 0.0)
			assert.LessOrEqual(t, e.Significance, 5.0)
			assert.LessOrEqual(t, e.Year, civ.FoundedYear+cfg.Years)
			if i > 0 {
				assert.Greater(t, e.Year, rec.Events[i-1].Year)
			}
			assert.NotContains(t, e.Title, "{")
			assert.NotContains(t, e.Description, "{")
		}
	}
}

func TestUniqueNames(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	names := generateCivNames(rng, 40)
	assert.Len(t, names, 40)
	seen := map[string]bool{}
	for _, n := range names {
		assert.False(t, seen[n], "duplicate name %s", n)
		seen[n] = true
	}
}

func TestRoman(t *testing.T) {
	assert.Equal(t, "II", roman(2))
	assert.Equal(t, "IV", roman(4))
	assert.Equal(t, "XIV", roman(14))
}
