package world

import (
	"cmp"
	"fmt"
	"slices"
)

// Map holds the hex grid the demo civilizations live on.
type Map struct {
	Hexes  map[HexCoord]*Hex `json:"-"` // All hexes keyed by coordinate
	Radius int               `json:"radius"`
}

// NewMap creates an empty map with the given radius.
// A hex grid of radius R contains hexes where max(|q|, |r|, |s|) <= R.
func NewMap(radius int) *Map {
	return &Map{
		Hexes:  make(map[HexCoord]*Hex),
		Radius: radius,
	}
}

// Get returns the hex at the given coordinate, or nil if out of bounds.
func (m *Map) Get(coord HexCoord) *Hex {
	return m.Hexes[coord]
}

// Set places a hex at the given coordinate.
func (m *Map) Set(hex *Hex) {
	m.Hexes[hex.Coord] = hex
}

// InBounds returns true if the coordinate is within the map radius.
func (m *Map) InBounds(coord HexCoord) bool {
	return max(abs(coord.Q), abs(coord.R), abs(coord.S())) <= m.Radius
}

// Land returns every non-ocean hex in a stable (r, q) order so that
// callers drawing from a seeded RNG stay reproducible.
func (m *Map) Land() []*Hex {
	land := make([]*Hex, 0, len(m.Hexes))
	for _, h := range m.Hexes {
		if h.Terrain != TerrainOcean {
			land = append(land, h)
		}
	}
	slices.SortFunc(land, func(a, b *Hex) int {
		if c := cmp.Compare(a.Coord.R, b.Coord.R); c != 0 {
			return c
		}
		return cmp.Compare(a.Coord.Q, b.Coord.Q)
	})
	return land
}

// TerrainCounts returns a summary of terrain type distribution.
func (m *Map) TerrainCounts() map[Terrain]int {
	counts := make(map[Terrain]int)
	for _, hex := range m.Hexes {
		counts[hex.Terrain]++
	}
	return counts
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(radius=%d, hexes=%d)", m.Radius, len(m.Hexes))
}
