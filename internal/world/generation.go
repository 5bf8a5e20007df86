package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds demo generation parameters.
type GenConfig struct {
	Radius        int     // Hex grid radius
	Seed          int64   // Random seed (0 = random)
	SeaLevel      float64 // Elevation threshold for ocean (0.0–1.0)
	MountainLvl   float64 // Elevation threshold for mountains (0.0–1.0)
	Civilizations int     // Number of civilizations to found
	Years         int     // Length of recorded history per civilization
	EventRate     float64 // Chance of an event in a calm year; turbulence raises it
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:        12,
		Seed:          0,
		SeaLevel:      0.25,
		MountainLvl:   0.72,
		Civilizations: 3,
		Years:         300,
		EventRate:     0.08,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Radius:        6,
		Seed:          42,
		SeaLevel:      0.30,
		MountainLvl:   0.75,
		Civilizations: 2,
		Years:         120,
		EventRate:     0.10,
	}
}

// GenerateTerrain creates the hex map the civilizations are placed on.
func GenerateTerrain(cfg GenConfig) *Map {
	elevNoise := opensimplex.NewNormalized(cfg.Seed)
	rainNoise := opensimplex.NewNormalized(cfg.Seed + 1)

	m := NewMap(cfg.Radius)

	for q := -cfg.Radius; q <= cfg.Radius; q++ {
		for r := -cfg.Radius; r <= cfg.Radius; r++ {
			coord := HexCoord{Q: q, R: r}
			if !m.InBounds(coord) {
				continue
			}

			x, y := coord.Cartesian()
			elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
			rain := octaveNoise(rainNoise, x, y, 3, 0.06, 0.5)

			// Continental shaping: reduce elevation near edges to create ocean border.
			distFromCenter := math.Sqrt(x*x+y*y) / float64(cfg.Radius)
			edgeFalloff := 1.0 - math.Pow(distFromCenter, 3.5)
			if edgeFalloff < 0 {
				edgeFalloff = 0
			}
			elev *= edgeFalloff

			m.Set(&Hex{
				Coord:     coord,
				Terrain:   deriveTerrain(elev, rain, cfg),
				Elevation: elev,
				Rainfall:  rain,
			})
		}
	}

	markCoastalHexes(m)
	return m
}

// deriveTerrain determines terrain type from elevation and rainfall.
func deriveTerrain(elev, rain float64, cfg GenConfig) Terrain {
	switch {
	case elev < cfg.SeaLevel:
		return TerrainOcean
	case elev > cfg.MountainLvl:
		return TerrainMountain
	case rain < 0.3:
		return TerrainDesert
	case rain > 0.55:
		return TerrainForest
	}
	return TerrainPlains
}

// markCoastalHexes converts land hexes adjacent to ocean into coast terrain.
func markCoastalHexes(m *Map) {
	var toMark []*Hex
	for _, hex := range m.Land() {
		for _, neighbor := range hex.Coord.Neighbors() {
			nh := m.Get(neighbor)
			if nh != nil && nh.Terrain == TerrainOcean {
				toMark = append(toMark, hex)
				break
			}
		}
	}
	for _, hex := range toMark {
		hex.Terrain = TerrainCoast
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// resolveSeed replaces a zero seed with a random one.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return rand.Int63()
	}
	return seed
}
