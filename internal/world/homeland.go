package world

import (
	"cmp"
	"math/rand"
	"slices"
	"strings"
)

// Homeland is the seat of a demo civilization.
type Homeland struct {
	Coord   HexCoord
	Terrain Terrain
	Score   float64 // Desirability score
	Name    string  // Civilization name
	Capital string  // Name of the founding city
}

// PlaceHomelands picks the most desirable land hexes, kept a third of the map
// radius apart where possible, and names a civilization for each.
func PlaceHomelands(m *Map, count int, rng *rand.Rand) []Homeland {
	type scored struct {
		hex   *Hex
		score float64
	}
	var candidates []scored
	for _, hex := range m.Land() {
		if s := homelandScore(m, hex); s > 0 {
			candidates = append(candidates, scored{hex, s})
		}
	}

	// Stable sort keeps equal scores in land order.
	slices.SortStableFunc(candidates, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	minDist := max(2, m.Radius/3)
	var homes []Homeland
	for _, c := range candidates {
		if len(homes) >= count {
			break
		}
		if tooClose(c.hex.Coord, homes, minDist) {
			continue
		}
		homes = append(homes, Homeland{Coord: c.hex.Coord, Terrain: c.hex.Terrain, Score: c.score})
	}

	// Crowded maps fall back to ignoring the spacing rule.
	for _, c := range candidates {
		if len(homes) >= count {
			break
		}
		if !slices.ContainsFunc(homes, func(h Homeland) bool { return h.Coord == c.hex.Coord }) {
			homes = append(homes, Homeland{Coord: c.hex.Coord, Terrain: c.hex.Terrain, Score: c.score})
		}
	}

	civNames := generateCivNames(rng, len(homes))
	cities := generatePlaceNames(rng, len(homes))
	for i := range homes {
		homes[i].Name = civNames[i]
		homes[i].Capital = cities[i]
	}
	return homes
}

// homelandScore evaluates how desirable a hex is as the seat of a civilization.
func homelandScore(m *Map, hex *Hex) float64 {
	score := 0.0

	switch hex.Terrain {
	case TerrainPlains:
		score += 3.0
	case TerrainCoast:
		score += 4.0 // Harbors are prime locations
	case TerrainForest:
		score += 1.5
	case TerrainDesert:
		score += 0.5
	case TerrainMountain:
		score += 0.3
	default:
		return 0
	}

	// Bonus for nearby terrain diversity.
	terrainTypes := make(map[Terrain]bool)
	for _, nc := range hex.Coord.Neighbors() {
		nh := m.Get(nc)
		if nh != nil && nh.Terrain != TerrainOcean {
			terrainTypes[nh.Terrain] = true
		}
	}
	score += float64(len(terrainTypes)) * 0.3
	score += hex.Rainfall * 0.5

	return score
}

func tooClose(coord HexCoord, existing []Homeland, minDist int) bool {
	for _, h := range existing {
		if Distance(coord, h.Coord) < minDist {
			return true
		}
	}
	return false
}

// generateCivNames produces civilization names by combining syllables.
func generateCivNames(rng *rand.Rand, count int) []string {
	onsets := []string{
		"Val", "Thal", "Kor", "Ash", "Myr", "Eld", "Zan", "Tor",
		"Vel", "Dra", "Sol", "Nor", "Kha", "Ist", "Ber", "Qua",
	}
	middles := []string{"", "", "a", "e", "i", "o", "an", "en"}
	endings := []string{
		"oria", "or", "ath", "ethia", "arin", "uun", "ia", "esh",
		"ara", "ond", "ir", "ethos",
	}
	return uniqueNames(count, func() string {
		return onsets[rng.Intn(len(onsets))] + middles[rng.Intn(len(middles))] + endings[rng.Intn(len(endings))]
	})
}

// generatePlaceNames produces city and landmark names by combining syllables.
func generatePlaceNames(rng *rand.Rand, count int) []string {
	prefixes := []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "Far", "Deep", "Long", "Gold", "Frost", "Storm", "Thorn",
	}
	suffixes := []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "wood", "field", "dale", "crest", "vale", "port",
		"bury", "marsh", "well", "brook", "cliff", "moor", "reach", "helm",
	}
	return uniqueNames(count, func() string {
		return prefixes[rng.Intn(len(prefixes))] + suffixes[rng.Intn(len(suffixes))]
	})
}

// generateFigureNames produces names for the heroes, rulers and prophets of a history.
func generateFigureNames(rng *rand.Rand, count int) []string {
	first := []string{
		"Aldric", "Brenna", "Cael", "Doran", "Elspeth", "Fenwick", "Galen", "Hild",
		"Ivo", "Jorun", "Kestrel", "Lioren", "Maelis", "Nerys", "Osric", "Perrin",
	}
	epithets := []string{
		"the Bold", "the Wise", "the Pious", "the Younger", "Ironhand",
		"the Wanderer", "the Silent", "Oathkeeper", "the Fair", "Stormborn",
	}
	return uniqueNames(count, func() string {
		return first[rng.Intn(len(first))] + " " + epithets[rng.Intn(len(epithets))]
	})
}

// uniqueNames draws from gen until count distinct names exist. After a bounded
// number of collisions a roman-numeral suffix disambiguates.
func uniqueNames(count int, gen func() string) []string {
	used := make(map[string]bool)
	names := make([]string, 0, count)
	for attempts := 0; len(names) < count; attempts++ {
		name := gen()
		if used[name] {
			if attempts < count*20 {
				continue
			}
			for n := 2; used[name]; n++ {
				name = strings.TrimSpace(gen()) + " " + roman(n)
			}
		}
		used[name] = true
		names = append(names, name)
	}
	return names
}

func roman(n int) string {
	numerals := []struct {
		v int
		s string
	}{{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"}}
	var b strings.Builder
	for _, r := range numerals {
		for n >= r.v {
			b.WriteString(r.s)
			n -= r.v
		}
	}
	return b.String()
}
