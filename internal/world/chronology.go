package world

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/chronicler/internal/history"
)

// typeWeights biases event types by the terrain of a civilization's homeland.
// Order follows history.EventTypes.
var typeWeights = map[Terrain][8]float64{
	TerrainPlains:   {3, 2, 1, 2, 2, 3, 4, 1},
	TerrainForest:   {2, 4, 2, 1, 1, 2, 2, 2},
	TerrainMountain: {5, 1, 1, 2, 1, 1, 2, 3},
	TerrainCoast:    {2, 2, 1, 5, 3, 2, 2, 2},
	TerrainDesert:   {2, 1, 5, 2, 1, 2, 2, 1},
}

var typeCategories = map[history.EventType][]history.Category{
	history.TypeMilitary:      {history.CategoryConflict, history.CategoryConflict, history.CategoryCoalition, history.CategoryEscalation, history.CategoryBetrayal, history.CategoryHero},
	history.TypeCultural:      {history.CategoryGolden, history.CategoryConstruction, history.CategoryDiscovery, history.CategoryHero},
	history.TypeReligious:     {history.CategorySpiritual, history.CategoryHolyWar, history.CategoryCascade},
	history.TypeEconomic:      {history.CategoryTrade, history.CategoryTrade, history.CategoryCollapse, history.CategoryDiscovery},
	history.TypeDiplomatic:    {history.CategoryTreaty, history.CategoryTreaty, history.CategoryCoalition, history.CategoryBetrayal},
	history.TypeSocial:        {history.CategoryMigration, history.CategoryRevolution, history.CategoryDisaster, history.CategoryCollapse},
	history.TypePolitical:     {history.CategorySuccession, history.CategoryReform, history.CategoryRevolution},
	history.TypeTechnological: {history.CategoryDiscovery, history.CategoryConstruction},
}

var titleTemplates = map[history.Category][]string{
	history.CategoryConflict:     {"The Battle of {place}", "The Siege of {place}", "The {place} Campaign"},
	history.CategoryCoalition:    {"The Pact of {place}", "The Grand Alliance"},
	history.CategoryHolyWar:      {"The Crusade of {figure}", "The War of the Faithful"},
	history.CategoryBetrayal:     {"The Treachery of {figure}", "The Broken Oath at {place}"},
	history.CategoryCollapse:     {"The Fall of {place}", "The Great Ruin"},
	history.CategoryGolden:       {"The Flowering of {place}", "The Age of {figure}"},
	history.CategoryDisaster:     {"The Flood of {place}", "The Red Plague", "The Burning of {place}"},
	history.CategoryRevolution:   {"The Uprising at {place}", "The Overthrow of {figure}"},
	history.CategoryCascade:      {"The Schism", "The Turning of the Faithful"},
	history.CategorySpiritual:    {"The Vision of {figure}", "The Consecration of {place}"},
	history.CategoryDiscovery:    {"The Discovery at {place}", "The Insight of {figure}"},
	history.CategoryEscalation:   {"The Border Wars", "The Muster at {place}"},
	history.CategoryHero:         {"The Deeds of {figure}", "The Stand of {figure} at {place}"},
	history.CategoryFounding:     {"The Founding of {place}"},
	history.CategoryTrade:        {"The Opening of the {place} Road", "The {place} Market Charter"},
	history.CategoryTreaty:       {"The Treaty of {place}", "The Accord of {figure}"},
	history.CategoryReform:       {"The Reforms of {figure}", "The {place} Codex"},
	history.CategoryMigration:    {"The Long March to {place}", "The Settling of {place}"},
	history.CategorySuccession:   {"The Crowning of {figure}", "The Succession Crisis"},
	history.CategoryConstruction: {"The Raising of {place}", "The Great Works of {figure}"},
}

var descriptionTemplates = map[history.EventType][]string{
	history.TypeMilitary:      {"The armies of {civ} met their foes near {place}.", "{figure} led the host of {civ} into the field."},
	history.TypeCultural:      {"Poets and builders of {civ} gathered at {place}.", "{figure} gave {civ} songs that would outlive the age."},
	history.TypeReligious:     {"The faithful of {civ} gathered at {place} to hear {figure}.", "A new devotion spread through {civ}."},
	history.TypeEconomic:      {"Merchants of {civ} grew rich along the roads from {place}.", "The coffers of {civ} were tested."},
	history.TypeDiplomatic:    {"Envoys of {civ} met at {place}.", "{figure} spoke for {civ} before foreign courts."},
	history.TypeSocial:        {"The common folk of {civ} were stirred near {place}.", "Hardship and hope moved through the people of {civ}."},
	history.TypePolitical:     {"{figure} took up the rule of {civ}.", "The council of {civ} met at {place}."},
	history.TypeTechnological: {"Artisans of {civ} at {place} devised new works.", "{figure} mastered a craft unknown before."},
}

// GenerateHistory builds demo civilizations and their histories. Output is
// fully determined by cfg; a zero seed is replaced with a random one.
func GenerateHistory(cfg GenConfig) []history.Record {
	cfg.Seed = resolveSeed(cfg.Seed)
	m := GenerateTerrain(cfg)
	rng := rand.New(rand.NewSource(cfg.Seed + 200))
	homes := PlaceHomelands(m, cfg.Civilizations, rng)

	ids := make([]string, len(homes))
	for i, h := range homes {
		ids[i] = civID(h.Name)
	}

	records := make([]history.Record, 0, len(homes))
	for i, h := range homes {
		rec := chronicleFor(m, cfg, i, h, ids)
		records = append(records, rec)
		slog.Debug("demo civilization generated",
			"civ", rec.Civilization.ID,
			"terrain", h.Terrain,
			"events", len(rec.Events),
		)
	}
	return records
}

func civID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func chronicleFor(m *Map, cfg GenConfig, idx int, home Homeland, ids []string) history.Record {
	rng := rand.New(rand.NewSource(cfg.Seed + 300 + int64(idx)))
	turbulence := opensimplex.NewNormalized(cfg.Seed + 10 + int64(idx))

	founded := rng.Intn(30)
	civ := history.Civilization{
		ID:          ids[idx],
		Name:        home.Name,
		FoundedYear: founded,
		Description: fmt.Sprintf("A people of the %s, seated at %s.", strings.ToLower(home.Terrain.String()), home.Capital),
	}

	places := append([]string{home.Capital}, generatePlaceNames(rng, 6)...)
	figures := generateFigureNames(rng, 8)
	weights := typeWeights[home.Terrain]

	events := []history.Event{{
		ID:             fmt.Sprintf("%s-%04d", civ.ID, 0),
		Year:           founded,
		Title:          "The Founding of " + home.Capital,
		Description:    fmt.Sprintf("The first hearths of %s were lit at %s.", civ.Name, home.Capital),
		Type:           history.TypePolitical,
		Category:       history.CategoryFounding,
		Significance:   3.5,
		Location:       locate(m, home.Coord, rng),
		CivilizationID: civ.ID,
		RelatedFigures: []string{figures[0]},
	}}

	for year := founded + 1; year <= founded+cfg.Years; year++ {
		t := turbulence.Eval2(float64(year)*0.03, float64(idx)*7.3)
		if rng.Float64() >= cfg.EventRate*(0.4+1.6*t) {
			continue
		}

		et := history.EventTypes[weightedIndex(rng, weights[:])]
		cat := typeCategories[et][rng.Intn(len(typeCategories[et]))]
		place := places[rng.Intn(len(places))]
		figure := figures[rng.Intn(len(figures))]
		fill := strings.NewReplacer("{civ}", civ.Name, "{place}", place, "{figure}", figure)

		e := history.Event{
			ID:             fmt.Sprintf("%s-%04d", civ.ID, len(events)),
			Year:           year,
			Title:          fill.Replace(pick(rng, titleTemplates[cat])),
			Description:    fill.Replace(pick(rng, descriptionTemplates[et])),
			Type:           et,
			Category:       cat,
			Significance:   significance(t, rng),
			Location:       locate(m, home.Coord, rng),
			CivilizationID: civ.ID,
			RelatedFigures: []string{figure},
		}
		if len(ids) > 1 && (et == history.TypeDiplomatic || cat == history.CategoryConflict || cat == history.CategoryCoalition) {
			other := rng.Intn(len(ids) - 1)
			if other >= idx {
				other++
			}
			e.RelatedCivilizations = []string{ids[other]}
		}
		events = append(events, e)
	}

	return history.Record{Civilization: civ, Events: events}
}

// significance maps turbulence onto the 0–5 scale with some jitter,
// rounded to one decimal.
func significance(turbulence float64, rng *rand.Rand) float64 {
	s := 0.3 + turbulence*3.7 + rng.Float64()*1.2
	s = math.Min(s, 5.0)
	return math.Round(s*10) / 10
}

// locate places an event on or next to the homeland hex.
func locate(m *Map, home HexCoord, rng *rand.Rand) history.Vec3 {
	coord := home
	if n := home.Neighbors()[rng.Intn(6)]; m.Get(n) != nil && m.Get(n).Terrain != TerrainOcean {
		coord = n
	}
	x, y := coord.Cartesian()
	return history.Vec3{X: x, Y: y, Z: m.Get(coord).Elevation}
}

func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	return len(weights) - 1
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
