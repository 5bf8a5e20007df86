package lore

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/talgya/chronicler/internal/history"
	"github.com/talgya/chronicler/internal/seed"
)

type titleKey struct {
	Type     history.EventType
	Category history.Category // "" matches any category
}

var titleBuckets = map[titleKey][]string{
	{history.TypeMilitary, history.CategoryConflict}: {
		"The Blood-Soaked Conquest",
		"The War of Shattered Crowns",
		"The Iron Reckoning",
		"The Age of Broken Shields",
		"The Crimson Campaigns",
	},
	{history.TypeMilitary, ""}: {
		"The Gathering of Banners",
		"The March of Spears",
		"The Years of the Watchfires",
		"The Sworn Hosts",
	},
	{history.TypeReligious, ""}: {
		"The Age of Divine Revelation",
		"The Kindling of the Sacred Flame",
		"The Pilgrim Years",
		"The Covenant of Heaven",
		"The Whispering of the Gods",
	},
	{history.TypeCultural, ""}: {
		"The Flowering of the Arts",
		"The Age of Songs and Stone",
		"The Illuminated Years",
		"The Weaving of Tradition",
	},
	{history.TypeEconomic, ""}: {
		"The Age of Gilded Roads",
		"The Turning of the Coin",
		"The Merchant Tides",
		"The Years of Plenty and Want",
	},
	{history.TypeDiplomatic, ""}: {
		"The Age of Oaths",
		"The Sealing of Accords",
		"The Envoys' Era",
		"The Web of Alliances",
	},
	{history.TypeSocial, history.CategoryCollapse}: {
		"The Great Unraveling",
		"The Fall of the Old Order",
		"The Years of Ash",
		"The Breaking of the Realm",
	},
	{history.TypeSocial, ""}: {
		"The Restless Generations",
		"The Age of the Common Folk",
		"The Shifting of Households",
		"The Years of Changing Custom",
	},
	{history.TypePolitical, ""}: {
		"The Contest of Thrones",
		"The Age of Decrees",
		"The Reforging of the Law",
		"The Councils of Power",
	},
	{history.TypeTechnological, ""}: {
		"The Age of Ingenuity",
		"The Forging of New Ways",
		"The Years of the Turning Wheel",
		"The Kindled Workshops",
	},
}

var defaultTitles = []string{
	"The Turning of the Age",
	"The Unwritten Years",
	"The Long Procession",
	"The Years Between Legends",
	"The Quiet Inheritance",
}

// ChapterTitle names a chapter from the dominant type and category of its
// events. The year range is always appended.
func ChapterTitle(events []history.Event, start, end int) string {
	types := make([]history.EventType, len(events))
	cats := make([]history.Category, len(events))
	for i, e := range events {
		types[i] = e.Type
		cats[i] = e.Category
	}
	domType := mode(types)
	domCat := mode(cats)

	phrasings, ok := titleBuckets[titleKey{domType, domCat}]
	if !ok {
		phrasings, ok = titleBuckets[titleKey{domType, ""}]
	}
	if !ok {
		phrasings = defaultTitles
	}

	name := seed.Choose(seed.Derive(start+end, 0, "chapter-title"), phrasings)
	return name + " " + YearRange(start, end)
}

// YearRange formats "(Year Y)" or "(Years Y1–Y2)".
func YearRange(start, end int) string {
	if start == end {
		return fmt.Sprintf("(Year %d)", start)
	}
	return fmt.Sprintf("(Years %d–%d)", start, end)
}

// mode returns the most frequent value; ties go to the smallest value.
func mode[T constraints.Ordered](vals []T) T {
	var best T
	if len(vals) == 0 {
		return best
	}
	counts := make(map[T]int, len(vals))
	for _, v := range vals {
		counts[v]++
	}
	bestCount := 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v < best) {
			best, bestCount = v, n
		}
	}
	return best
}
