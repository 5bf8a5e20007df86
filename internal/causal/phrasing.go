package causal

import (
	"fmt"

	"github.com/talgya/chronicler/internal/seed"
)

var linkPhrasings = map[LinkType][]string{
	DirectConsequence: {
		"What followed flowed directly from what had come before, and %s could not escape its own deeds.",
		"The echoes of those days had not yet faded when %s reaped what it had sown.",
		"As surely as night follows dusk, the next turn of fortune for %s grew from the last.",
	},
	ResourceEffect: {
		"The shifting of wealth and stores altered what %s could afford to dare.",
		"Granaries and treasuries, filled or emptied, shaped the choices of %s in the years ahead.",
		"The flow of coin and grain through %s set the stage for what was to come.",
	},
	PoliticalRipple: {
		"The ripples of statecraft spread outward, and the rulers of %s were moved by them.",
		"Words spoken in council halls soon became deeds upon the land of %s.",
		"The balance of power within %s tilted, and others moved to fill the void.",
	},
	CulturalInfluence: {
		"New ideas took root among the people of %s and bore unexpected fruit.",
		"The songs and customs of %s carried the seeds of change to every hearth.",
		"What the poets and priests of %s had spoken, the common folk began to live.",
	},
	MilitaryEscalation: {
		"Steel answered steel, and the wars of %s grew fiercer still.",
		"The drums of %s did not fall silent; each battle called forth the next.",
		"Vengeance begat vengeance, and the hosts of %s marched once more.",
	},
}

// LinkText renders the connective sentence for a link type. None yields "".
func LinkText(t LinkType, civName string, s uint64) string {
	phrasings, ok := linkPhrasings[t]
	if !ok {
		return ""
	}
	return fmt.Sprintf(seed.Choose(s, phrasings), civName)
}
