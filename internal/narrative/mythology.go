package narrative

import (
	"strings"

	"github.com/talgya/chronicler/internal/seed"
)

var myths = []string{
	"Before the counting of years, when the world was yet unformed, the first ancestors of {civ} emerged from the mists of creation. The elders speak of a great light that descended from the heavens, bearing the seeds of wisdom and the fire of civilization. From this divine spark, the people of {civ} learned to shape stone and till the earth.",
	"It is written in the oldest songs that {civ} was born of a prophecy. A seer, blind to the world but gifted with inner sight, foretold that a people would rise from the wilderness and build a realm to endure the ages. Those who heard the prophecy gathered their kin and set out to fulfill it, and so {civ} was founded upon a promise.",
	"The rulers of {civ} claim descent from the gods themselves. In the time before time, a celestial being took mortal form and walked among the first tribes, teaching them law and song. When at last the divine ancestor returned to the stars, the bloodline remained, and from it sprang the royal houses of {civ}.",
	"Legend holds that {civ} grew from the roots of a great tree that stood at the center of the world. Its branches held up the sky and its roots drank from the deep waters. Those who dwelt in its shade were the first people of {civ}, and they carry its strength in their blood still.",
	"On a night when the stars fell like rain, a burning stone struck the earth where {civ} now stands. From the crater rose a people hardened by fire and blessed by the heavens. They built their first hearth around the fallen star, and its glow, they say, has never truly faded.",
	"The elders of {civ} tell of a great flood that swept away the old world. Only a single family survived, carried upon the waters in a vessel of reed and pitch. When the waters receded, they made a covenant with the powers of sky and sea, and from their children came all the people of {civ}.",
	"In the beginning there was only cold and darkness, until a wanderer brought the first fire to the people who would become {civ}. The flame was a gift and a burden, for it demanded to be tended through every winter. In keeping it alive, the people of {civ} learned patience, unity and the art of remembering.",
}

// MythCount is the number of fixed mythological paragraphs.
const MythCount = 7

// Mythology returns the legendary backstory told when a chapter has no events.
func Mythology(civName string) string {
	return strings.ReplaceAll(seed.Choose(seed.Of("myth", civName), myths), "{civ}", civName)
}

// Myths returns every mythological paragraph told for civName.
func Myths(civName string) []string {
	out := make([]string, len(myths))
	for i, m := range myths {
		out[i] = strings.ReplaceAll(m, "{civ}", civName)
	}
	return out
}
