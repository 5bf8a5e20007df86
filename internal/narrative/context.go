package narrative

import (
	"fmt"

	"github.com/talgya/chronicler/internal/history"
	"github.com/talgya/chronicler/internal/seed"
)

// contextFunc writes the epic-context passage for an event. Passages follow an
// opening clause, so they start in lower case.
type contextFunc func(civName string, s uint64) string

type contextKey struct {
	Type     history.EventType
	Category history.Category // "" matches any category
}

// phrasings builds a contextFunc choosing among fixed civName-parameterised passages.
func phrasings(options ...string) contextFunc {
	return func(civName string, s uint64) string {
		return fmt.Sprintf(seed.Choose(s, options), civName)
	}
}

var contexts = map[contextKey]contextFunc{
	{history.TypeMilitary, history.CategoryConflict}: phrasings(
		"the war drums of %s thundered across the land, and the earth drank deep of blood.",
		"the banners of %s were raised against its foes, and steel rang upon steel from dawn to dusk.",
		"the warriors of %s marched forth in grim array, their shields a wall against the storm of battle.",
		"the fields before the walls of %s became a place of slaughter, remembered in song for generations.",
		"the captains of %s sharpened their blades, for peace had failed and only war remained.",
	),
	{history.TypeMilitary, history.CategoryCoalition}: phrasings(
		"the lords of %s set aside old grudges and swore to stand together beneath a single banner.",
		"envoys rode from the halls of %s, gathering allies against a common threat.",
		"the hosts of many houses joined with %s, and the land trembled at their united march.",
		"old enemies clasped hands in the war tents of %s, bound by necessity if not by love.",
	),
	{history.TypeCultural, ""}: phrasings(
		"the poets and artisans of %s wrought wonders that would outlast kings.",
		"a new light kindled in the halls of %s, where songs and stories flourished.",
		"the people of %s raised monuments to their spirit, carving their dreams in stone.",
		"the scholars of %s gathered wisdom from every corner of the known world.",
		"festivals filled the streets of %s, and its customs spread to distant shores.",
	),
	{history.TypeReligious, ""}: phrasings(
		"the faithful of %s looked to the heavens, and the heavens seemed to answer.",
		"the temples of %s filled with pilgrims, and the air grew thick with incense and prayer.",
		"a holy fervor swept through %s, and the priests spoke of signs and portents.",
		"the gods were said to walk among the people of %s, and none who witnessed it were unchanged.",
		"the sacred fires of %s burned brighter than they had in living memory.",
	),
	{history.TypeEconomic, ""}: phrasings(
		"the markets of %s swelled with goods from distant lands, and merchants grew bold.",
		"caravans wound their way toward %s, laden with silk, spice and silver.",
		"the coffers of %s rose and fell with the tides of trade.",
		"the guildmasters of %s counted their coin and weighed the fortunes of the realm.",
	),
	{history.TypeDiplomatic, ""}: phrasings(
		"emissaries of %s crossed the borders bearing gifts and carefully chosen words.",
		"the seals of %s were pressed into wax, binding realms with ink and oath.",
		"in hushed chambers the envoys of %s bargained over the fate of nations.",
		"the heralds of %s proclaimed a new understanding between old rivals.",
	),
	{history.TypeSocial, history.CategoryCollapse}: phrasings(
		"the foundations of %s cracked, and what had seemed eternal began to crumble.",
		"darkness fell upon %s as order gave way to chaos in the streets.",
		"the old certainties of %s dissolved like morning mist before a bitter wind.",
		"the people of %s watched in despair as the pillars of their world gave way.",
	),
	{history.TypeSocial, ""}: phrasings(
		"the common folk of %s stirred, and their voices rose above the murmur of the markets.",
		"the households of %s changed their ways, and a new generation came of age.",
		"the towns and villages of %s grew restless with new hopes and old grievances.",
		"the bonds between the families of %s were tested and remade.",
	),
	{history.TypePolitical, ""}: phrasings(
		"the halls of power in %s echoed with intrigue and ambition.",
		"the throne of %s became the prize in a contest of cunning and will.",
		"the laws of %s were rewritten, and with them the fortunes of many.",
		"the councils of %s met long into the night, deciding the course of the realm.",
	),
	{history.TypeTechnological, ""}: phrasings(
		"the artificers of %s unlocked secrets that had eluded their forebears.",
		"new tools and engines were forged in the workshops of %s.",
		"the clever minds of %s bent the stubborn world to their purposes.",
		"the craftsmen of %s discovered ways of working that would change every trade.",
	),
}

var defaultContext = phrasings(
	"the chroniclers of %s set down a matter of great import.",
	"the fate of %s turned upon a moment few would forget.",
	"the story of %s took a turn that the wise would long debate.",
	"the people of %s bore witness to deeds that would shape their destiny.",
)

// contextFor returns the passage generator for an event, falling back from the
// exact (type, category) pair to the type alone and then to the default.
func contextFor(e history.Event) contextFunc {
	if f, ok := contexts[contextKey{e.Type, e.Category}]; ok {
		return f
	}
	if f, ok := contexts[contextKey{e.Type, ""}]; ok {
		return f
	}
	return defaultContext
}
