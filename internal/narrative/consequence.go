package narrative

import (
	"github.com/talgya/chronicler/internal/history"
)

var consequences = map[history.EventType][]string{
	history.TypeMilitary: {
		"The balance of power in the region shifted, and neighbors watched with wary eyes.",
		"Borders were redrawn in the aftermath, and old claims were settled in blood.",
		"The memory of that struggle hardened hearts for a generation.",
		"Those who survived carried the scars, and the realm was never quite the same.",
	},
	history.TypeEconomic: {
		"Trade routes bent toward new destinations, and fortunes were made and lost.",
		"The wealth of the realm was redistributed, raising some houses and humbling others.",
		"Prices in distant markets rose and fell with the news.",
		"The treasuries of rival powers felt the change before their rulers understood it.",
	},
	history.TypeDiplomatic: {
		"Trust, once given, proved a fragile and precious thing.",
		"The web of alliances shifted, and every court recalculated its loyalties.",
		"Envoys would speak of this moment for decades to come.",
		"Old enmities softened, though none forgot entirely.",
	},
	history.TypeCultural: {
		"The prestige of the realm spread far beyond its borders.",
		"Artisans and scholars from afar came seeking to learn its ways.",
		"What began as novelty became tradition, woven into the fabric of daily life.",
		"The works of that age were studied and imitated for centuries.",
	},
	history.TypeReligious: {
		"The faithful multiplied, and the authority of the priesthood grew.",
		"Heresies and orthodoxies alike took shape in the wake of these events.",
		"Shrines were raised, and pilgrims walked long roads to reach them.",
		"The gods, it was said, had marked this people for a special fate.",
	},
}

var defaultConsequences = []string{
	"The consequences rippled outward in ways none could foresee.",
	"Nothing would be quite the same in the years that followed.",
	"The realm adjusted to this new reality, as realms always must.",
	"Historians would later count this among the turning points of the age.",
}

func consequencePool(t history.EventType) []string {
	if pool, ok := consequences[t]; ok {
		return pool
	}
	return defaultConsequences
}
