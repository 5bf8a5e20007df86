// Package lore decides which historical events are worth telling and groups
// the survivors into time-bounded chapters.
package lore

import (
	"github.com/talgya/chronicler/internal/history"
)

// Rule identifies which retention rule admitted an event.
type Rule uint8

const (
	RuleNone          Rule = iota
	RuleAlwaysEpic         // Category is in the always-epic set
	RuleSignificant        // Significance >= 3.0
	RuleReligious          // Any religious event
	RuleBattle             // Military conflict with significance >= 2.0
	RuleCultural           // Cultural event with significance >= 1.5
	RuleCivicMilestone     // Social/Political/Diplomatic/Technological with significance >= 2.0
)

var ruleNames = [...]string{"none", "always-epic", "significant", "religious", "battle", "cultural", "civic-milestone"}

func (r Rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return "unknown"
}

var alwaysEpic = map[history.Category]bool{
	history.CategoryHero:       true,
	history.CategoryCoalition:  true,
	history.CategoryHolyWar:    true,
	history.CategoryBetrayal:   true,
	history.CategoryCollapse:   true,
	history.CategoryGolden:     true,
	history.CategoryDisaster:   true,
	history.CategoryRevolution: true,
	history.CategoryCascade:    true,
	history.CategorySpiritual:  true,
	history.CategoryDiscovery:  true,
	history.CategoryEscalation: true,
}

// IsAlwaysEpic reports whether events of category c are told regardless of significance.
func IsAlwaysEpic(c history.Category) bool {
	return alwaysEpic[c]
}

// Reason returns the first rule that retains e, in precedence order.
func Reason(e history.Event) (Rule, bool) {
	switch {
	case alwaysEpic[e.Category]:
		return RuleAlwaysEpic, true
	case e.Significance >= 3.0:
		return RuleSignificant, true
	case e.Type == history.TypeReligious:
		return RuleReligious, true
	case e.Type == history.TypeMilitary && e.Category == history.CategoryConflict && e.Significance >= 2.0:
		return RuleBattle, true
	case e.Type == history.TypeCultural && e.Significance >= 1.5:
		return RuleCultural, true
	case isCivic(e.Type) && e.Significance >= 2.0:
		return RuleCivicMilestone, true
	}
	return RuleNone, false
}

func isCivic(t history.EventType) bool {
	switch t {
	case history.TypeSocial, history.TypePolitical, history.TypeDiplomatic, history.TypeTechnological:
		return true
	}
	return false
}

// Filter returns the lore-worthy events, keeping their input order.
func Filter(events []history.Event) []history.Event {
	kept := make([]history.Event, 0, len(events))
	for _, e := range events {
		if _, ok := Reason(e); ok {
			kept = append(kept, e)
		}
	}
	return kept
}
