// Package causal infers directional links between temporally adjacent events
// in a chapter and renders them as connective prose.
package causal

import (
	"fmt"
	"slices"

	"github.com/talgya/chronicler/internal/history"
	"github.com/talgya/chronicler/internal/seed"
)

// DefaultMaxYearsApart is the widest gap, in years, a link may span.
const DefaultMaxYearsApart = 20

// LinkType classifies how one event led to the next.
type LinkType uint8

const (
	None LinkType = iota
	DirectConsequence
	ResourceEffect
	PoliticalRipple
	CulturalInfluence
	MilitaryEscalation
)

var linkTypeNames = [...]string{
	"None", "DirectConsequence", "ResourceEffect", "PoliticalRipple", "CulturalInfluence", "MilitaryEscalation",
}

func (t LinkType) String() string {
	if int(t) < len(linkTypeNames) {
		return linkTypeNames[t]
	}
	return "Unknown"
}

// MarshalText renders the link type by name in JSON and YAML output.
func (t LinkType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a link type name written by MarshalText.
func (t *LinkType) UnmarshalText(b []byte) error {
	i := slices.Index(linkTypeNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("unknown link type %q", b)
	}
	*t = LinkType(i)
	return nil
}

// Link is an inferred relationship from one event to the event after it.
// Position is the index of the earlier event within its chapter. Event IDs
// may be empty or repeated, so links are placed by Position.
type Link struct {
	Position    int      `json:"position"`
	FromEventID string   `json:"from_event_id"`
	ToEventID   string   `json:"to_event_id"`
	Type        LinkType `json:"type"`
	YearsApart  int      `json:"years_apart"`
	Text        string   `json:"text"`
}

type typePair struct {
	From, To history.EventType
}

var rules = map[typePair]LinkType{
	{history.TypeMilitary, history.TypeMilitary}:        MilitaryEscalation,
	{history.TypeReligious, history.TypeMilitary}:       MilitaryEscalation,
	{history.TypeEconomic, history.TypeMilitary}:        ResourceEffect,
	{history.TypeEconomic, history.TypeDiplomatic}:      ResourceEffect,
	{history.TypeEconomic, history.TypeSocial}:          ResourceEffect,
	{history.TypeTechnological, history.TypeEconomic}:   ResourceEffect,
	{history.TypeDiplomatic, history.TypeMilitary}:      PoliticalRipple,
	{history.TypeDiplomatic, history.TypePolitical}:     PoliticalRipple,
	{history.TypePolitical, history.TypeMilitary}:       PoliticalRipple,
	{history.TypePolitical, history.TypeSocial}:         PoliticalRipple,
	{history.TypeCultural, history.TypeSocial}:          CulturalInfluence,
	{history.TypeCultural, history.TypeReligious}:       CulturalInfluence,
	{history.TypeReligious, history.TypeCultural}:       CulturalInfluence,
}

// Inferencer derives links within one chapter's year-sorted events.
type Inferencer struct {
	MaxYearsApart   int     // Pairs further apart are never linked
	DirectThreshold float64 // Significance above which an unmatched pair may still be linked
	DirectWindow    int     // Years within which that fallback applies
}

// NewInferencer returns an Inferencer with the given ceiling. A ceiling of
// zero or less selects DefaultMaxYearsApart.
func NewInferencer(maxYearsApart int) Inferencer {
	if maxYearsApart <= 0 {
		maxYearsApart = DefaultMaxYearsApart
	}
	return Inferencer{
		MaxYearsApart:   maxYearsApart,
		DirectThreshold: 3.0,
		DirectWindow:    5,
	}
}

// Classify returns the link type for an adjacent pair, ignoring the ceiling.
func (in Inferencer) Classify(from, to history.Event) LinkType {
	if t, ok := rules[typePair{from.Type, to.Type}]; ok {
		return t
	}
	if from.Significance > in.DirectThreshold && to.Year-from.Year <= in.DirectWindow {
		return DirectConsequence
	}
	return None
}

// Infer returns the links between adjacent events. Pairs classified as None
// or further apart than the ceiling produce no link.
func (in Inferencer) Infer(chapterEvents []history.Event, civName string) []Link {
	var links []Link
	for i := 0; i+1 < len(chapterEvents); i++ {
		from, to := chapterEvents[i], chapterEvents[i+1]
		yearsApart := to.Year - from.Year
		if yearsApart > in.MaxYearsApart {
			continue
		}
		t := in.Classify(from, to)
		if t == None {
			continue
		}
		links = append(links, Link{
			Position:    i,
			FromEventID: from.ID,
			ToEventID:   to.ID,
			Type:        t,
			YearsApart:  yearsApart,
			Text:        LinkText(t, civName, seed.Derive(from.Year+to.Year, 0, "causal")),
		})
	}
	return links
}
