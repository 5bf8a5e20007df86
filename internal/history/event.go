// Package history defines the historical event records a civilization's
// chronicle is compiled from, and the rules for validating them on ingestion.
package history

import (
	"slices"
	"strings"
)

// EventType is the broad nature of a historical event.
type EventType string

const (
	TypeMilitary      EventType = "Military"
	TypeCultural      EventType = "Cultural"
	TypeReligious     EventType = "Religious"
	TypeEconomic      EventType = "Economic"
	TypeDiplomatic    EventType = "Diplomatic"
	TypeSocial        EventType = "Social"
	TypePolitical     EventType = "Political"
	TypeTechnological EventType = "Technological"
)

// EventTypes lists every valid event type.
var EventTypes = []EventType{
	TypeMilitary, TypeCultural, TypeReligious, TypeEconomic,
	TypeDiplomatic, TypeSocial, TypePolitical, TypeTechnological,
}

// Valid reports whether t is one of the closed set of event types.
func (t EventType) Valid() bool {
	return slices.Contains(EventTypes, t)
}

// Category is the finer classification of a historical event.
type Category string

const (
	CategoryConflict     Category = "Conflict"
	CategoryCoalition    Category = "Coalition"
	CategoryHolyWar      Category = "HolyWar"
	CategoryBetrayal     Category = "Betrayal"
	CategoryCollapse     Category = "Collapse"
	CategoryGolden       Category = "Golden"
	CategoryDisaster     Category = "Disaster"
	CategoryRevolution   Category = "Revolution"
	CategoryCascade      Category = "Cascade"
	CategorySpiritual    Category = "Spiritual"
	CategoryDiscovery    Category = "Discovery"
	CategoryEscalation   Category = "Escalation"
	CategoryHero         Category = "Hero"
	CategoryFounding     Category = "Founding"
	CategoryTrade        Category = "Trade"
	CategoryTreaty       Category = "Treaty"
	CategoryReform       Category = "Reform"
	CategoryMigration    Category = "Migration"
	CategorySuccession   Category = "Succession"
	CategoryConstruction Category = "Construction"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryConflict, CategoryCoalition, CategoryHolyWar, CategoryBetrayal,
	CategoryCollapse, CategoryGolden, CategoryDisaster, CategoryRevolution,
	CategoryCascade, CategorySpiritual, CategoryDiscovery, CategoryEscalation,
	CategoryHero, CategoryFounding, CategoryTrade, CategoryTreaty,
	CategoryReform, CategoryMigration, CategorySuccession, CategoryConstruction,
}

// Valid reports whether c is one of the closed set of categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// ParseEventType matches s against the event types, ignoring case.
func ParseEventType(s string) (EventType, bool) {
	for _, t := range EventTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return EventType(s), false
}

// ParseCategory matches s against the categories, ignoring case.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return Category(s), false
}

// Vec3 is a point in world space.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Event is a single discrete occurrence in a civilization's history.
// Events are treated as immutable once ingested.
type Event struct {
	ID             string    `json:"id" yaml:"id"`
	Year           int       `json:"year" yaml:"year"`
	Title          string    `json:"title" yaml:"title"`
	Description    string    `json:"description" yaml:"description"`
	Type           EventType `json:"type" yaml:"type"`
	Category       Category  `json:"category" yaml:"category"`
	Significance   float64   `json:"significance" yaml:"significance"`
	Location       Vec3      `json:"location" yaml:"location"`
	CivilizationID string    `json:"civilization_id" yaml:"civilization_id"`

	// Participants are kept as ordered opaque references rather than prose.
	RelatedFigures       []string `json:"related_figures,omitempty" yaml:"related_figures,omitempty"`
	RelatedCivilizations []string `json:"related_civilizations,omitempty" yaml:"related_civilizations,omitempty"`
}

// Civilization is the descriptive metadata supplied alongside a civilization's events.
type Civilization struct {
	ID          string `json:"id" yaml:"id" db:"id"`
	Name        string `json:"name" yaml:"name" db:"name"`
	FoundedYear int    `json:"founded_year" yaml:"founded_year" db:"founded_year"`
	Description string `json:"description" yaml:"description" db:"description"`
}

// Record is a civilization together with its events, the unit of import.
type Record struct {
	Civilization Civilization `json:"civilization" yaml:"civilization"`
	Events       []Event      `json:"events" yaml:"events"`
}
