package narrative

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/chronicler/internal/history"
)

func battle() history.Event {
	return history.Event{
		ID:           "e1",
		Year:         14,
		Title:        "Siege of Karn",
		Description:  "The Siege of Karn broke the northern clans",
		Type:         history.TypeMilitary,
		Category:     history.CategoryConflict,
		Significance: 2.5,
	}
}

func TestRenderDeterministic(t *testing.T) {
	var r Renderer
	a := r.Render(battle(), false, "Valdoria")
	b := r.Render(battle(), false, "Valdoria")
	assert.Equal(t, a, b)
}

func TestRenderOpening(t *testing.T) {
	text := Renderer{}.Render(battle(), true, "Valdoria")
	assert.True(t, strings.HasPrefix(text, "In the year 14, "), text)
	assert.Contains(t, text, "Valdoria")
	assert.Contains(t, text, RecordPhrase+"the Siege of Karn broke the northern clans.")
}

func TestRenderTransition(t *testing.T) {
	text := Renderer{}.Render(battle(), false, "Valdoria")
	found := false
	for _, tr := range transitions {
		if strings.HasPrefix(text, tr) {
			found = true
		}
	}
	assert.True(t, found, text)
}

func TestRenderConsequenceThreshold(t *testing.T) {
	e := battle()
	withConsequence := Renderer{}.Render(e, true, "Valdoria")

	e.Significance = 2.0
	without := Renderer{}.Render(e, true, "Valdoria")

	hasAny := func(text string) bool {
		for _, c := range consequences[history.TypeMilitary] {
			if strings.Contains(text, c) {
				return true
			}
		}
		return false
	}
	assert.True(t, hasAny(withConsequence))
	assert.False(t, hasAny(without))
}

func TestRenderAfterLinkDropsRecordPhrase(t *testing.T) {
	text := Renderer{}.RenderContext(battle(), Context{CivName: "Valdoria", AfterLink: true})
	assert.NotContains(t, text, RecordPhrase)
	assert.Contains(t, text, "The Siege of Karn broke the northern clans.")
}

func TestRenderEmptyDescription(t *testing.T) {
	e := battle()
	e.Description = "   "
	text := Renderer{}.Render(e, true, "Valdoria")
	assert.NotContains(t, text, RecordPhrase)
}

func TestContextFallbacks(t *testing.T) {
	coalition := history.Event{Type: history.TypeMilitary, Category: history.CategoryCoalition}
	march := history.Event{Type: history.TypeMilitary, Category: history.CategoryMigration}
	collapse := history.Event{Type: history.TypeSocial, Category: history.CategoryCollapse}
	unknown := history.Event{Type: "Arcane", Category: "Ritual"}

	assert.Contains(t, contextFor(coalition)("Valdoria", 0), "Valdoria")
	assert.Contains(t, contextFor(collapse)("Valdoria", 1), "Valdoria")
	// A military event outside the covered categories uses the default family.
	assert.Contains(t, contextFor(march)("Valdoria", 0), "Valdoria")
	assert.NotPanics(t, func() { _ = contextFor(unknown)("Valdoria", 3) })

	for _, typ := range history.EventTypes {
		for _, cat := range history.Categories {
			e := history.Event{Type: typ, Category: cat, Significance: 5}
			text := Renderer{}.Render(e, false, "Thalor")
			assert.Contains(t, text, "Thalor")
		}
	}
}

func TestMythology(t *testing.T) {
	text := Mythology("Thalor")
	assert.Equal(t, text, Mythology("Thalor"))
	assert.Contains(t, Myths("Thalor"), text)
	assert.NotContains(t, text, "{civ}")

	require.Len(t, Myths("Thalor"), MythCount)
	for _, m := range Myths("Thalor") {
		assert.Contains(t, m, "Thalor")
	}
}
