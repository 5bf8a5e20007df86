package chronicle

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/chronicler/internal/causal"
	"github.com/talgya/chronicler/internal/history"
	"github.com/talgya/chronicler/internal/narrative"
)

func valdoriaEvents() []history.Event {
	return []history.Event{
		{ID: "v1", Year: 10, Title: "The First Rite", Description: "The first rite was held at the spring", Type: history.TypeReligious, Category: history.CategorySpiritual, Significance: 1.0},
		{ID: "v2", Year: 14, Title: "Border War", Description: "Raiders were driven from the border", Type: history.TypeMilitary, Category: history.CategoryConflict, Significance: 2.5},
	}
}

func longHistory() []history.Event {
	types := history.EventTypes
	var events []history.Event
	for i := 0; i < 60; i++ {
		events = append(events, history.Event{
			ID:           fmt.Sprintf("h%02d", i),
			Year:         i * 7,
			Title:        fmt.Sprintf("Event %d", i),
			Description:  fmt.Sprintf("Something notable happened in year %d", i*7),
			Type:         types[i%len(types)],
			Category:     history.Categories[(i*3)%len(history.Categories)],
			Significance: float64((i*13)%50) / 10,
		})
	}
	return events
}

func TestCompileValdoriaScenario(t *testing.T) {
	cc, err := NewCompiler().Compile("civ-1", "Valdoria", valdoriaEvents())
	require.NoError(t, err)

	require.Len(t, cc.Chapters, 1)
	ch := cc.Chapters[0]
	assert.Equal(t, 10, ch.StartYear)
	assert.Equal(t, 14, ch.EndYear)
	assert.False(t, ch.Mythological)

	require.Len(t, cc.Links[0], 1)
	assert.Equal(t, causal.MilitaryEscalation, cc.Links[0][0].Type, "Religious→Military escalates")
	assert.Equal(t, 4, cc.Links[0][0].YearsApart)

	assert.Contains(t, cc.Text, "CHAPTER 1")
	assert.GreaterOrEqual(t, strings.Count(cc.Text, "Valdoria"), 2)
	assert.True(t, strings.HasPrefix(cc.Text, "THE CHRONICLES OF VALDORIA\n"))
	assert.Contains(t, cc.Text, Invocation)
	assert.Contains(t, cc.Text, cc.Links[0][0].Text)

	assert.Equal(t, 2, cc.TotalEntries)
	assert.InDelta(t, 1.75, cc.DramaticIntensity, 1e-9)
	assert.InDelta(t, 2.5, cc.HistoricalSignificance, 1e-9)
}

func TestCompileEmptyIsMythological(t *testing.T) {
	cc, err := NewCompiler().Compile("civ-2", "Thalor", nil)
	require.NoError(t, err)

	require.Len(t, cc.Chapters, 1)
	assert.True(t, cc.Chapters[0].Mythological)
	assert.NotEmpty(t, cc.Text)
	assert.Contains(t, cc.Text, narrative.Mythology("Thalor"))
	assert.Contains(t, cc.Text, "CHAPTER 1: The Age of Legends")
	assert.Equal(t, 0, cc.TotalEntries)
	assert.Zero(t, cc.DramaticIntensity)
	assert.Zero(t, cc.HistoricalSignificance)
}

func TestCompileAllFilteredIsMythological(t *testing.T) {
	minor := []history.Event{
		{ID: "m1", Year: 3, Type: history.TypeEconomic, Category: history.CategoryTrade, Significance: 0.2},
	}
	cc, err := NewCompiler().Compile("civ-3", "Thalor", minor)
	require.NoError(t, err)
	require.Len(t, cc.Chapters, 1)
	assert.True(t, cc.Chapters[0].Mythological)
}

func TestCompileDeterministic(t *testing.T) {
	events := longHistory()
	a, err := NewCompiler().Compile("civ-4", "Ostmark", events)
	require.NoError(t, err)

	shuffled := make([]history.Event, len(events))
	for i, e := range events {
		shuffled[len(events)-1-i] = e
	}
	b, err := NewCompiler().Compile("civ-4", "Ostmark", shuffled)
	require.NoError(t, err)

	assert.Equal(t, a.Text, b.Text)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
}

func TestCompileDoesNotMutateInput(t *testing.T) {
	events := longHistory()
	before := make([]history.Event, len(events))
	copy(before, events)

	_, err := NewCompiler().Compile("civ-5", "Ostmark", events)
	require.NoError(t, err)
	assert.Equal(t, before, events)
}

func TestCompileStructure(t *testing.T) {
	cc, err := NewCompiler().Compile("civ-6", "Ostmark", longHistory())
	require.NoError(t, err)
	require.Greater(t, len(cc.Chapters), 1)

	peak := 0.0
	filtered := 0
	for i, ch := range cc.Chapters {
		assert.Contains(t, cc.Text, fmt.Sprintf("CHAPTER %d: %s", i+1, ch.Title))
		if i > 0 {
			assert.LessOrEqual(t, cc.Chapters[i-1].EndYear, ch.StartYear)
		}
		for _, e := range ch.Events {
			filtered++
			if e.Significance > peak {
				peak = e.Significance
			}
		}
		for _, l := range cc.Links[i] {
			assert.LessOrEqual(t, l.YearsApart, causal.DefaultMaxYearsApart)
		}
	}
	assert.Equal(t, filtered, cc.TotalEntries)
	assert.Equal(t, peak, cc.HistoricalSignificance)
	assert.Equal(t, len(cc.Chapters)-1, strings.Count(cc.Text, "Thus ended this chapter"))
	assert.NotContains(t, cc.Text, "<")
}

func TestCompileMalformed(t *testing.T) {
	events := valdoriaEvents()
	events[1].Significance = -2

	_, err := NewCompiler().Compile("civ-7", "Valdoria", events)
	require.Error(t, err)

	var malformed *history.MalformedEventError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "v2", malformed.EventID)
	assert.Equal(t, "significance", malformed.Field)

	_, err = NewCompiler().Compile("civ-7", "", nil)
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "civName", malformed.Field)
}

func TestWithMaxYearsApart(t *testing.T) {
	cc, err := NewCompiler(WithMaxYearsApart(3)).Compile("civ-1", "Valdoria", valdoriaEvents())
	require.NoError(t, err)
	assert.Empty(t, cc.Links[0])
	assert.Contains(t, cc.Text, narrative.RecordPhrase)
}

func TestSubtitle(t *testing.T) {
	cc, err := NewCompiler().Compile("civ-1", "Valdoria", valdoriaEvents())
	require.NoError(t, err)
	assert.Equal(t, "2 Entries Across 5 Years of Valdoria History", cc.Subtitle)
}

func TestLinksPlacedByPositionWithoutIDs(t *testing.T) {
	events := []history.Event{
		{Year: 10, Title: "The Festival", Description: "Songs were sung in the square", Type: history.TypeCultural, Category: history.CategoryGolden, Significance: 1.6},
		{Year: 12, Title: "The Granaries", Description: "Granaries were filled to bursting", Type: history.TypeEconomic, Category: history.CategoryDiscovery, Significance: 1.0},
		{Year: 14, Title: "The March", Description: "The host marched east", Type: history.TypeMilitary, Category: history.CategoryConflict, Significance: 2.5},
	}
	cc, err := NewCompiler().Compile("civ-8", "Valdoria", events)
	require.NoError(t, err)
	require.Len(t, cc.Chapters, 1)
	require.Len(t, cc.Links[0], 1)

	link := cc.Links[0][0]
	assert.Equal(t, 1, link.Position)
	assert.Equal(t, causal.ResourceEffect, link.Type)

	granaries := strings.Index(cc.Text, narrative.RecordPhrase+"granaries were filled to bursting.")
	linkAt := strings.Index(cc.Text, link.Text)
	march := strings.Index(cc.Text, "The host marched east.")
	require.NotEqual(t, -1, granaries, "event before the link keeps the record phrase")
	require.NotEqual(t, -1, march, "event after the link drops the record phrase")
	assert.Less(t, granaries, linkAt)
	assert.Less(t, linkAt, march)
	assert.Contains(t, cc.Text, narrative.RecordPhrase+"songs were sung in the square.")
	assert.NotContains(t, cc.Text, narrative.RecordPhrase+"the host marched east.")
}

func TestSameYearEventsWithoutIDsIgnoreInputOrder(t *testing.T) {
	flood := history.Event{Year: 30, Title: "The Flood", Description: "The river rose over the fields", Type: history.TypeSocial, Category: history.CategoryDisaster, Significance: 2.2}
	famine := history.Event{Year: 30, Title: "The Famine", Description: "Hunger walked the villages", Type: history.TypeEconomic, Category: history.CategoryDisaster, Significance: 2.8}

	a, err := NewCompiler().Compile("civ-9", "Valdoria", []history.Event{flood, famine})
	require.NoError(t, err)
	b, err := NewCompiler().Compile("civ-9", "Valdoria", []history.Event{famine, flood})
	require.NoError(t, err)

	assert.Equal(t, a.Text, b.Text)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.Equal(t, a.Links, b.Links)
}

func TestFingerprintIncludesName(t *testing.T) {
	events := valdoriaEvents()
	assert.Equal(t, Fingerprint("Valdoria", events), Fingerprint("Valdoria", events))
	assert.NotEqual(t, Fingerprint("Valdoria", events), Fingerprint("Thalor", events))
	assert.Len(t, Fingerprint("Valdoria", nil), 16)
}
