package lore

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/chronicler/internal/history"
)

func ev(id string, year int, typ history.EventType, cat history.Category, sig float64) history.Event {
	return history.Event{ID: id, Year: year, Type: typ, Category: cat, Significance: sig}
}

func TestFilterRules(t *testing.T) {
	tests := []struct {
		name  string
		event history.Event
		rule  Rule
	}{
		{"always epic hero at zero", ev("1", 1, history.TypeSocial, history.CategoryHero, 0), RuleAlwaysEpic},
		{"significant trade", ev("2", 1, history.TypeEconomic, history.CategoryTrade, 3.0), RuleSignificant},
		{"religious minor", ev("3", 1, history.TypeReligious, history.CategoryReform, 0.1), RuleReligious},
		{"battle", ev("4", 1, history.TypeMilitary, history.CategoryConflict, 2.0), RuleBattle},
		{"cultural", ev("5", 1, history.TypeCultural, history.CategoryConstruction, 1.5), RuleCultural},
		{"political", ev("6", 1, history.TypePolitical, history.CategorySuccession, 2.0), RuleCivicMilestone},
		{"technological", ev("7", 1, history.TypeTechnological, history.CategoryConstruction, 2.1), RuleCivicMilestone},
		{"minor skirmish", ev("8", 1, history.TypeMilitary, history.CategoryConflict, 1.9), RuleNone},
		{"minor military coalition-less march", ev("9", 1, history.TypeMilitary, history.CategoryMigration, 2.5), RuleNone},
		{"minor economic", ev("10", 1, history.TypeEconomic, history.CategoryTrade, 2.9), RuleNone},
		{"minor cultural", ev("11", 1, history.TypeCultural, history.CategoryReform, 1.4), RuleNone},
		{"minor social", ev("12", 1, history.TypeSocial, history.CategoryMigration, 1.99), RuleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := Reason(tt.event)
			assert.Equal(t, tt.rule, rule)
			assert.Equal(t, tt.rule != RuleNone, ok)
		})
	}
}

func TestFilterKeepsEveryAlwaysEpicCategory(t *testing.T) {
	var events []history.Event
	for i, c := range history.Categories {
		if !IsAlwaysEpic(c) {
			continue
		}
		for _, typ := range history.EventTypes {
			events = append(events, ev(fmt.Sprintf("%d-%s", i, typ), i, typ, c, 0))
		}
	}
	require.NotEmpty(t, events)
	assert.Len(t, Filter(events), len(events))
}

func TestFilterPreservesOrder(t *testing.T) {
	events := []history.Event{
		ev("late", 50, history.TypeReligious, history.CategorySpiritual, 1),
		ev("drop", 20, history.TypeEconomic, history.CategoryTrade, 0.1),
		ev("early", 5, history.TypeMilitary, history.CategoryHero, 1),
	}
	kept := Filter(events)
	require.Len(t, kept, 2)
	assert.Equal(t, "late", kept[0].ID)
	assert.Equal(t, "early", kept[1].ID)
	assert.Equal(t, "drop", events[1].ID)
}

func TestSegmentEmptyIsMythological(t *testing.T) {
	chapters := DefaultSegmenter().Segment(nil)
	require.Len(t, chapters, 1)
	assert.True(t, chapters[0].Mythological)
	assert.Equal(t, LegendsTitle, chapters[0].Title)
	assert.Empty(t, chapters[0].Events)
}

func TestSegmentSplits(t *testing.T) {
	seg := DefaultSegmenter()

	t.Run("span exceeds 25 years", func(t *testing.T) {
		chapters := seg.Segment([]history.Event{
			ev("a", 100, history.TypeReligious, history.CategorySpiritual, 1),
			ev("b", 125, history.TypeReligious, history.CategorySpiritual, 1),
			ev("c", 126, history.TypeReligious, history.CategorySpiritual, 1),
		})
		require.Len(t, chapters, 2)
		assert.Equal(t, 100, chapters[0].StartYear)
		assert.Equal(t, 125, chapters[0].EndYear)
		assert.Equal(t, 126, chapters[1].StartYear)
	})

	t.Run("six events per chapter", func(t *testing.T) {
		var events []history.Event
		for i := 0; i < 13; i++ {
			events = append(events, ev(fmt.Sprintf("e%02d", i), i, history.TypeReligious, history.CategorySpiritual, 1))
		}
		chapters := seg.Segment(events)
		require.Len(t, chapters, 3)
		assert.Len(t, chapters[0].Events, 6)
		assert.Len(t, chapters[1].Events, 6)
		assert.Len(t, chapters[2].Events, 1)
	})

	t.Run("watershed event opens a chapter", func(t *testing.T) {
		chapters := seg.Segment([]history.Event{
			ev("a", 1, history.TypeReligious, history.CategorySpiritual, 1),
			ev("b", 2, history.TypeMilitary, history.CategoryHero, 4.0),
			ev("c", 3, history.TypeReligious, history.CategorySpiritual, 1),
		})
		require.Len(t, chapters, 2)
		assert.Len(t, chapters[0].Events, 1)
		assert.Equal(t, "b", chapters[1].Events[0].ID)
		assert.Equal(t, 2, chapters[1].StartYear)
	})

	t.Run("watershed first event stays", func(t *testing.T) {
		chapters := seg.Segment([]history.Event{
			ev("a", 1, history.TypeMilitary, history.CategoryHero, 5.0),
			ev("b", 2, history.TypeReligious, history.CategorySpiritual, 1),
		})
		require.Len(t, chapters, 1)
		assert.Len(t, chapters[0].Events, 2)
	})
}

func TestSegmentOrdering(t *testing.T) {
	var events []history.Event
	for i := 0; i < 40; i++ {
		year := (i * 37) % 211
		sig := float64(i%6) * 0.9
		events = append(events, ev(fmt.Sprintf("e%02d", i), year, history.TypeReligious, history.CategorySpiritual, sig))
	}
	chapters := DefaultSegmenter().Segment(events)

	total := 0
	for i, c := range chapters {
		assert.Equal(t, i+1, c.Number)
		total += len(c.Events)
		for j := 1; j < len(c.Events); j++ {
			assert.LessOrEqual(t, c.Events[j-1].Year, c.Events[j].Year)
		}
		if i > 0 {
			assert.LessOrEqual(t, chapters[i-1].EndYear, c.StartYear)
		}
	}
	assert.Equal(t, len(events), total, "each event belongs to exactly one chapter")
}

func TestChapterTitle(t *testing.T) {
	war := []history.Event{
		ev("a", 10, history.TypeMilitary, history.CategoryConflict, 2.5),
		ev("b", 14, history.TypeMilitary, history.CategoryConflict, 2.5),
		ev("c", 14, history.TypeReligious, history.CategorySpiritual, 1),
	}
	title := ChapterTitle(war, 10, 14)
	assert.True(t, strings.HasSuffix(title, "(Years 10–14)"), title)

	found := false
	for _, p := range titleBuckets[titleKey{history.TypeMilitary, history.CategoryConflict}] {
		if strings.HasPrefix(title, p) {
			found = true
		}
	}
	assert.True(t, found, "military conflict chapters use the conquest phrasings: %s", title)
	assert.Equal(t, title, ChapterTitle(war, 10, 14))

	single := ChapterTitle([]history.Event{ev("x", 7, history.TypeEconomic, history.CategoryTrade, 3)}, 7, 7)
	assert.True(t, strings.HasSuffix(single, "(Year 7)"), single)
}

func TestMode(t *testing.T) {
	assert.Equal(t, "b", mode([]string{"c", "b", "b", "a"}))
	assert.Equal(t, "a", mode([]string{"c", "a", "b"}))
	assert.Equal(t, "", mode([]string{}))
}
