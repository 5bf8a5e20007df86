package causal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/chronicler/internal/history"
)

func ev(id string, year int, typ history.EventType, sig float64) history.Event {
	return history.Event{ID: id, Year: year, Type: typ, Category: history.CategoryConflict, Significance: sig}
}

func TestClassify(t *testing.T) {
	in := NewInferencer(0)
	tests := []struct {
		name     string
		from, to history.Event
		want     LinkType
	}{
		{"military escalation", ev("a", 1, history.TypeMilitary, 1), ev("b", 2, history.TypeMilitary, 1), MilitaryEscalation},
		{"economic to military", ev("a", 1, history.TypeEconomic, 1), ev("b", 2, history.TypeMilitary, 1), ResourceEffect},
		{"economic to diplomatic", ev("a", 1, history.TypeEconomic, 1), ev("b", 2, history.TypeDiplomatic, 1), ResourceEffect},
		{"diplomatic to military", ev("a", 1, history.TypeDiplomatic, 1), ev("b", 2, history.TypeMilitary, 1), PoliticalRipple},
		{"cultural to social", ev("a", 1, history.TypeCultural, 1), ev("b", 2, history.TypeSocial, 1), CulturalInfluence},
		{"religious to military", ev("a", 1, history.TypeReligious, 1), ev("b", 2, history.TypeMilitary, 1), MilitaryEscalation},
		{"fallback direct", ev("a", 1, history.TypeSocial, 3.5), ev("b", 6, history.TypeEconomic, 1), DirectConsequence},
		{"fallback too slow", ev("a", 1, history.TypeSocial, 3.5), ev("b", 7, history.TypeEconomic, 1), None},
		{"fallback too minor", ev("a", 1, history.TypeSocial, 3.0), ev("b", 2, history.TypeEconomic, 1), None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, in.Classify(tt.from, tt.to))
		})
	}
}

func TestInferWindow(t *testing.T) {
	in := NewInferencer(DefaultMaxYearsApart)
	events := []history.Event{
		ev("a", 0, history.TypeMilitary, 1),
		ev("b", 20, history.TypeMilitary, 1),
		ev("c", 41, history.TypeMilitary, 1),
		ev("d", 42, history.TypeEconomic, 1),
	}
	links := in.Infer(events, "Valdoria")
	require.Len(t, links, 1)
	assert.Equal(t, 0, links[0].Position)
	assert.Equal(t, "a", links[0].FromEventID)
	assert.Equal(t, "b", links[0].ToEventID)
	assert.Equal(t, 20, links[0].YearsApart)
	assert.Contains(t, links[0].Text, "Valdoria")
}

func TestInferNeverExceedsCeiling(t *testing.T) {
	in := NewInferencer(20)
	var events []history.Event
	for i := 0; i < 30; i++ {
		events = append(events, ev(fmt.Sprint(i), i*i, history.TypeMilitary, 4))
	}
	byID := make(map[string]history.Event)
	for _, e := range events {
		byID[e.ID] = e
	}
	for _, l := range in.Infer(events, "Thalor") {
		assert.LessOrEqual(t, byID[l.ToEventID].Year-byID[l.FromEventID].Year, 20)
	}
}

func TestInferPositionWithoutIDs(t *testing.T) {
	events := []history.Event{
		ev("", 10, history.TypeCultural, 1.6),
		ev("", 12, history.TypeEconomic, 1.0),
		ev("", 14, history.TypeMilitary, 2.5),
	}
	links := NewInferencer(0).Infer(events, "Valdoria")
	require.Len(t, links, 1)
	assert.Equal(t, 1, links[0].Position)
	assert.Equal(t, ResourceEffect, links[0].Type)
}

func TestCustomCeiling(t *testing.T) {
	events := []history.Event{ev("a", 0, history.TypeMilitary, 1), ev("b", 8, history.TypeMilitary, 1)}
	assert.Empty(t, NewInferencer(5).Infer(events, "Valdoria"))
	assert.Len(t, NewInferencer(10).Infer(events, "Valdoria"), 1)
}

func TestLinkText(t *testing.T) {
	assert.Empty(t, LinkText(None, "Valdoria", 1))
	for lt := DirectConsequence; lt <= MilitaryEscalation; lt++ {
		for s := uint64(0); s < 3; s++ {
			text := LinkText(lt, "Valdoria", s)
			assert.Contains(t, text, "Valdoria", lt.String())
		}
	}
	assert.Equal(t, "PoliticalRipple", PoliticalRipple.String())
}

func TestLinkTypeText(t *testing.T) {
	for _, lt := range []LinkType{None, DirectConsequence, ResourceEffect, PoliticalRipple, CulturalInfluence, MilitaryEscalation} {
		b, err := lt.MarshalText()
		require.NoError(t, err)
		var got LinkType
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, lt, got)
	}

	var bad LinkType
	assert.Error(t, bad.UnmarshalText([]byte("Prophecy")))
}
