package lore

import (
	"github.com/talgya/chronicler/internal/history"
)

// LegendsTitle names the placeholder chapter used when no event survives filtering.
const LegendsTitle = "The Age of Legends"

// Chapter is a contiguous, time-bounded run of narrated events.
type Chapter struct {
	Number       int             `json:"number"`
	Title        string          `json:"title"`
	StartYear    int             `json:"start_year"`
	EndYear      int             `json:"end_year"`
	Events       []history.Event `json:"events"`
	Mythological bool            `json:"mythological"`
}

// Segmenter splits filtered events into chapters.
type Segmenter struct {
	MaxSpan   int     // Years from chapter start before a new chapter opens
	MaxEvents int     // Events per chapter
	Watershed float64 // Significance that always opens a new chapter
}

// DefaultSegmenter returns the standard chapter limits.
func DefaultSegmenter() Segmenter {
	return Segmenter{
		MaxSpan:   25,
		MaxEvents: 6,
		Watershed: 4.0,
	}
}

// Segment groups events into chapters ordered by start year. An empty input
// yields a single mythological chapter.
func (s Segmenter) Segment(filtered []history.Event) []Chapter {
	if len(filtered) == 0 {
		return []Chapter{{
			Number:       1,
			Title:        LegendsTitle,
			Mythological: true,
		}}
	}

	var chapters []Chapter
	var current []history.Event

	flush := func() {
		if len(current) == 0 {
			return
		}
		start := current[0].Year
		end := current[len(current)-1].Year
		chapters = append(chapters, Chapter{
			Number:    len(chapters) + 1,
			Title:     ChapterTitle(current, start, end),
			StartYear: start,
			EndYear:   end,
			Events:    current,
		})
		current = nil
	}

	for _, e := range history.SortByYear(filtered) {
		if len(current) > 0 && s.splitsBefore(current, e) {
			flush()
		}
		current = append(current, e)
	}
	flush()

	return chapters
}

func (s Segmenter) splitsBefore(current []history.Event, next history.Event) bool {
	if next.Year-current[0].Year > s.MaxSpan {
		return true
	}
	if len(current) >= s.MaxEvents {
		return true
	}
	return next.Significance >= s.Watershed
}
