package chronicle

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/chronicler/internal/lore"
	"github.com/talgya/chronicler/internal/seed"
)

const divider = "----------------------------------------"

// Invocation opens every chronicle.
const Invocation = "Hear now the chronicles of ages past, set down so that the deeds of the mighty and the humble alike shall not be forgotten. " +
	"Let those who read these words remember that all glory fades, but the record endures."

var chapterClosings = []string{
	"Thus ended this chapter of the history of %s, and a new age began to stir.",
	"Thus ended this chapter of %s's long story, though its echoes would linger.",
	"Thus ended this chapter, and the people of %s turned their faces toward what was to come.",
}

var finalClosings = []string{
	"And so the chronicles of %s reach the edge of the known, where history waits to be written anew.",
	"Here the record of %s falls silent for now, yet the story of its people is far from ended.",
	"So stands the tale of %s until this day, its glories and its sorrows bound together in memory.",
}

// Title returns the chronicle heading for a civilization.
func Title(civName string) string {
	return "THE CHRONICLES OF " + strings.ToUpper(civName)
}

func subtitle(civName string, chapters []lore.Chapter, entries int) string {
	if entries == 0 {
		return fmt.Sprintf("Being the Legends of %s Before the Reckoning of Years", civName)
	}
	first, last := chapters[0].StartYear, chapters[len(chapters)-1].EndYear
	span := int64(last-first) + 1

	entryWord := "Entries"
	if entries == 1 {
		entryWord = "Entry"
	}
	yearWord := "Years"
	if span == 1 {
		yearWord = "Year"
	}
	return fmt.Sprintf("%s %s Across %s %s of %s History",
		humanize.Comma(int64(entries)), entryWord, humanize.Comma(span), yearWord, civName)
}

// assemble writes the full plain-text document.
func assemble(cc *CompiledChronicle, bodies []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", cc.Title)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", len([]rune(cc.Title))))
	fmt.Fprintf(&b, "%s\n\n", cc.Subtitle)
	fmt.Fprintf(&b, "%s\n\n", Invocation)

	last := len(cc.Chapters) - 1
	for i, ch := range cc.Chapters {
		fmt.Fprintf(&b, "%s\n", divider)
		fmt.Fprintf(&b, "CHAPTER %d: %s\n", ch.Number, ch.Title)
		fmt.Fprintf(&b, "%s\n\n", divider)
		fmt.Fprintf(&b, "%s\n\n", bodies[i])

		s := seed.Derive(ch.StartYear+ch.EndYear, float64(ch.Number), "closing")
		if i < last {
			fmt.Fprintf(&b, "%s\n\n", fmt.Sprintf(seed.Choose(s, chapterClosings), cc.CivilizationName))
		} else {
			fmt.Fprintf(&b, "%s\n", divider)
			fmt.Fprintf(&b, "%s\n", fmt.Sprintf(seed.Choose(s, finalClosings), cc.CivilizationName))
		}
	}

	return b.String()
}

func joinParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, "\n\n")
}
