// Package narrative turns historical events into chronicle prose using fixed
// template families and seeded selection among them.
package narrative

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/talgya/chronicler/internal/history"
	"github.com/talgya/chronicler/internal/seed"
)

// RecordPhrase introduces an event's own description.
const RecordPhrase = "The chronicles record that "

var transitions = []string{
	"Some years later, ",
	"In the seasons that followed, ",
	"As the wheel of time turned, ",
	"Not long after, ",
	"When the dust of those days had settled, ",
	"In the fullness of time, ",
}

// Context carries the surroundings an event is rendered in.
type Context struct {
	Opening   bool   // First event of its chapter
	CivName   string // Civilization being chronicled
	AfterLink bool   // A causal link sentence directly precedes this event
}

// Renderer renders single events. The zero value is ready to use.
type Renderer struct{}

// Render returns the prose for one event. The same inputs always yield the same text.
func (r Renderer) Render(e history.Event, opening bool, civName string) string {
	return r.RenderContext(e, Context{Opening: opening, CivName: civName})
}

// RenderContext is Render with the surrounding-link information the compiler
// uses to drop the record phrase after a causal link. Only the first rune of
// the description is lower-cased after the record phrase, so names inside it
// keep their capitals.
func (r Renderer) RenderContext(e history.Event, ctx Context) string {
	var b strings.Builder

	b.WriteString(openingClause(e, ctx.Opening))
	b.WriteString(contextFor(e)(ctx.CivName, seed.Derive(e.Year, e.Significance, "context:"+string(e.Category))))

	if desc := sentence(e.Description); desc != "" {
		b.WriteString(" ")
		if ctx.AfterLink {
			b.WriteString(upperFirst(desc))
		} else {
			b.WriteString(RecordPhrase)
			b.WriteString(lowerFirst(desc))
		}
	}

	if e.Significance > 2.0 {
		b.WriteString(" ")
		b.WriteString(seed.Choose(seed.Derive(e.Year, e.Significance, "consequence"), consequencePool(e.Type)))
	}

	return b.String()
}

func openingClause(e history.Event, opening bool) string {
	if opening {
		return fmt.Sprintf("In the year %d, ", e.Year)
	}
	return seed.Choose(seed.Derive(e.Year, e.Significance, "transition:"+e.ID+e.Title), transitions)
}

// sentence trims s and makes sure it ends with terminal punctuation.
func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if last, _ := utf8.DecodeLastRuneInString(s); !strings.ContainsRune(".!?", last) {
		s += "."
	}
	return s
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
