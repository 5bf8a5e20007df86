// Package chronicle compiles a civilization's historical events into a
// titled, chaptered chronicle. Compilation is a pure function of its input:
// no clock, no shared state and no I/O.
package chronicle

import (
	"fmt"

	"github.com/talgya/chronicler/internal/causal"
	"github.com/talgya/chronicler/internal/history"
	"github.com/talgya/chronicler/internal/lore"
	"github.com/talgya/chronicler/internal/narrative"
	"github.com/talgya/chronicler/internal/seed"
)

// CompiledChronicle is the finished document for one civilization. It is
// never modified after Compile returns.
type CompiledChronicle struct {
	CivilizationID         string          `json:"civilization_id" yaml:"civilization_id"`
	CivilizationName       string          `json:"civilization_name" yaml:"civilization_name"`
	Title                  string          `json:"title" yaml:"title"`
	Subtitle               string          `json:"subtitle" yaml:"subtitle"`
	Chapters               []lore.Chapter  `json:"chapters" yaml:"chapters"`
	Links                  [][]causal.Link `json:"links" yaml:"links"` // Per chapter, same order as Chapters
	Text                   string          `json:"text" yaml:"text"`
	TotalEntries           int             `json:"total_entries" yaml:"total_entries"`
	DramaticIntensity      float64         `json:"dramatic_intensity" yaml:"dramatic_intensity"`
	HistoricalSignificance float64         `json:"historical_significance" yaml:"historical_significance"`
	Fingerprint            string          `json:"fingerprint" yaml:"fingerprint"`
}

// Compiler runs the filter, segment, infer and render pipeline.
type Compiler struct {
	Segmenter  lore.Segmenter
	Inferencer causal.Inferencer
	Renderer   narrative.Renderer
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithMaxYearsApart sets the causal link ceiling.
func WithMaxYearsApart(years int) Option {
	return func(c *Compiler) {
		c.Inferencer = causal.NewInferencer(years)
	}
}

// WithSegmenter replaces the chapter limits.
func WithSegmenter(s lore.Segmenter) Option {
	return func(c *Compiler) {
		c.Segmenter = s
	}
}

// NewCompiler returns a Compiler with the standard limits.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		Segmenter:  lore.DefaultSegmenter(),
		Inferencer: causal.NewInferencer(causal.DefaultMaxYearsApart),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile builds the chronicle for one civilization. It fails only on
// malformed input; an empty or fully filtered event set yields a single
// mythological chapter.
func (c *Compiler) Compile(civID, civName string, events []history.Event) (*CompiledChronicle, error) {
	if err := history.Validate(civName, events); err != nil {
		return nil, fmt.Errorf("compile %s: %w", civID, err)
	}

	filtered := lore.Filter(events)
	chapters := c.Segmenter.Segment(filtered)

	links := make([][]causal.Link, len(chapters))
	bodies := make([]string, len(chapters))
	for i, ch := range chapters {
		if ch.Mythological {
			bodies[i] = narrative.Mythology(civName)
			continue
		}
		links[i] = c.Inferencer.Infer(ch.Events, civName)
		bodies[i] = c.chapterBody(ch, links[i], civName)
	}

	cc := &CompiledChronicle{
		CivilizationID:   civID,
		CivilizationName: civName,
		Title:            Title(civName),
		Subtitle:         subtitle(civName, chapters, len(filtered)),
		Chapters:         chapters,
		Links:            links,
		TotalEntries:     len(filtered),
		Fingerprint:      Fingerprint(civName, events),
	}
	cc.DramaticIntensity, cc.HistoricalSignificance = aggregate(filtered)
	cc.Text = assemble(cc, bodies)
	return cc, nil
}

// Fingerprint identifies the input a chronicle is compiled from: the
// civilization name and the event set, in any order.
func Fingerprint(civName string, events []history.Event) string {
	return fmt.Sprintf("%016x", seed.Of(civName, history.Fingerprint(events)))
}

// chapterBody renders a chapter's events with link text between them.
func (c *Compiler) chapterBody(ch lore.Chapter, links []causal.Link, civName string) string {
	byFrom := make(map[int]causal.Link, len(links))
	for _, l := range links {
		byFrom[l.Position] = l
	}

	paragraphs := make([]string, 0, len(ch.Events)+len(links))
	for i, e := range ch.Events {
		link, linked := byFrom[i-1]
		if linked {
			paragraphs = append(paragraphs, link.Text)
		}
		paragraphs = append(paragraphs, c.Renderer.RenderContext(e, narrative.Context{
			Opening:   i == 0,
			CivName:   civName,
			AfterLink: linked,
		}))
	}
	return joinParagraphs(paragraphs)
}

// aggregate returns the mean and max significance, both 0 for no events.
func aggregate(events []history.Event) (mean, peak float64) {
	if len(events) == 0 {
		return 0, 0
	}
	var total float64
	for _, e := range events {
		total += e.Significance
		if e.Significance > peak {
			peak = e.Significance
		}
	}
	return total / float64(len(events)), peak
}
