package search

import (
	"fmt"
	"strings"
	"time"
)

// Priority of a note.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// ParsePriority returns the Priority named by s. Matching ignores case and
// surrounding spaces.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Priorities {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Note is a single note as handed to the engine by the caller.
type Note struct {
	ID         string    `json:"id" yaml:"id"`
	Content    string    `json:"content" yaml:"content"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	CategoryID string    `json:"categoryId,omitempty" yaml:"categoryId,omitempty"` // empty when uncategorised
	Priority   Priority  `json:"priority" yaml:"priority"`
}

// Category groups notes. Color is display only.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// DateRange bounds note timestamps. A zero bound is unset.
// From is inclusive, To is inclusive through the end of its calendar day.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Options configures a single search call.
type Options struct {
	Query              string    // raw query text, blank means no text search
	CaseSensitive      bool      // match case exactly
	MatchWholeWord     bool      // literal queries only match whole words
	UseRegex           bool      // treat Query as a pattern
	SearchInCategories bool      // also search the note's category name
	CategoryFilter     string    // keep only notes in this category ("" = any)
	PriorityFilter     Priority  // keep only notes with this priority ("" = any)
	DateRange          DateRange // keep only notes inside this range
}

// DefaultOptions returns the options a fresh search starts with.
func DefaultOptions() Options {
	return Options{SearchInCategories: true}
}

// HasQuery reports whether the query holds anything besides whitespace.
func (o Options) HasQuery() bool {
	return strings.TrimSpace(o.Query) != ""
}

// FiltersActive reports whether any structural filter is set.
func (o Options) FiltersActive() bool {
	return o.CategoryFilter != "" ||
		o.PriorityFilter != "" ||
		!o.DateRange.From.IsZero() ||
		!o.DateRange.To.IsZero()
}

// Inactive reports whether there is nothing to search for at all.
func (o Options) Inactive() bool {
	return !o.HasQuery() && !o.FiltersActive()
}

// Field names the part of a note a match was found in.
type Field string

const (
	FieldContent  Field = "content"
	FieldCategory Field = "category"
)

// Span is a half-open [Start, End) range of character offsets.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// MatchSpan holds every match found in one field of a note.
type MatchSpan struct {
	Field     Field  `json:"field"`
	Text      string `json:"text"`      // the full text that was searched
	Positions []Span `json:"positions"` // left to right
}

// Result is one matching note.
type Result struct {
	Note    Note        `json:"note"`
	Score   int         `json:"score"`
	Matches []MatchSpan `json:"matches"` // content before category, empty in filter-only mode
}

// Context is a snippet of text around a single match.
type Context struct {
	Text           string `json:"text"`
	HighlightStart int    `json:"highlightStart"` // character offsets into Text
	HighlightEnd   int    `json:"highlightEnd"`
}

// DefaultContextSize is the number of characters kept on each side of a match.
const DefaultContextSize = 30

// Engine filters, matches and ranks notes.
type Engine interface {
	// Search returns the notes matching opts, best first.
	Search(notes []Note, categories []Category, opts Options) []Result
	// ExtractContext returns the text around span, widened to whole words.
	ExtractContext(text string, span Span, contextSize int) Context
}
