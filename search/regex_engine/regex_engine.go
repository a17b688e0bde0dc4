package regex_engine

import (
	"io"
	"log"
	"sort"
	"time"

	"github.com/noelzubin/notefind/search"
	"github.com/samber/lo"
)

// DefaultMatchTimeout bounds the time a single pattern may spend on one field.
const DefaultMatchTimeout = 250 * time.Millisecond

// Config holds the settings an engine is created with. It is never changed
// after New, so one engine can serve concurrent callers.
type Config struct {
	// MatchTimeout stops a runaway pattern. Zero uses DefaultMatchTimeout,
	// a negative value disables the limit.
	MatchTimeout time.Duration
	// Logger receives diagnostics such as invalid patterns. Nil discards them.
	Logger *log.Logger
}

// regexEngine is the implementation of the search.Engine interface on top
// of regexp2. It keeps no state between calls.
type regexEngine struct {
	timeout time.Duration
	logger  *log.Logger
}

var _ search.Engine = (*regexEngine)(nil)

// NewRegexEngine returns a new search.Engine
func NewRegexEngine(config Config) *regexEngine {
	timeout := config.MatchTimeout
	if timeout == 0 {
		timeout = DefaultMatchTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &regexEngine{timeout: timeout, logger: logger}
}

var defaultEngine = NewRegexEngine(Config{})

// Search runs opts against notes with a default engine.
func Search(notes []search.Note, categories []search.Category, opts search.Options) []search.Result {
	return defaultEngine.Search(notes, categories, opts)
}

// ExtractContext cuts the text around span with a default engine.
func ExtractContext(text string, span search.Span, contextSize int) search.Context {
	return defaultEngine.ExtractContext(text, span, contextSize)
}

// Search filters notes by the structural filters in opts, matches the query
// against content and category name and returns the hits ordered by score.
//
// A blank query with no filters returns nothing. A blank query with filters
// returns every note passing them, each with a score of 1 and no matches.
// Notes and categories are only read.
func (e *regexEngine) Search(notes []search.Note, categories []search.Category, opts search.Options) []search.Result {
	results := []search.Result{}
	if opts.Inactive() {
		return results
	}

	candidates := filterNotes(notes, opts)

	if !opts.HasQuery() {
		return lo.Map(candidates, func(note search.Note, _ int) search.Result {
			return search.Result{Note: note, Score: 1, Matches: []search.MatchSpan{}}
		})
	}

	m := e.compile(opts)
	if m == nil {
		return results
	}
	category := categoryLookup(categories)

	for _, note := range candidates {
		if result, ok := e.matchNote(m, note, category, opts); ok {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// Weights of a single match per field.
const (
	contentWeight  = 2
	categoryWeight = 1
)

func (e *regexEngine) matchNote(m *matcher, note search.Note, category func(string) (search.Category, bool), opts search.Options) (search.Result, bool) {
	var matches []search.MatchSpan
	score := 0

	if positions := m.scan(note.Content); len(positions) > 0 {
		matches = append(matches, search.MatchSpan{
			Field:     search.FieldContent,
			Text:      note.Content,
			Positions: positions,
		})
		score += contentWeight * len(positions)
	}

	if opts.SearchInCategories && note.CategoryID != "" {
		if c, ok := category(note.CategoryID); ok {
			if positions := m.scan(c.Name); len(positions) > 0 {
				matches = append(matches, search.MatchSpan{
					Field:     search.FieldCategory,
					Text:      c.Name,
					Positions: positions,
				})
				score += categoryWeight * len(positions)
			}
		}
	}

	if len(matches) == 0 {
		return search.Result{}, false
	}
	return search.Result{Note: note, Score: score, Matches: matches}, true
}

// categoryLookup resolves category ids. When ids repeat the first category wins.
func categoryLookup(categories []search.Category) func(string) (search.Category, bool) {
	byID := lo.KeyBy(
		lo.UniqBy(categories, func(c search.Category) string { return c.ID }),
		func(c search.Category) string { return c.ID },
	)
	return func(id string) (search.Category, bool) {
		c, ok := byID[id]
		return c, ok
	}
}
