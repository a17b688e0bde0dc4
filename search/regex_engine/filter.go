package regex_engine

import (
	"time"

	"github.com/noelzubin/notefind/search"
	"github.com/samber/lo"
)

// filterNotes keeps the notes that pass every structural filter in opts,
// preserving their order.
func filterNotes(notes []search.Note, opts search.Options) []search.Note {
	from := opts.DateRange.From
	var to time.Time
	if !opts.DateRange.To.IsZero() {
		to = endOfDay(opts.DateRange.To)
	}

	return lo.Filter(notes, func(note search.Note, _ int) bool {
		if opts.CategoryFilter != "" && note.CategoryID != opts.CategoryFilter {
			return false
		}
		if opts.PriorityFilter != "" && note.Priority != opts.PriorityFilter {
			return false
		}
		if !from.IsZero() && note.Timestamp.Before(from) {
			return false
		}
		if !to.IsZero() && note.Timestamp.After(to) {
			return false
		}
		return true
	})
}

// endOfDay returns the last millisecond of t's calendar day in t's location.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
