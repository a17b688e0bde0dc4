package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/charmbracelet/lipgloss"
	"github.com/noelzubin/notefind/notes"
	"github.com/noelzubin/notefind/search"
	"github.com/samber/lo"
)

var (
	ListStyle      = lipgloss.NewStyle().MarginTop(1)
	HighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	StatusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginLeft(2)
	ToggleOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
)

var spaces = regexp.MustCompile(`\s{2,}|\t+`)

// Formats the content of a note for a single line
// removes newslines and replaces tabs with single space.
func formatContent(content string) string {
	s := stripansi.Strip(content)
	s = strings.ReplaceAll(s, "\n", " ↵ ")
	return spaces.ReplaceAllString(s, " ")
}

// highlight renders ctx on one line with the highlighted part styled.
func highlight(ctx search.Context) string {
	runes := []rune(ctx.Text)
	start := lo.Clamp(ctx.HighlightStart, 0, len(runes))
	end := lo.Clamp(ctx.HighlightEnd, start, len(runes))

	return formatContent(string(runes[:start])) +
		HighlightStyle.Render(formatContent(string(runes[start:end]))) +
		formatContent(string(runes[end:]))
}

// highlightAll styles every position in text, keeping line breaks.
func highlightAll(text string, positions []search.Span) string {
	runes := []rune(text)
	var b strings.Builder
	last := 0
	for _, p := range positions {
		start := lo.Clamp(p.Start, last, len(runes))
		end := lo.Clamp(p.End, start, len(runes))
		b.WriteString(stripansi.Strip(string(runes[last:start])))
		b.WriteString(HighlightStyle.Render(stripansi.Strip(string(runes[start:end]))))
		last = end
	}
	b.WriteString(stripansi.Strip(string(runes[last:])))
	return b.String()
}

// snippet returns the one line summary of a result: the context of its
// first match, or the start of the note in filter-only mode.
func snippet(r search.Result, engine search.Engine, contextSize int) string {
	if len(r.Matches) == 0 || len(r.Matches[0].Positions) == 0 {
		ctx := engine.ExtractContext(r.Note.Content, search.Span{}, 2*contextSize)
		return formatContent(ctx.Text)
	}

	m := r.Matches[0]
	text := highlight(engine.ExtractContext(m.Text, m.Positions[0], contextSize))
	if m.Field == search.FieldCategory {
		return "category: " + text
	}
	return text
}

// title is the headline of a result in the list.
func title(r search.Result, collection *notes.Collection) string {
	parts := []string{r.Note.Timestamp.Format("2006-01-02 15:04"), string(r.Note.Priority)}
	if c, ok := collection.Category(r.Note.CategoryID); ok {
		parts = append(parts, c.Name)
	}
	if len(r.Matches) > 0 {
		parts = append(parts, fmt.Sprintf("score %d", r.Score))
	}
	return strings.Join(parts, " · ")
}

// renderNote is the preview of a whole note with all content matches styled.
func renderNote(r search.Result) string {
	for _, m := range r.Matches {
		if m.Field == search.FieldContent {
			return highlightAll(r.Note.Content, m.Positions)
		}
	}
	return stripansi.Strip(r.Note.Content)
}

func toggle(label string, on bool) string {
	if on {
		return ToggleOnStyle.Render(label)
	}
	return label
}

// status describes the active options and result count.
func status(opts search.Options, collection *notes.Collection, count int) string {
	parts := []string{
		toggle("Aa", opts.CaseSensitive),
		toggle("\\b", opts.MatchWholeWord),
		toggle(".*", opts.UseRegex),
		toggle("cat", opts.SearchInCategories),
	}
	if opts.PriorityFilter != "" {
		parts = append(parts, "priority:"+string(opts.PriorityFilter))
	}
	if opts.CategoryFilter != "" {
		name := opts.CategoryFilter
		if c, ok := collection.Category(opts.CategoryFilter); ok {
			name = c.Name
		}
		parts = append(parts, "category:"+name)
	}

	switch {
	case opts.Inactive():
		parts = append(parts, "type to search")
	case count == 0:
		parts = append(parts, "no results")
	case !opts.HasQuery():
		parts = append(parts, fmt.Sprintf("%d notes (filters only)", count))
	default:
		parts = append(parts, fmt.Sprintf("%d results", count))
	}
	return StatusStyle.Render(strings.Join(parts, " "))
}
