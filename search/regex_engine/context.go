package regex_engine

import (
	"unicode"
	"unicode/utf8"

	"github.com/noelzubin/notefind/search"
)

const ellipsis = "..."

// ExtractContext returns the text around span with up to contextSize
// characters on each side. The window is widened until both edges sit on
// whitespace or the ends of text, so no word is cut. A negative contextSize
// means search.DefaultContextSize.
func (e *regexEngine) ExtractContext(text string, span search.Span, contextSize int) search.Context {
	if contextSize < 0 {
		contextSize = search.DefaultContextSize
	}

	runes := []rune(text)
	n := len(runes)
	start := clamp(span.Start, 0, n)
	end := clamp(span.End, start, n)

	from := clamp(start-contextSize, 0, n)
	to := clamp(end+contextSize, 0, n)

	// An edge at the very end has no character to test and keeps moving.
	for from > 0 && (from == n || !unicode.IsSpace(runes[from])) {
		from--
	}
	for to < n && !unicode.IsSpace(runes[to]) {
		to++
	}

	var prefix, suffix string
	if from > 0 {
		prefix = ellipsis
	}
	if to < n {
		suffix = ellipsis
	}
	shift := utf8.RuneCountInString(prefix) - from

	return search.Context{
		Text:           prefix + string(runes[from:to]) + suffix,
		HighlightStart: start + shift,
		HighlightEnd:   end + shift,
	}
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
