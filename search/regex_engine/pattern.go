package regex_engine

import (
	"log"

	"github.com/dlclark/regexp2"
	"github.com/noelzubin/notefind/search"
)

// matcher scans text for every non-overlapping match of one compiled
// pattern. It holds no scan position, so it can be reused on any input.
type matcher struct {
	re     *regexp2.Regexp
	logger *log.Logger
}

// compile builds the matcher for opts.
//
// Regex queries are compiled as given. Everything else is escaped so it
// matches literally and, for whole word searches, wrapped in \b. A regex
// that fails to compile is searched literally instead.
func (e *regexEngine) compile(opts search.Options) *matcher {
	flags := regexp2.RegexOptions(regexp2.ECMAScript)
	if !opts.CaseSensitive {
		flags |= regexp2.IgnoreCase
	}

	var (
		re  *regexp2.Regexp
		err error
	)
	if opts.UseRegex {
		re, err = regexp2.Compile(opts.Query, flags)
		if err != nil {
			e.logger.Printf("invalid pattern %q, searching for it literally: %v", opts.Query, err)
			re, err = regexp2.Compile(literalPattern(opts.Query, false), flags)
		}
	} else {
		re, err = regexp2.Compile(literalPattern(opts.Query, opts.MatchWholeWord), flags)
	}
	if err != nil {
		e.logger.Printf("cannot compile query %q: %v", opts.Query, err)
		return nil
	}

	if e.timeout > 0 {
		re.MatchTimeout = e.timeout
	}
	return &matcher{re: re, logger: e.logger}
}

// literalPattern escapes query and optionally anchors it to word boundaries.
func literalPattern(query string, wholeWord bool) string {
	pattern := regexp2.Escape(query)
	if wholeWord {
		pattern = `\b` + pattern + `\b`
	}
	return pattern
}

// scan returns the spans of every match in text, left to right. Empty
// matches are stepped over and never reported.
func (m *matcher) scan(text string) []search.Span {
	var spans []search.Span
	runes := []rune(text)

	for pos := 0; pos <= len(runes); {
		match, err := m.re.FindRunesMatchStartingAt(runes, pos)
		if err != nil {
			m.logger.Printf("scan of %q stopped after %d matches: %v", m.re.String(), len(spans), err)
			break
		}
		if match == nil {
			break
		}

		start, end := match.Index, match.Index+match.Length
		if end > start {
			spans = append(spans, search.Span{Start: start, End: end})
			pos = end
		} else {
			pos = start + 1
		}
	}

	return spans
}
