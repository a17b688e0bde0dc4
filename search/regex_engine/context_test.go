package regex_engine

import (
	"testing"

	"github.com/noelzubin/notefind/search"
	"github.com/stretchr/testify/assert"
)

func TestExtractContext(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		span        search.Span
		contextSize int
		want        search.Context
	}{
		{
			name:        "snaps to whole words",
			text:        "The quick brown fox jumps",
			span:        search.Span{Start: 4, End: 9},
			contextSize: 3,
			want:        search.Context{Text: "The quick brown...", HighlightStart: 4, HighlightEnd: 9},
		},
		{
			name:        "whole text fits",
			text:        "hello world",
			span:        search.Span{Start: 0, End: 5},
			contextSize: 30,
			want:        search.Context{Text: "hello world", HighlightStart: 0, HighlightEnd: 5},
		},
		{
			name:        "ellipsis on both sides",
			text:        "one two three four five six",
			span:        search.Span{Start: 14, End: 18},
			contextSize: 2,
			want:        search.Context{Text: "... three four five...", HighlightStart: 10, HighlightEnd: 14},
		},
		{
			name:        "zero context",
			text:        "alpha beta gamma",
			span:        search.Span{Start: 6, End: 10},
			contextSize: 0,
			want:        search.Context{Text: "... beta...", HighlightStart: 4, HighlightEnd: 8},
		},
		{
			name:        "span past the end is clamped",
			text:        "short",
			span:        search.Span{Start: 20, End: 50},
			contextSize: 3,
			want:        search.Context{Text: "short", HighlightStart: 5, HighlightEnd: 5},
		},
		{
			name:        "zero context at the end",
			text:        "short",
			span:        search.Span{Start: 5, End: 5},
			contextSize: 0,
			want:        search.Context{Text: "short", HighlightStart: 5, HighlightEnd: 5},
		},
		{
			name:        "zero context past the end",
			text:        "short",
			span:        search.Span{Start: 20, End: 50},
			contextSize: 0,
			want:        search.Context{Text: "short", HighlightStart: 5, HighlightEnd: 5},
		},
		{
			name:        "zero context after the last word",
			text:        "two words",
			span:        search.Span{Start: 9, End: 9},
			contextSize: 0,
			want:        search.Context{Text: "... words", HighlightStart: 9, HighlightEnd: 9},
		},
		{
			name:        "multibyte text",
			text:        "über straße café",
			span:        search.Span{Start: 5, End: 11},
			contextSize: 1,
			want:        search.Context{Text: "... straße café", HighlightStart: 4, HighlightEnd: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got search.Context
			assert.NotPanics(t, func() {
				got = ExtractContext(tt.text, tt.span, tt.contextSize)
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractContext_NegativeSizeUsesDefault(t *testing.T) {
	text := "a b c d e f g h i j k l m n o p q r s t u v w x y z 0 1 2 3 4 5 6 7 8 9"
	span := search.Span{Start: 36, End: 37}

	assert.Equal(t,
		ExtractContext(text, span, search.DefaultContextSize),
		ExtractContext(text, span, -1),
	)
}

func TestExtractContext_HighlightsMatch(t *testing.T) {
	n := note("a", "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore")
	results := Search([]search.Note{n}, nil, withQuery("tempor"))
	if !assert.Len(t, results, 1) {
		return
	}

	m := results[0].Matches[0]
	for _, p := range m.Positions {
		ctx := ExtractContext(m.Text, p, 10)
		runes := []rune(ctx.Text)
		assert.Equal(t, "tempor", string(runes[ctx.HighlightStart:ctx.HighlightEnd]))
	}
}
