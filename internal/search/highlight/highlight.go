// Package highlight computes and renders match spans over result text.
// Marks wrap only the matched substrings; stripping the marks reproduces the
// original text byte for byte.
package highlight

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Span is a half-open [Start, End) byte range within the original text.
type Span struct {
	Start int
	End   int
}

// Spans finds case-insensitive word-prefix matches of terms within text.
// Overlapping or adjacent spans are merged. Terms shorter than two runes are
// ignored to avoid marking noise. Matching is rune-wise with per-rune case
// folding, so span offsets always land on rune boundaries of the original
// text even when folding would change a rune's encoded length.
func Spans(text string, terms []string) []Span {
	if text == "" || len(terms) == 0 {
		return nil
	}

	runes := []rune(text)
	folded := make([]rune, len(runes))
	starts := make([]int, len(runes)+1)
	pos := 0
	for i, r := range runes {
		folded[i] = unicode.ToLower(r)
		starts[i] = pos
		pos += utf8.RuneLen(r)
	}
	starts[len(runes)] = pos

	var spans []Span
	for _, term := range terms {
		termRunes := []rune(strings.TrimSpace(term))
		if len(termRunes) < 2 {
			continue
		}
		for i := range termRunes {
			termRunes[i] = unicode.ToLower(termRunes[i])
		}

		for i := 0; i+len(termRunes) <= len(folded); i++ {
			if !runesMatch(folded[i:i+len(termRunes)], termRunes) {
				continue
			}
			// Word-prefix match only: the hit must start at a word boundary.
			if i == 0 || isBoundary(folded[i-1]) {
				spans = append(spans, Span{Start: starts[i], End: starts[i+len(termRunes)]})
			}
		}
	}

	return mergeSpans(spans)
}

func runesMatch(window, term []rune) bool {
	for i, r := range term {
		if window[i] != r {
			return false
		}
	}
	return true
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func mergeSpans(spans []Span) []Span {
	if len(spans) <= 1 {
		return spans
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// Wrap renders text with the given spans wrapped in <mark> tags. Spans must
// be sorted and non-overlapping, as returned by Spans.
func Wrap(text string, spans []Span) string {
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(markOpen)+len(markClose)))

	prev := 0
	for _, s := range spans {
		if s.Start < prev || s.End > len(text) {
			continue
		}
		b.WriteString(text[prev:s.Start])
		b.WriteString(markOpen)
		b.WriteString(text[s.Start:s.End])
		b.WriteString(markClose)
		prev = s.End
	}
	b.WriteString(text[prev:])
	return b.String()
}

// Mark is a convenience combining Spans and Wrap. Returns the original text
// unchanged when nothing matches.
func Mark(text string, terms []string) string {
	return Wrap(text, Spans(text, terms))
}

// Strip removes all mark tags, recovering the original text.
func Strip(marked string) string {
	replacer := strings.NewReplacer(markOpen, "", markClose, "")
	return replacer.Replace(marked)
}
