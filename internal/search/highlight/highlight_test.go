package highlight

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMarkWrapsOnlyMatchedSubstring(t *testing.T) {
	got := Mark("Renewal discussion with Acme", []string{"renewal"})
	want := "<mark>Renewal</mark> discussion with Acme"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMarkIsCaseInsensitiveButPreservesOriginalCase(t *testing.T) {
	got := Mark("ACME renewal and Acme expansion", []string{"acme"})
	want := "<mark>ACME</mark> renewal and <mark>Acme</mark> expansion"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMarkMatchesWordPrefixOnly(t *testing.T) {
	// "ren" must match the start of "renewal" but not the middle of "tor sistema".
	got := Mark("renewal and brennan", []string{"ren"})
	want := "<mark>ren</mark>ewal and brennan"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMarkMergesOverlappingTerms(t *testing.T) {
	got := Mark("renewal", []string{"renew", "renewal"})
	want := "<mark>renewal</mark>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMarkNoMatchReturnsOriginal(t *testing.T) {
	text := "quarterly business review"
	if got := Mark(text, []string{"zzz"}); got != text {
		t.Fatalf("got %q, want original", got)
	}
}

func TestStripRoundTrip(t *testing.T) {
	texts := []string{
		"Renewal discussion with Acme",
		"multi renewal renewal renewal",
		"no match here",
		"",
		"unicode café búsqueda renewal",
	}
	terms := []string{"renewal", "caf"}

	for _, text := range texts {
		marked := Mark(text, terms)
		if got := Strip(marked); got != text {
			t.Fatalf("round trip failed: %q -> %q -> %q", text, marked, got)
		}
	}
}

func TestSpansIgnoresShortTerms(t *testing.T) {
	if spans := Spans("a b c", []string{"a", "b"}); len(spans) != 0 {
		t.Fatalf("expected no spans for one-rune terms, got %v", spans)
	}
}

func TestMarkKeepsRuneBoundariesUnderCaseFolding(t *testing.T) {
	// U+0130 lowercases to a shorter encoding; the span must still cover
	// the original rune, not a byte range shifted by the folding.
	got := Mark("İstanbul kickoff", []string{"istanbul"})
	want := "<mark>İstanbul</mark> kickoff"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("marking split a rune: %q", got)
	}
	if Strip(got) != "İstanbul kickoff" {
		t.Fatalf("round trip failed: %q", got)
	}
}

func TestWrapCountsMatchesMarkCount(t *testing.T) {
	marked := Mark("renewal renewal renewal", []string{"renewal"})
	if n := strings.Count(marked, "<mark>"); n != 3 {
		t.Fatalf("expected 3 marks, got %d in %q", n, marked)
	}
}
