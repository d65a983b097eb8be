package query

import (
	"testing"
	"time"

	"beacon_backend/internal/search/domain"
)

var refTime = time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC) // a Wednesday

func TestParseTrimsAndCollapsesWhitespace(t *testing.T) {
	parsed := ParseAt("  renewal   risk  ", domain.Filters{}, refTime)
	if parsed.Text != "renewal risk" {
		t.Fatalf("expected collapsed text, got %q", parsed.Text)
	}
	if len(parsed.Terms) != 2 || parsed.Terms[0] != "renewal" || parsed.Terms[1] != "risk" {
		t.Fatalf("unexpected terms: %v", parsed.Terms)
	}
}

func TestParseEmptyTextIsSuggestionsMode(t *testing.T) {
	parsed := ParseAt("   ", domain.Filters{}, refTime)
	if !parsed.IsEmpty() {
		t.Fatal("expected empty parsed query")
	}
	if parsed.Intent != "" {
		t.Fatalf("expected no intent for empty input, got %q", parsed.Intent)
	}
}

func TestParseInfersEmailTypeAndIntent(t *testing.T) {
	parsed := ParseAt("emails from Sarah about renewal", domain.Filters{}, refTime)

	if len(parsed.Filters.Types) != 1 || parsed.Filters.Types[0] != domain.TypeEmail {
		t.Fatalf("expected inferred email type, got %v", parsed.Filters.Types)
	}
	if parsed.Intent != "Emails from 'sarah' mentioning 'renewal'" {
		t.Fatalf("unexpected intent: %q", parsed.Intent)
	}
	// The person and topic stay in the term list so the literal text query
	// still matches them.
	if len(parsed.Terms) != 2 || parsed.Terms[0] != "sarah" || parsed.Terms[1] != "renewal" {
		t.Fatalf("unexpected terms: %v", parsed.Terms)
	}
}

func TestParseExplicitTypesWinOverInferred(t *testing.T) {
	explicit := domain.Filters{Types: []domain.SearchableType{domain.TypeNote}}
	parsed := ParseAt("emails from Sarah", explicit, refTime)

	if len(parsed.Filters.Types) != 1 || parsed.Filters.Types[0] != domain.TypeNote {
		t.Fatalf("explicit type filter must win, got %v", parsed.Filters.Types)
	}
}

func TestParsePlainQueryHasNoIntent(t *testing.T) {
	parsed := ParseAt("acme corporation health", domain.Filters{}, refTime)
	if parsed.Intent != "" {
		t.Fatalf("plain query must not produce intent, got %q", parsed.Intent)
	}
	if len(parsed.Filters.Types) != 0 {
		t.Fatalf("plain query must not infer types, got %v", parsed.Filters.Types)
	}
	if len(parsed.Terms) != 3 {
		t.Fatalf("unexpected terms: %v", parsed.Terms)
	}
}

func TestParseInfersMultipleTypes(t *testing.T) {
	parsed := ParseAt("tasks notes onboarding", domain.Filters{}, refTime)
	if len(parsed.Filters.Types) != 2 {
		t.Fatalf("expected two inferred types, got %v", parsed.Filters.Types)
	}
	if parsed.Filters.Types[0] != domain.TypeTask || parsed.Filters.Types[1] != domain.TypeNote {
		t.Fatalf("unexpected types: %v", parsed.Filters.Types)
	}
}

func TestParseDateWords(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		wantFrom time.Time
		wantTo   *time.Time
	}{
		{
			name:     "today",
			input:    "meetings today",
			wantFrom: time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "yesterday",
			input:    "emails yesterday",
			wantFrom: time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC),
			wantTo:   timePtr(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "this week",
			input:    "notes this week",
			wantFrom: time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "last week",
			input:    "activity last week",
			wantFrom: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC),
			wantTo:   timePtr(time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "this month",
			input:    "documents this month",
			wantFrom: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := ParseAt(tc.input, domain.Filters{}, refTime)
			if parsed.Filters.DateFrom == nil {
				t.Fatal("expected inferred date_from")
			}
			if !parsed.Filters.DateFrom.Equal(tc.wantFrom) {
				t.Fatalf("date_from = %v, want %v", parsed.Filters.DateFrom, tc.wantFrom)
			}
			if tc.wantTo == nil {
				if parsed.Filters.DateTo != nil {
					t.Fatalf("expected no date_to, got %v", parsed.Filters.DateTo)
				}
			} else if parsed.Filters.DateTo == nil || !parsed.Filters.DateTo.Equal(*tc.wantTo) {
				t.Fatalf("date_to = %v, want %v", parsed.Filters.DateTo, tc.wantTo)
			}
		})
	}
}

func TestParseExplicitDatesWinOverDateWords(t *testing.T) {
	explicitFrom := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	parsed := ParseAt("emails yesterday", domain.Filters{DateFrom: &explicitFrom}, refTime)
	if !parsed.Filters.DateFrom.Equal(explicitFrom) {
		t.Fatalf("explicit date must win, got %v", parsed.Filters.DateFrom)
	}
}

func TestParseNeverPanicsOnOddInput(t *testing.T) {
	inputs := []string{"from", "about", "from from from", "this", "week", "this week", ""}
	for _, input := range inputs {
		parsed := ParseAt(input, domain.Filters{}, refTime)
		_ = parsed
	}
}

func timePtr(t time.Time) *time.Time { return &t }
