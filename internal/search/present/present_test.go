package present

import (
	"testing"
	"time"

	"beacon_backend/internal/search/domain"
)

// Every searchable type must have complete display metadata; a new enum
// value without an entry here is a bug.
func TestTypeMetaCoversAllTypes(t *testing.T) {
	for _, st := range domain.AllTypes {
		meta := MetaFor(st)
		if meta == unknownMeta {
			t.Fatalf("missing display metadata for type %q", st)
		}
		if meta.Icon == "" || meta.Color == "" || meta.Label == "" {
			t.Fatalf("incomplete display metadata for type %q: %+v", st, meta)
		}
	}
	if len(typeMeta) != len(domain.AllTypes) {
		t.Fatalf("typeMeta has %d entries, enum has %d", len(typeMeta), len(domain.AllTypes))
	}
}

func TestMetaForUnknownTypeFallsBack(t *testing.T) {
	if MetaFor(domain.SearchableType("widget")) != unknownMeta {
		t.Fatal("unknown type must get the neutral fallback")
	}
}

func TestSubtitleComposition(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	tests := []struct {
		name   string
		result domain.Result
		want   string
	}{
		{
			name: "email with customer and sender",
			result: domain.Result{
				Type: domain.TypeEmail,
				Metadata: domain.Metadata{
					CustomerName: "Acme Corp",
					From:         "sarah@acme.com",
					Date:         &yesterday,
				},
			},
			want: "Acme Corp · from sarah@acme.com · Yesterday",
		},
		{
			name: "meeting with attendees",
			result: domain.Result{
				Type: domain.TypeMeeting,
				Metadata: domain.Metadata{
					CustomerName: "Globex",
					Attendees:    4,
					Date:         &yesterday,
				},
			},
			want: "Globex · 4 attendees · Yesterday",
		},
		{
			name: "task with status",
			result: domain.Result{
				Type: domain.TypeTask,
				Metadata: domain.Metadata{
					Status: "open",
					Date:   &yesterday,
				},
			},
			want: "open · Yesterday",
		},
		{
			name:   "bare result",
			result: domain.Result{Type: domain.TypePlaybook},
			want:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Subtitle(tc.result, now); got != tc.want {
				t.Fatalf("Subtitle() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ts   time.Time
		want string
	}{
		{now.Add(-2 * time.Hour), "Today"},
		{now.AddDate(0, 0, -1), "Yesterday"},
		{now.AddDate(0, 0, -3), "3 days ago"},
		{now.AddDate(0, 0, -7), "1 week ago"},
		{now.AddDate(0, 0, -20), "2 weeks ago"},
		{now.AddDate(0, 0, -40), "May 6, 2025"},
		{now.AddDate(0, 0, 5), "Jun 20, 2025"},
	}

	for _, tc := range tests {
		if got := RelativeDate(tc.ts, now); got != tc.want {
			t.Fatalf("RelativeDate(%s) = %q, want %q", tc.ts, got, tc.want)
		}
	}
}

func TestRelativeDateBucketsByLocalCalendarDay(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2025, 6, 15, 0, 30, 0, 0, zone)

	tests := []struct {
		ts   time.Time
		want string
	}{
		// 90 minutes earlier but across local midnight.
		{time.Date(2025, 6, 14, 23, 0, 0, 0, zone), "Yesterday"},
		// Expressed in UTC yet the same local calendar day.
		{time.Date(2025, 6, 14, 22, 15, 0, 0, time.UTC), "Today"},
		{time.Date(2025, 6, 13, 23, 0, 0, 0, zone), "2 days ago"},
	}

	for _, tc := range tests {
		if got := RelativeDate(tc.ts, now); got != tc.want {
			t.Fatalf("RelativeDate(%s) = %q, want %q", tc.ts, got, tc.want)
		}
	}
}
