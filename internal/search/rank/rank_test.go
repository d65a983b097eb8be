package rank

import (
	"testing"
	"time"

	"beacon_backend/internal/search/domain"

	"github.com/google/uuid"
)

func hit(t domain.SearchableType, score float64, activity time.Time) Hit {
	return Hit{
		Result: domain.Result{
			ID:             uuid.New(),
			Type:           t,
			RelevanceScore: score,
		},
		LastActivity: activity,
	}
}

func TestNormalizeStaysInUnitInterval(t *testing.T) {
	scores := []float64{0, 0.001, 0.5, 1, 10, 1000, -5}
	for _, s := range scores {
		for _, typ := range domain.AllTypes {
			n := Normalize(s, typ)
			if n < 0 || n > 1 {
				t.Fatalf("Normalize(%v, %s) = %v out of [0,1]", s, typ, n)
			}
		}
	}
}

func TestNormalizeIsMonotonic(t *testing.T) {
	prev := -1.0
	for _, s := range []float64{0, 0.1, 0.5, 1, 2, 10, 100} {
		n := Normalize(s, domain.TypeNote)
		if n < prev {
			t.Fatalf("normalization not monotonic at score %v", s)
		}
		prev = n
	}
}

func TestMergeOrdersByScoreDescending(t *testing.T) {
	now := time.Now()
	hits := []Hit{
		hit(domain.TypeEmail, 0.2, now),
		hit(domain.TypeCustomer, 0.9, now),
		hit(domain.TypeNote, 0.5, now),
	}

	results := Merge(hits)
	for i := 0; i+1 < len(results); i++ {
		if results[i].RelevanceScore < results[i+1].RelevanceScore {
			t.Fatalf("ranking not monotonic at %d: %v < %v",
				i, results[i].RelevanceScore, results[i+1].RelevanceScore)
		}
	}
	if results[0].Type != domain.TypeCustomer {
		t.Fatalf("expected customer first, got %s", results[0].Type)
	}
}

func TestMergeBreaksTiesByRecency(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 0, 5)

	a := hit(domain.TypeNote, 0.5, older)
	b := hit(domain.TypeNote, 0.5, newer)

	results := Merge([]Hit{a, b})
	if results[0].ID != b.Result.ID {
		t.Fatal("expected more recent hit first on score tie")
	}
}

func TestMergeBreaksTiesByTypePriority(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	playbook := hit(domain.TypePlaybook, 0.5, now)
	customer := hit(domain.TypeCustomer, 0.5, now)
	email := hit(domain.TypeEmail, 0.5, now)

	results := Merge([]Hit{playbook, email, customer})
	if results[0].Type != domain.TypeCustomer {
		t.Fatalf("expected customer first, got %s", results[0].Type)
	}
	if results[2].Type != domain.TypePlaybook {
		t.Fatalf("expected playbook last, got %s", results[2].Type)
	}
}

func TestMergeIsDeterministic(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	hits := []Hit{
		hit(domain.TypeNote, 0.5, now),
		hit(domain.TypeNote, 0.5, now),
		hit(domain.TypeTask, 0.5, now),
		hit(domain.TypeCustomer, 0.9, now),
	}

	first := Merge(hits)
	for run := 0; run < 10; run++ {
		again := Merge(hits)
		for i := range first {
			if first[i].ID != again[i].ID {
				t.Fatalf("merge order changed between runs at index %d", i)
			}
		}
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	hits := []Hit{
		hit(domain.TypeEmail, 0.1, now),
		hit(domain.TypeCustomer, 0.9, now),
	}
	firstID := hits[0].Result.ID

	Merge(hits)
	if hits[0].Result.ID != firstID {
		t.Fatal("input slice was reordered")
	}
}
