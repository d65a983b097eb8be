package suggest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"beacon_backend/internal/search/domain"
	"beacon_backend/internal/search/repository"
	"beacon_backend/platform/logger"
)

type fakeHistory struct {
	recent      []domain.RecentSearch
	saved       []domain.SavedSearch
	trending    []string
	recentErr   error
	trendingErr error
}

func (f *fakeHistory) ListRecent(_ context.Context, _, _ uuid.UUID, _ int) ([]domain.RecentSearch, error) {
	return f.recent, f.recentErr
}

func (f *fakeHistory) ListSaved(_ context.Context, _, _ uuid.UUID) ([]domain.SavedSearch, error) {
	return f.saved, nil
}

func (f *fakeHistory) TopTrending(_ context.Context, _ uuid.UUID, _ int) ([]string, error) {
	return f.trending, f.trendingErr
}

type fakeCustomers struct {
	rows []repository.Row
	err  error
}

func (f *fakeCustomers) TopCustomersByActivity(_ context.Context, _ uuid.UUID, _ int) ([]repository.Row, error) {
	return f.rows, f.err
}

func engine(h *fakeHistory, c *fakeCustomers) *Engine {
	return New(h, c, logger.New("test"))
}

func TestSuggestAssemblesAllCategories(t *testing.T) {
	now := time.Now()
	history := &fakeHistory{
		recent:   []domain.RecentSearch{{Query: "renewal risk", SearchedAt: now}},
		saved:    []domain.SavedSearch{{ID: "1", Name: "QBR prep", Query: "meetings this month"}},
		trending: []string{"onboarding"},
	}
	customers := &fakeCustomers{rows: []repository.Row{
		{ID: uuid.New(), Title: "Acme Corp", LastActivity: now, Status: "healthy"},
	}}

	got, err := engine(history, customers).Suggest(context.Background(), uuid.New(), uuid.New(), "")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	byCategory := map[domain.SuggestionCategory]int{}
	for _, s := range got {
		byCategory[s.Category]++
	}
	for _, c := range []domain.SuggestionCategory{
		domain.CategoryRecent, domain.CategorySaved, domain.CategoryCustomer, domain.CategoryTrending,
	} {
		if byCategory[c] != 1 {
			t.Fatalf("expected one %s suggestion, got %d (%+v)", c, byCategory[c], got)
		}
	}
	// Categories keep a fixed panel order.
	if got[0].Category != domain.CategoryRecent || got[len(got)-1].Category != domain.CategoryTrending {
		t.Fatalf("unexpected category order: %+v", got)
	}
}

func TestSuggestPrefixNarrowing(t *testing.T) {
	history := &fakeHistory{
		recent:   []domain.RecentSearch{{Query: "renewal risk"}, {Query: "onboarding tasks"}},
		trending: []string{"churn review"},
	}
	customers := &fakeCustomers{rows: []repository.Row{
		{ID: uuid.New(), Title: "Renewco"},
		{ID: uuid.New(), Title: "Acme Corp"},
	}}

	got, err := engine(history, customers).Suggest(context.Background(), uuid.New(), uuid.New(), "renew")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	for _, s := range got {
		switch s.Text {
		case "renewal risk", "Renewco":
		default:
			t.Fatalf("prefix %q should have excluded %q", "renew", s.Text)
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 narrowed suggestions, got %d", len(got))
	}
}

func TestSuggestSkipsTrendingAlreadyRecent(t *testing.T) {
	history := &fakeHistory{
		recent:   []domain.RecentSearch{{Query: "renewal risk"}},
		trending: []string{"renewal risk", "churn review"},
	}

	got, err := engine(history, &fakeCustomers{}).Suggest(context.Background(), uuid.New(), uuid.New(), "")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	count := 0
	for _, s := range got {
		if s.Text == "renewal risk" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected renewal risk exactly once, got %d", count)
	}
}

func TestSuggestToleratesSourceFailures(t *testing.T) {
	history := &fakeHistory{
		recentErr:   errors.New("redis down"),
		trendingErr: errors.New("redis down"),
		saved:       []domain.SavedSearch{{ID: "1", Name: "QBR prep", Query: "meetings this month"}},
	}
	customers := &fakeCustomers{err: errors.New("pg down")}

	got, err := engine(history, customers).Suggest(context.Background(), uuid.New(), uuid.New(), "")
	if err != nil {
		t.Fatalf("Suggest should be best-effort, got %v", err)
	}
	if len(got) != 1 || got[0].Category != domain.CategorySaved {
		t.Fatalf("expected surviving saved suggestion, got %+v", got)
	}
}
