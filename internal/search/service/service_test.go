package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"beacon_backend/internal/search/domain"
	"beacon_backend/internal/search/repository"
	"beacon_backend/platform/apperr"
	"beacon_backend/platform/logger"
)

type fakeConfig struct{}

func (fakeConfig) GetSearchTimeout() time.Duration { return 2 * time.Second }
func (fakeConfig) GetSearchPageSize() int          { return 20 }
func (fakeConfig) GetSearchMaxPageSize() int       { return 50 }

// fakeSources serves canned rows per type and can be told to fail sources.
type fakeSources struct {
	mu      sync.Mutex
	rows    map[domain.SearchableType][]repository.Row
	failing map[domain.SearchableType]error
	calls   []domain.SearchableType
}

func (f *fakeSources) SearchSource(_ context.Context, _ uuid.UUID, t domain.SearchableType, q repository.SourceQuery) ([]repository.Row, error) {
	f.mu.Lock()
	f.calls = append(f.calls, t)
	f.mu.Unlock()

	if err := f.failing[t]; err != nil {
		return nil, err
	}
	rows := f.rows[t]
	if len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return rows, nil
}

func row(title string, rank float32, activity time.Time, total int64) repository.Row {
	return repository.Row{
		ID:           uuid.New(),
		Title:        title,
		Snippet:      "snippet for " + title,
		Rank:         rank,
		LastActivity: activity,
		Total:        total,
	}
}

func newService(sources *fakeSources) *Service {
	return New(sources, fakeConfig{}, logger.New("test"))
}

func TestSearchEmptyQueryReturnsEmptyPage(t *testing.T) {
	sources := &fakeSources{}
	svc := newService(sources)

	page, err := svc.Search(context.Background(), uuid.New(), Input{Query: "   "})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Results) != 0 || page.HasMore || page.Total != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}
	if len(sources.calls) != 0 {
		t.Fatalf("expected no source calls for empty query, got %d", len(sources.calls))
	}
}

func TestSearchMergesSourcesByScore(t *testing.T) {
	now := time.Now()
	sources := &fakeSources{rows: map[domain.SearchableType][]repository.Row{
		domain.TypeCustomer: {row("Acme Renewal", 0.9, now, 1)},
		domain.TypeEmail:    {row("Renewal pricing", 2.5, now, 1)},
	}}
	svc := newService(sources)

	page, err := svc.Search(context.Background(), uuid.New(), Input{
		Query:   "renewal",
		Filters: domain.Filters{Types: []domain.SearchableType{domain.TypeCustomer, domain.TypeEmail}},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(page.Results))
	}
	// Raw ts_rank 2.5 at email weight still beats 0.9 at customer weight.
	if page.Results[0].Type != domain.TypeEmail {
		t.Fatalf("expected email first, got %s", page.Results[0].Type)
	}
	if page.Total != 2 {
		t.Fatalf("expected total 2, got %d", page.Total)
	}
	for _, r := range page.Results {
		if r.RelevanceScore < 0 || r.RelevanceScore > 1 {
			t.Fatalf("score %f outside [0,1]", r.RelevanceScore)
		}
	}
}

func TestSearchScoresDescendAcrossPage(t *testing.T) {
	now := time.Now()
	rows := make([]repository.Row, 0, 8)
	for i := 0; i < 8; i++ {
		rows = append(rows, row("Renewal doc", float32(8-i), now.Add(-time.Duration(i)*time.Hour), 8))
	}
	sources := &fakeSources{rows: map[domain.SearchableType][]repository.Row{
		domain.TypeDocument: rows,
	}}
	svc := newService(sources)

	page, err := svc.Search(context.Background(), uuid.New(), Input{
		Query:   "renewal",
		Filters: domain.Filters{Types: []domain.SearchableType{domain.TypeDocument}},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i := 0; i+1 < len(page.Results); i++ {
		if page.Results[i].RelevanceScore < page.Results[i+1].RelevanceScore {
			t.Fatalf("scores not monotonically non-increasing at %d", i)
		}
	}
}

func TestSearchPartialFailureDegrades(t *testing.T) {
	now := time.Now()
	sources := &fakeSources{
		rows: map[domain.SearchableType][]repository.Row{
			domain.TypeCustomer: {row("Acme", 1.0, now, 1)},
		},
		failing: map[domain.SearchableType]error{
			domain.TypeEmail: errors.New("relation missing"),
		},
	}
	svc := newService(sources)

	page, err := svc.Search(context.Background(), uuid.New(), Input{
		Query:   "acme",
		Filters: domain.Filters{Types: []domain.SearchableType{domain.TypeCustomer, domain.TypeEmail}},
	})
	if err != nil {
		t.Fatalf("expected degraded success, got %v", err)
	}
	if !page.Degraded || page.FailedSources != 1 {
		t.Fatalf("expected degraded page with 1 failed source, got %+v", page)
	}
	if len(page.Results) != 1 {
		t.Fatalf("expected surviving result, got %d", len(page.Results))
	}
}

func TestSearchAllSourcesFailing(t *testing.T) {
	sources := &fakeSources{failing: map[domain.SearchableType]error{
		domain.TypeCustomer: errors.New("down"),
		domain.TypeEmail:    errors.New("down"),
	}}
	svc := newService(sources)

	_, err := svc.Search(context.Background(), uuid.New(), Input{
		Query:   "acme",
		Filters: domain.Filters{Types: []domain.SearchableType{domain.TypeCustomer, domain.TypeEmail}},
	})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindUnavailable {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestSearchPaginationCursorRoundTrip(t *testing.T) {
	now := time.Now()
	rows := make([]repository.Row, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, row("Renewal doc", float32(5-i), now, 5))
	}
	sources := &fakeSources{rows: map[domain.SearchableType][]repository.Row{
		domain.TypeDocument: rows,
	}}
	svc := newService(sources)
	tenant := uuid.New()
	input := Input{
		Query:   "renewal",
		Filters: domain.Filters{Types: []domain.SearchableType{domain.TypeDocument}},
		Limit:   2,
	}

	first, err := svc.Search(context.Background(), tenant, input)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Results) != 2 || !first.HasMore || first.NextCursor == "" {
		t.Fatalf("unexpected first page: %+v", first)
	}

	input.Cursor = first.NextCursor
	second, err := svc.Search(context.Background(), tenant, input)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Results) != 2 || !second.HasMore {
		t.Fatalf("unexpected second page: %+v", second)
	}
	if second.Results[0].ID == first.Results[0].ID {
		t.Fatal("second page repeats first page results")
	}

	input.Cursor = second.NextCursor
	third, err := svc.Search(context.Background(), tenant, input)
	if err != nil {
		t.Fatalf("third page: %v", err)
	}
	if len(third.Results) != 1 || third.HasMore || third.NextCursor != "" {
		t.Fatalf("unexpected final page: %+v", third)
	}
}

func TestSearchCursorBoundToQuery(t *testing.T) {
	now := time.Now()
	sources := &fakeSources{rows: map[domain.SearchableType][]repository.Row{
		domain.TypeDocument: {row("Renewal doc", 1, now, 3), row("Renewal doc", 0.9, now, 3), row("Renewal doc", 0.8, now, 3)},
	}}
	svc := newService(sources)
	tenant := uuid.New()
	filters := domain.Filters{Types: []domain.SearchableType{domain.TypeDocument}}

	first, err := svc.Search(context.Background(), tenant, Input{Query: "renewal", Filters: filters, Limit: 2})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}

	_, err = svc.Search(context.Background(), tenant, Input{Query: "churn", Filters: filters, Limit: 2, Cursor: first.NextCursor})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindBadRequest {
		t.Fatalf("expected bad request for mismatched cursor, got %v", err)
	}

	_, err = svc.Search(context.Background(), tenant, Input{Query: "renewal", Filters: filters, Limit: 2, Cursor: "!!!not-base64!!!"})
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindBadRequest {
		t.Fatalf("expected bad request for malformed cursor, got %v", err)
	}
}

func TestSearchHighlightsMatchedTerms(t *testing.T) {
	now := time.Now()
	hit := row("Renewal discussion", 1.0, now, 1)
	hit.Snippet = "pricing for the renewal"
	sources := &fakeSources{rows: map[domain.SearchableType][]repository.Row{
		domain.TypeNote: {hit},
	}}
	svc := newService(sources)

	page, err := svc.Search(context.Background(), uuid.New(), Input{
		Query:   "renewal",
		Filters: domain.Filters{Types: []domain.SearchableType{domain.TypeNote}},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	got := page.Results[0]
	if got.Highlight == nil {
		t.Fatal("expected highlight markup")
	}
	if !strings.Contains(got.Highlight.Title, "<mark>Renewal</mark>") {
		t.Fatalf("title highlight missing: %q", got.Highlight.Title)
	}
	if !strings.Contains(got.Highlight.Content, "<mark>renewal</mark>") {
		t.Fatalf("snippet highlight missing: %q", got.Highlight.Content)
	}
	if got.Snippet != hit.Snippet {
		t.Fatalf("plain snippet mutated: %q", got.Snippet)
	}
}

func TestSearchFiltersOnlyQueryRetrieves(t *testing.T) {
	now := time.Now()
	sources := &fakeSources{rows: map[domain.SearchableType][]repository.Row{
		domain.TypeTask: {row("Follow up on onboarding", 0, now, 1)},
	}}
	svc := newService(sources)

	page, err := svc.Search(context.Background(), uuid.New(), Input{
		Filters: domain.Filters{Types: []domain.SearchableType{domain.TypeTask}},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Results) != 1 {
		t.Fatalf("expected filters-only search to return rows, got %d", len(page.Results))
	}
	if len(sources.calls) != 1 || sources.calls[0] != domain.TypeTask {
		t.Fatalf("expected one task source call, got %v", sources.calls)
	}
}
