// Package suggest assembles the empty-query suggestion panel from recent
// searches, saved searches, active customers, and tenant-wide trending
// queries.
package suggest

import (
	"context"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"beacon_backend/internal/search/domain"
	"beacon_backend/internal/search/repository"
	"beacon_backend/platform/logger"
)

// perCategoryLimit caps each suggestion category so the panel stays short.
const perCategoryLimit = 5

// HistorySource is the slice of the history store the engine reads.
type HistorySource interface {
	ListRecent(ctx context.Context, tenantID, userID uuid.UUID, limit int) ([]domain.RecentSearch, error)
	ListSaved(ctx context.Context, tenantID, userID uuid.UUID) ([]domain.SavedSearch, error)
	TopTrending(ctx context.Context, tenantID uuid.UUID, n int) ([]string, error)
}

// CustomerSource surfaces the customers with the most recent activity.
type CustomerSource interface {
	TopCustomersByActivity(ctx context.Context, tenantID uuid.UUID, limit int) ([]repository.Row, error)
}

type Engine struct {
	history   HistorySource
	customers CustomerSource
	log       *logger.Logger
}

func New(history HistorySource, customers CustomerSource, log *logger.Logger) *Engine {
	return &Engine{history: history, customers: customers, log: log}
}

// Suggest returns the suggestion panel for a user. The optional prefix
// narrows every category by fuzzy match. Sources are best-effort: a failing
// source drops its category instead of failing the panel.
func (e *Engine) Suggest(ctx context.Context, tenantID, userID uuid.UUID, prefix string) ([]domain.Suggestion, error) {
	suggestions := make([]domain.Suggestion, 0, 4*perCategoryLimit)
	seenQueries := make(map[string]bool)

	recent, err := e.history.ListRecent(ctx, tenantID, userID, perCategoryLimit)
	if err != nil {
		e.log.Warn("suggestions: recent searches unavailable", "error", err)
	}
	for _, r := range recent {
		if !matches(prefix, r.Query) {
			continue
		}
		seenQueries[r.Query] = true
		suggestions = append(suggestions, domain.Suggestion{
			Type:     "query",
			Text:     r.Query,
			Category: domain.CategoryRecent,
		})
	}

	saved, err := e.history.ListSaved(ctx, tenantID, userID)
	if err != nil {
		e.log.Warn("suggestions: saved searches unavailable", "error", err)
	}
	for i, s := range saved {
		if i >= perCategoryLimit {
			break
		}
		if !matches(prefix, s.Name) && !matches(prefix, s.Query) {
			continue
		}
		seenQueries[s.Query] = true
		suggestions = append(suggestions, domain.Suggestion{
			Type:     "query",
			Text:     s.Query,
			Category: domain.CategorySaved,
		})
	}

	customers, err := e.customers.TopCustomersByActivity(ctx, tenantID, perCategoryLimit)
	if err != nil {
		e.log.Warn("suggestions: top customers unavailable", "error", err)
	}
	for _, c := range customers {
		if !matches(prefix, c.Title) {
			continue
		}
		activity := c.LastActivity
		suggestions = append(suggestions, domain.Suggestion{
			Type:     "customer",
			Text:     c.Title,
			Category: domain.CategoryCustomer,
			Metadata: &domain.Metadata{
				Status:  c.Status,
				OwnerID: c.OwnerID,
				Date:    &activity,
			},
		})
	}

	trending, err := e.history.TopTrending(ctx, tenantID, perCategoryLimit)
	if err != nil {
		e.log.Warn("suggestions: trending searches unavailable", "error", err)
	}
	for _, q := range trending {
		// A query the user already sees under "recent" or "saved" is not
		// repeated as trending.
		if seenQueries[q] || !matches(prefix, q) {
			continue
		}
		suggestions = append(suggestions, domain.Suggestion{
			Type:     "query",
			Text:     q,
			Category: domain.CategoryTrending,
		})
	}

	return suggestions, nil
}

func matches(prefix, candidate string) bool {
	if prefix == "" {
		return true
	}
	return fuzzy.MatchNormalizedFold(prefix, candidate)
}
