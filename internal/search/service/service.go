// Package service merges per-source retrieval into ranked, paginated search
// pages. Sources are queried concurrently and a failing source degrades the
// page instead of failing the request.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"beacon_backend/internal/search/domain"
	"beacon_backend/internal/search/highlight"
	"beacon_backend/internal/search/query"
	"beacon_backend/internal/search/rank"
	"beacon_backend/internal/search/repository"
	"beacon_backend/platform/apperr"
	"beacon_backend/platform/config"
	"beacon_backend/platform/logger"
)

// maxSourceConcurrency bounds the retrieval fan-out per request.
const maxSourceConcurrency = 4

// Sources abstracts the per-type retrieval backend.
type Sources interface {
	SearchSource(ctx context.Context, tenantID uuid.UUID, t domain.SearchableType, q repository.SourceQuery) ([]repository.Row, error)
}

type Service struct {
	sources Sources
	cfg     config.SearchConfig
	log     *logger.Logger
}

func New(sources Sources, cfg config.SearchConfig, log *logger.Logger) *Service {
	return &Service{sources: sources, cfg: cfg, log: log}
}

// Input is one search request after transport decoding.
type Input struct {
	Query   string
	Filters domain.Filters
	Cursor  string
	Limit   int
}

// Search parses the query, fans retrieval out across the requested sources,
// merges and ranks the survivors, and slices the requested page.
func (s *Service) Search(ctx context.Context, tenantID uuid.UUID, input Input) (*domain.Page, error) {
	started := time.Now()

	parsed := query.Parse(input.Query, input.Filters)

	limit := input.Limit
	if limit <= 0 {
		limit = s.cfg.GetSearchPageSize()
	}
	if max := s.cfg.GetSearchMaxPageSize(); limit > max {
		limit = max
	}

	offset, err := decodeCursor(input.Cursor, parsed)
	if err != nil {
		return nil, apperr.BadRequest(err.Error()).WithOp("search.Search")
	}

	page := &domain.Page{
		Results:     []domain.Result{},
		ParsedQuery: parsed,
	}

	// Nothing to retrieve for an empty query with no filters; the client
	// shows suggestions in that state.
	if parsed.IsEmpty() {
		page.SearchTimeMs = time.Since(started).Milliseconds()
		return page, nil
	}

	types := parsed.Filters.Types
	if len(types) == 0 {
		types = domain.AllTypes
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.GetSearchTimeout())
	defer cancel()

	text := strings.Join(parsed.Terms, " ")
	sourceQuery := repository.SourceQuery{
		Text:     text,
		OwnerID:  parsed.Filters.OwnerID,
		DateFrom: parsed.Filters.DateFrom,
		DateTo:   parsed.Filters.DateTo,
		// Lookahead past the window so hasMore is known without a count
		// round-trip, even when every source contributes.
		Limit: offset + limit + 1,
	}

	var (
		mu       sync.Mutex
		hits     []rank.Hit
		totals   = make(map[domain.SearchableType]int64, len(types))
		failures int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSourceConcurrency)
	for _, t := range types {
		g.Go(func() error {
			rows, err := s.sources.SearchSource(gctx, tenantID, t, sourceQuery)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				s.log.DatabaseError("search."+string(t), err)
				return nil
			}
			for _, row := range rows {
				if totals[t] < row.Total {
					totals[t] = row.Total
				}
				hits = append(hits, s.toHit(t, row, parsed.Terms))
			}
			return nil
		})
	}
	g.Wait()

	if failures == len(types) {
		return nil, apperr.Unavailable("search is temporarily unavailable").WithOp("search.Search")
	}

	merged := rank.Merge(hits)

	var total int64
	for _, n := range totals {
		total += n
	}

	end := offset + limit
	switch {
	case offset >= len(merged):
		// Past the end of what the surviving sources returned.
	case end >= len(merged):
		page.Results = merged[offset:]
	default:
		page.Results = merged[offset:end]
	}

	page.Total = int(total)
	page.HasMore = len(merged) > end
	if page.HasMore {
		page.NextCursor = encodeCursor(end, parsed)
	}
	page.Degraded = failures > 0
	page.FailedSources = failures
	page.SearchTimeMs = time.Since(started).Milliseconds()

	s.log.SearchExecuted(input.Query, len(page.Results), page.SearchTimeMs, failures)

	return page, nil
}

// toHit converts a repository row into a ranked hit with highlight markup
// applied to the matched fields.
func (s *Service) toHit(t domain.SearchableType, row repository.Row, terms []string) rank.Hit {
	result := domain.Result{
		ID:      row.ID,
		Type:    t,
		Title:   row.Title,
		Snippet: row.Snippet,
		Metadata: domain.Metadata{
			CustomerName: row.CustomerName,
			From:         row.FromAddress,
			Attendees:    row.Attendees,
			Status:       row.Status,
			OwnerID:      row.OwnerID,
		},
		RelevanceScore: rank.Normalize(float64(row.Rank), t),
		Actions:        actionsFor(t),
	}

	activity := row.LastActivity
	result.Metadata.Date = &activity

	markedTitle := highlight.Mark(row.Title, terms)
	markedSnippet := highlight.Mark(row.Snippet, terms)
	if markedTitle != row.Title || markedSnippet != row.Snippet {
		result.Highlight = &domain.Highlight{}
		if markedTitle != row.Title {
			result.Highlight.Title = markedTitle
		}
		if markedSnippet != row.Snippet {
			result.Highlight.Content = markedSnippet
		}
	}

	return rank.Hit{Result: result, LastActivity: row.LastActivity}
}

func actionsFor(t domain.SearchableType) []domain.ActionKind {
	switch t {
	case domain.TypeDocument, domain.TypePlaybook:
		return []domain.ActionKind{domain.ActionOpen, domain.ActionPreview, domain.ActionCopyLink}
	case domain.TypeEmail, domain.TypeNote:
		return []domain.ActionKind{domain.ActionOpen, domain.ActionPreview}
	default:
		return []domain.ActionKind{domain.ActionOpen, domain.ActionCopyLink}
	}
}
