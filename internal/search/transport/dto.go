// Package transport defines the wire DTOs for the search API and the
// mapping from engine results to their display form.
package transport

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"beacon_backend/internal/search/domain"
	"beacon_backend/internal/search/present"
	"beacon_backend/platform/apperr"
)

type SearchRequest struct {
	Query    string `form:"q" validate:"omitempty,max=200"`
	Types    string `form:"types" validate:"omitempty,max=200"`
	OwnerID  string `form:"owner_id" validate:"omitempty,uuid"`
	DateFrom string `form:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" validate:"omitempty,datetime=2006-01-02"`
	Cursor   string `form:"cursor" validate:"omitempty,max=300"`
	Limit    int    `form:"limit" validate:"omitempty,min=1,max=50"`
}

// Filters decodes the explicit filter parameters. An unknown type value is
// rejected rather than silently dropped.
func (r SearchRequest) Filters() (domain.Filters, error) {
	var filters domain.Filters

	if r.Types != "" {
		for _, raw := range strings.Split(r.Types, ",") {
			t := domain.SearchableType(strings.TrimSpace(raw))
			if !t.Valid() {
				return domain.Filters{}, apperr.Validation("unknown search type: " + string(t))
			}
			filters.Types = append(filters.Types, t)
		}
	}

	if r.OwnerID != "" {
		owner, err := uuid.Parse(r.OwnerID)
		if err != nil {
			return domain.Filters{}, apperr.Validation("owner_id must be a UUID")
		}
		filters.OwnerID = &owner
	}

	if r.DateFrom != "" {
		from, err := time.Parse("2006-01-02", r.DateFrom)
		if err != nil {
			return domain.Filters{}, apperr.Validation("date_from must be YYYY-MM-DD")
		}
		filters.DateFrom = &from
	}
	if r.DateTo != "" {
		to, err := time.Parse("2006-01-02", r.DateTo)
		if err != nil {
			return domain.Filters{}, apperr.Validation("date_to must be YYYY-MM-DD")
		}
		// The to-date is inclusive on the wire; the engine works with an
		// exclusive upper bound.
		end := to.AddDate(0, 0, 1)
		filters.DateTo = &end
	}
	if filters.DateFrom != nil && filters.DateTo != nil && filters.DateTo.Before(*filters.DateFrom) {
		return domain.Filters{}, apperr.Validation("date_to must not precede date_from")
	}

	return filters, nil
}

// ResultView is a search result with its display metadata resolved.
type ResultView struct {
	domain.Result
	Display  present.Meta `json:"display"`
	Subtitle string       `json:"subtitle"`
}

type SearchResponse struct {
	Results       []ResultView       `json:"results"`
	Total         int                `json:"total"`
	HasMore       bool               `json:"hasMore"`
	NextCursor    string             `json:"nextCursor,omitempty"`
	ParsedQuery   domain.ParsedQuery `json:"parsedQuery"`
	SearchTimeMs  int64              `json:"searchTimeMs"`
	Degraded      bool               `json:"degraded,omitempty"`
	FailedSources int                `json:"failedSources,omitempty"`
}

// FromPage resolves display metadata and subtitles for a result page.
func FromPage(page *domain.Page, now time.Time) *SearchResponse {
	views := make([]ResultView, len(page.Results))
	for i, r := range page.Results {
		views[i] = ResultView{
			Result:   r,
			Display:  present.MetaFor(r.Type),
			Subtitle: present.Subtitle(r, now),
		}
	}
	return &SearchResponse{
		Results:       views,
		Total:         page.Total,
		HasMore:       page.HasMore,
		NextCursor:    page.NextCursor,
		ParsedQuery:   page.ParsedQuery,
		SearchTimeMs:  page.SearchTimeMs,
		Degraded:      page.Degraded,
		FailedSources: page.FailedSources,
	}
}

type SuggestRequest struct {
	Query string `form:"q" validate:"omitempty,max=200"`
}

type SuggestResponse struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
}

type RecentRequest struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=50"`
}

type RecordRecentRequest struct {
	Query string `json:"query" validate:"required,min=1,max=200"`
}

type RecentResponse struct {
	Items []domain.RecentSearch `json:"items"`
}

type SaveSearchRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Query string `json:"query" validate:"required,min=1,max=200"`
}

type SavedResponse struct {
	Items []domain.SavedSearch `json:"items"`
}
