// Package domain defines the core types of the universal search module:
// searchable entity types, filters, results, suggestions, and history shapes.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// SearchableType is the closed enumeration of entity types the universal
// search can return. Adding a type requires updating the presentation maps
// and the repository source list together.
type SearchableType string

const (
	TypeCustomer    SearchableType = "customer"
	TypeStakeholder SearchableType = "stakeholder"
	TypeEmail       SearchableType = "email"
	TypeMeeting     SearchableType = "meeting"
	TypeDocument    SearchableType = "document"
	TypePlaybook    SearchableType = "playbook"
	TypeTask        SearchableType = "task"
	TypeNote        SearchableType = "note"
	TypeActivity    SearchableType = "activity"
)

// AllTypes lists every SearchableType. Order is not significant here;
// ranking tie-breaks use Priority.
var AllTypes = []SearchableType{
	TypeCustomer,
	TypeStakeholder,
	TypeEmail,
	TypeMeeting,
	TypeDocument,
	TypePlaybook,
	TypeTask,
	TypeNote,
	TypeActivity,
}

// typePriority fixes the deterministic tie-break order across types.
// Lower value sorts first.
var typePriority = map[SearchableType]int{
	TypeCustomer:    0,
	TypeStakeholder: 1,
	TypeTask:        2,
	TypeNote:        3,
	TypeActivity:    4,
	TypeDocument:    5,
	TypeEmail:       6,
	TypeMeeting:     7,
	TypePlaybook:    8,
}

// Priority returns the tie-break rank of a type. Unknown types sort last.
func (t SearchableType) Priority() int {
	if p, ok := typePriority[t]; ok {
		return p
	}
	return len(typePriority)
}

// Valid reports whether t is a member of the enumeration.
func (t SearchableType) Valid() bool {
	_, ok := typePriority[t]
	return ok
}

// Filters holds the explicit, structured constraints of a query. The key set
// is closed: types, owner_id, date_from, date_to. Transport-level parsing
// rejects anything else so the filter badge count stays accurate.
type Filters struct {
	Types    []SearchableType `json:"types,omitempty"`
	OwnerID  *uuid.UUID       `json:"owner_id,omitempty"`
	DateFrom *time.Time       `json:"date_from,omitempty"`
	DateTo   *time.Time       `json:"date_to,omitempty"`
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return len(f.Types) == 0 && f.OwnerID == nil && f.DateFrom == nil && f.DateTo == nil
}

// Count returns the number of active filter keys, used for the UI badge.
func (f Filters) Count() int {
	n := 0
	if len(f.Types) > 0 {
		n++
	}
	if f.OwnerID != nil {
		n++
	}
	if f.DateFrom != nil {
		n++
	}
	if f.DateTo != nil {
		n++
	}
	return n
}

// HasType reports whether the type filter includes t (an empty type filter
// matches every type).
func (f Filters) HasType(t SearchableType) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, ft := range f.Types {
		if ft == t {
			return true
		}
	}
	return false
}

// ParsedQuery is the output of the query normalizer. Intent is advisory text
// shown to the user; inferred filters never override explicit ones.
type ParsedQuery struct {
	Text    string   `json:"text"`
	Terms   []string `json:"terms"`
	Intent  string   `json:"natural_language_intent,omitempty"`
	Filters Filters  `json:"filters"`
}

// IsEmpty reports whether the query carries neither text nor filters,
// which puts the session in suggestions mode.
func (q ParsedQuery) IsEmpty() bool {
	return q.Text == "" && q.Filters.IsZero()
}

// ActionKind names a quick action available on a result.
type ActionKind string

const (
	ActionOpen     ActionKind = "open"
	ActionPreview  ActionKind = "preview"
	ActionCopyLink ActionKind = "copy_link"
)

// Highlight carries the marked-up variants of a result's display fields.
// Marks wrap only the matched substrings; text outside marks is unmodified.
type Highlight struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

// Metadata carries type-specific display context for a result.
type Metadata struct {
	CustomerName string     `json:"customer_name,omitempty"`
	From         string     `json:"from,omitempty"`
	Attendees    int        `json:"attendees,omitempty"`
	Status       string     `json:"status,omitempty"`
	OwnerID      *uuid.UUID `json:"owner_id,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
}

// Result is one ranked hit in the merged result list.
type Result struct {
	ID             uuid.UUID      `json:"id"`
	Type           SearchableType `json:"type"`
	Title          string         `json:"title"`
	Snippet        string         `json:"snippet,omitempty"`
	Highlight      *Highlight     `json:"highlight,omitempty"`
	Metadata       Metadata       `json:"metadata"`
	RelevanceScore float64        `json:"relevance_score"`
	Actions        []ActionKind   `json:"actions"`
}

// Page is the paginated outcome of one search request. HasMore is
// authoritative; clients must not infer it from page size.
type Page struct {
	Results       []Result    `json:"results"`
	Total         int         `json:"total"`
	HasMore       bool        `json:"hasMore"`
	NextCursor    string      `json:"nextCursor,omitempty"`
	ParsedQuery   ParsedQuery `json:"parsedQuery"`
	SearchTimeMs  int64       `json:"searchTimeMs"`
	Degraded      bool        `json:"degraded,omitempty"`
	FailedSources int         `json:"failedSources,omitempty"`
}

// SuggestionCategory groups suggestions in the empty-query state.
type SuggestionCategory string

const (
	CategoryRecent   SuggestionCategory = "recent"
	CategorySaved    SuggestionCategory = "saved"
	CategoryCustomer SuggestionCategory = "customer"
	CategoryTrending SuggestionCategory = "trending"
)

// Suggestion is one entry shown while the query box is empty. Ordering is
// engine-defined, not relevance-scored.
type Suggestion struct {
	Type     string             `json:"type"`
	Text     string             `json:"text"`
	Category SuggestionCategory `json:"category"`
	Metadata *Metadata          `json:"metadata,omitempty"`
}

// RecentSearch is an append-only, capped, de-duplicated history entry.
type RecentSearch struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	SearchedAt time.Time `json:"searched_at"`
}

// SavedSearch is a user-curated named query. Saved searches are never
// evicted automatically.
type SavedSearch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

// NavigationIntent is emitted to the host application when a result or
// suggestion is selected. The search core holds no routing knowledge.
type NavigationIntent struct {
	Type     SearchableType `json:"type"`
	ID       string         `json:"id"`
	Metadata Metadata       `json:"metadata"`
}
