// Package repository implements full-text retrieval for the universal search
// module. Each searchable type is queried independently so a failing source
// degrades the result set instead of failing the whole search.
package repository

import (
	"context"
	"fmt"
	"time"

	"beacon_backend/internal/search/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository executes per-source FTS queries against Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a search repository backed by the given pool.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SourceQuery carries the structured constraints for one source search.
// Text is fed to websearch_to_tsquery; empty text means match-all ordered by
// recency (filters-only search).
type SourceQuery struct {
	Text     string
	OwnerID  *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// Row is the uniform shape every source query returns. Fields that do not
// apply to a source come back zero-valued.
type Row struct {
	ID           uuid.UUID
	Title        string
	Snippet      string
	Rank         float32
	LastActivity time.Time
	CustomerName string
	FromAddress  string
	Attendees    int
	Status       string
	OwnerID      *uuid.UUID
	Total        int64
}

// Every source query selects the same column list so one scan loop serves
// all of them:
//
//	id, title, snippet, rank, last_activity, customer_name, from_address,
//	attendee_count, status, owner_id, total
//
// Argument convention: $1 tenant, $2 query text, $3 owner, $4 date from,
// $5 date to, $6 limit, $7 offset.
var sourceSQL = map[domain.SearchableType]string{
	domain.TypeCustomer: `
		SELECT c.id, c.name, left(c.description, 240),
			CASE WHEN $2 = '' THEN 0 ELSE ts_rank(
				setweight(to_tsvector('english', coalesce(c.name, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(c.domain, '')), 'B') ||
				setweight(to_tsvector('english', coalesce(c.description, '')), 'C'),
				websearch_to_tsquery('english', $2)) END,
			c.updated_at, '', '', 0, c.health_status, c.owner_id,
			COUNT(*) OVER ()
		FROM customers c
		WHERE c.tenant_id = $1
			AND ($2 = '' OR (
				setweight(to_tsvector('english', coalesce(c.name, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(c.domain, '')), 'B') ||
				setweight(to_tsvector('english', coalesce(c.description, '')), 'C')
			) @@ websearch_to_tsquery('english', $2))
			AND ($3::uuid IS NULL OR c.owner_id = $3)
			AND ($4::timestamptz IS NULL OR c.updated_at >= $4)
			AND ($5::timestamptz IS NULL OR c.updated_at < $5)
		ORDER BY 4 DESC, c.updated_at DESC, c.id
		LIMIT $6 OFFSET $7`,

	domain.TypeStakeholder: `
		SELECT s.id, s.name, s.title,
			CASE WHEN $2 = '' THEN 0 ELSE ts_rank(
				setweight(to_tsvector('simple', coalesce(s.name, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(s.email, '')), 'B') ||
				setweight(to_tsvector('english', coalesce(s.title, '')), 'C'),
				websearch_to_tsquery('simple', $2)) END,
			s.updated_at, c.name, s.email, 0, '', s.owner_id,
			COUNT(*) OVER ()
		FROM stakeholders s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.tenant_id = $1
			AND ($2 = '' OR (
				setweight(to_tsvector('simple', coalesce(s.name, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(s.email, '')), 'B') ||
				setweight(to_tsvector('english', coalesce(s.title, '')), 'C')
			) @@ websearch_to_tsquery('simple', $2))
			AND ($3::uuid IS NULL OR s.owner_id = $3)
			AND ($4::timestamptz IS NULL OR s.updated_at >= $4)
			AND ($5::timestamptz IS NULL OR s.updated_at < $5)
		ORDER BY 4 DESC, s.updated_at DESC, s.id
		LIMIT $6 OFFSET $7`,

	domain.TypeEmail: `
		SELECT e.id, e.subject, left(e.body, 240),
			CASE WHEN $2 = '' THEN 0 ELSE ts_rank(
				setweight(to_tsvector('english', coalesce(e.subject, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(e.from_address, '')), 'B') ||
				setweight(to_tsvector('english', coalesce(e.body, '')), 'C'),
				websearch_to_tsquery('english', $2)) END,
			e.sent_at, c.name, e.from_address, 0, '', e.owner_id,
			COUNT(*) OVER ()
		FROM emails e
		JOIN customers c ON c.id = e.customer_id
		WHERE e.tenant_id = $1
			AND ($2 = '' OR (
				setweight(to_tsvector('english', coalesce(e.subject, '')), 'A') ||
				setweight(to_tsvector('simple', coalesce(e.from_address, '')), 'B') ||
				setweight(to_tsvector('english', coalesce(e.body, '')), 'C')
			) @@ websearch_to_tsquery('english', $2))
			AND ($3::uuid IS NULL OR e.owner_id = $3)
			AND ($4::timestamptz IS NULL OR e.sent_at >= $4)
			AND ($5::timestamptz IS NULL OR e.sent_at < $5)
		ORDER BY 4 DESC, e.sent_at DESC, e.id
		LIMIT $6 OFFSET $7`,

	domain.TypeMeeting: `
		SELECT m.id, m.title, left(m.notes, 240),
			CASE WHEN $2 = '' THEN 0 ELSE ts_rank(
				setweight(to_tsvector('english', coalesce(m.title, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(m.notes, '')), 'C'),
				websearch_to_tsquery('english', $2)) END,
			m.scheduled_at, c.name, '', m.attendee_count, '', m.owner_id,
			COUNT(*) OVER ()
		FROM meetings m
		JOIN customers c ON c.id = m.customer_id
		WHERE m.tenant_id = $1
			AND ($2 = '' OR (
				setweight(to_tsvector('english', coalesce(m.title, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(m.notes, '')), 'C')
			) @@ websearch_to_tsquery('english', $2))
			AND ($3::uuid IS NULL OR m.owner_id = $3)
			AND ($4::timestamptz IS NULL OR m.scheduled_at >= $4)
			AND ($5::timestamptz IS NULL OR m.scheduled_at < $5)
		ORDER BY 4 DESC, m.scheduled_at DESC, m.id
		LIMIT $6 OFFSET $7`,

	domain.TypeDocument: `
		SELECT d.id, d.title, left(d.content, 240),
			CASE WHEN $2 = '' THEN 0 ELSE ts_rank(
				setweight(to_tsvector('english', coalesce(d.title, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(d.content, '')), 'C'),
				websearch_to_tsquery('english', $2)) END,
			d.updated_at, coalesce(c.name, ''), '', 0, '', d.owner_id,
			COUNT(*) OVER ()
		FROM documents d
		LEFT JOIN customers c ON c.id = d.customer_id
		WHERE d.tenant_id = $1
			AND ($2 = '' OR (
				setweight(to_tsvector('english', coalesce(d.title, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(d.content, '')), 'C')
			) @@ websearch_to_tsquery('english', $2))
			AND ($3::uuid IS NULL OR d.owner_id = $3)
			AND ($4::timestamptz IS NULL OR d.updated_at >= $4)
			AND ($5::timestamptz IS NULL OR d.updated_at < $5)
		ORDER BY 4 DESC, d.updated_at DESC, d.id
		LIMIT $6 OFFSET $7`,

	domain.TypePlaybook: `
		SELECT p.id, p.name, left(p.description, 240),
			CASE WHEN $2 = '' THEN 0 ELSE ts_rank(
				setweight(to_tsvector('english', coalesce(p.name, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(p.description, '')), 'C'),
				websearch_to_tsquery('english', $2)) END,
			p.updated_at, '', '', 0, '', p.owner_id,
			COUNT(*) OVER ()
		FROM playbooks p
		WHERE p.tenant_id = $1
			AND ($2 = '' OR (
				setweight(to_tsvector('english', coalesce(p.name, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(p.description, '')), 'C')
			) @@ websearch_to_tsquery('english', $2))
			AND ($3::uuid IS NULL OR p.owner_id = $3)
			AND ($4::timestamptz IS NULL OR p.updated_at >= $4)
			AND ($5::timestamptz IS NULL OR p.updated_at < $5)
		ORDER BY 4 DESC, p.updated_at DESC, p.id
		LIMIT $6 OFFSET $7`,

	domain.TypeTask: `
		SELECT t.id, t.title, left(t.description, 240),
			CASE WHEN $2 = '' THEN 0 ELSE ts_rank(
				setweight(to_tsvector('english', coalesce(t.title, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(t.description, '')), 'C'),
				websearch_to_tsquery('english', $2)) END,
			t.updated_at, coalesce(c.name, ''), '', 0, t.status, t.owner_id,
			COUNT(*) OVER ()
		FROM tasks t
		LEFT JOIN customers c ON c.id = t.customer_id
		WHERE t.tenant_id = $1
			AND ($2 = '' OR (
				setweight(to_tsvector('english', coalesce(t.title, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(t.description, '')), 'C')
			) @@ websearch_to_tsquery('english', $2))
			AND ($3::uuid IS NULL OR t.owner_id = $3)
			AND ($4::timestamptz IS NULL OR t.updated_at >= $4)
			AND ($5::timestamptz IS NULL OR t.updated_at < $5)
		ORDER BY 4 DESC, t.updated_at DESC, t.id
		LIMIT $6 OFFSET $7`,

	domain.TypeNote: `
		SELECT n.id, coalesce(nullif(n.title, ''), left(n.body, 60)), left(n.body, 240),
			CASE WHEN $2 = '' THEN 0 ELSE ts_rank(
				setweight(to_tsvector('english', coalesce(n.title, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(n.body, '')), 'C'),
				websearch_to_tsquery('english', $2)) END,
			n.updated_at, c.name, '', 0, '', n.owner_id,
			COUNT(*) OVER ()
		FROM notes n
		JOIN customers c ON c.id = n.customer_id
		WHERE n.tenant_id = $1
			AND ($2 = '' OR (
				setweight(to_tsvector('english', coalesce(n.title, '')), 'A') ||
				setweight(to_tsvector('english', coalesce(n.body, '')), 'C')
			) @@ websearch_to_tsquery('english', $2))
			AND ($3::uuid IS NULL OR n.owner_id = $3)
			AND ($4::timestamptz IS NULL OR n.updated_at >= $4)
			AND ($5::timestamptz IS NULL OR n.updated_at < $5)
		ORDER BY 4 DESC, n.updated_at DESC, n.id
		LIMIT $6 OFFSET $7`,

	domain.TypeActivity: `
		SELECT a.id, a.summary, a.kind,
			CASE WHEN $2 = '' THEN 0 ELSE ts_rank(
				setweight(to_tsvector('english', coalesce(a.summary, '')), 'A'),
				websearch_to_tsquery('english', $2)) END,
			a.occurred_at, c.name, '', 0, a.kind, a.owner_id,
			COUNT(*) OVER ()
		FROM activities a
		JOIN customers c ON c.id = a.customer_id
		WHERE a.tenant_id = $1
			AND ($2 = '' OR (
				setweight(to_tsvector('english', coalesce(a.summary, '')), 'A')
			) @@ websearch_to_tsquery('english', $2))
			AND ($3::uuid IS NULL OR a.owner_id = $3)
			AND ($4::timestamptz IS NULL OR a.occurred_at >= $4)
			AND ($5::timestamptz IS NULL OR a.occurred_at < $5)
		ORDER BY 4 DESC, a.occurred_at DESC, a.id
		LIMIT $6 OFFSET $7`,
}

// SearchSource runs the FTS query for one searchable type.
func (r *Repository) SearchSource(ctx context.Context, tenantID uuid.UUID, t domain.SearchableType, q SourceQuery) ([]Row, error) {
	querySQL, ok := sourceSQL[t]
	if !ok {
		return nil, fmt.Errorf("unknown searchable type %q", t)
	}

	rows, err := r.pool.Query(ctx, querySQL,
		tenantID, q.Text, q.OwnerID, q.DateFrom, q.DateTo, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("fts %s search failed: %w", t, err)
	}
	defer rows.Close()

	items := make([]Row, 0)
	for rows.Next() {
		var item Row
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Snippet,
			&item.Rank,
			&item.LastActivity,
			&item.CustomerName,
			&item.FromAddress,
			&item.Attendees,
			&item.Status,
			&item.OwnerID,
			&item.Total,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}

// TopCustomersByActivity returns the customers with the most recent activity,
// used to seed the suggestions panel.
func (r *Repository) TopCustomersByActivity(ctx context.Context, tenantID uuid.UUID, limit int) ([]Row, error) {
	querySQL := `
		SELECT c.id, c.name, left(c.description, 240), 0::float4,
			coalesce(max(a.occurred_at), c.updated_at), '', '', 0,
			c.health_status, c.owner_id, COUNT(*) OVER ()
		FROM customers c
		LEFT JOIN activities a ON a.customer_id = c.id
		WHERE c.tenant_id = $1
		GROUP BY c.id
		ORDER BY 5 DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, querySQL, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("top customers query failed: %w", err)
	}
	defer rows.Close()

	items := make([]Row, 0, limit)
	for rows.Next() {
		var item Row
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Snippet,
			&item.Rank,
			&item.LastActivity,
			&item.CustomerName,
			&item.FromAddress,
			&item.Attendees,
			&item.Status,
			&item.OwnerID,
			&item.Total,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}
