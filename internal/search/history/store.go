// Package history persists per-user search history in Redis: a capped,
// deduplicated recent list, an uncapped set of saved searches, and per-tenant
// trending query counters.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainevents "beacon_backend/internal/events"
	"beacon_backend/internal/search/domain"
	"beacon_backend/platform/apperr"
	"beacon_backend/platform/config"
	"beacon_backend/platform/events"
	"beacon_backend/platform/logger"
)

type Store struct {
	rdb *redis.Client
	cfg config.HistoryConfig
	log *logger.Logger
}

func New(rdb *redis.Client, cfg config.HistoryConfig, log *logger.Logger) *Store {
	return &Store{rdb: rdb, cfg: cfg, log: log}
}

func recentKey(tenantID, userID uuid.UUID) string {
	return fmt.Sprintf("search:recent:%s:%s", tenantID, userID)
}

func savedKey(tenantID, userID uuid.UUID) string {
	return fmt.Sprintf("search:saved:%s:%s", tenantID, userID)
}

func trendingKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("search:trending:%s", tenantID)
}

// RecordRecent stores a committed query at the head of the user's recent
// list and bumps the tenant trending counter. Recent entries live in a
// sorted set scored by commit time, which gives exact-text dedupe for free:
// re-searching an old query moves it back to the top instead of duplicating
// it. The set is trimmed to the configured cap.
func (s *Store) RecordRecent(ctx context.Context, tenantID, userID uuid.UUID, rawQuery string) error {
	q := strings.TrimSpace(rawQuery)
	if q == "" {
		return nil
	}

	now := time.Now()
	pipe := s.rdb.TxPipeline()
	pipe.ZAdd(ctx, recentKey(tenantID, userID), redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: q,
	})
	pipe.ZRemRangeByRank(ctx, recentKey(tenantID, userID), 0, int64(-(s.cfg.GetRecentSearchCap() + 1)))
	pipe.ZIncrBy(ctx, trendingKey(tenantID), 1, q)
	pipe.Expire(ctx, trendingKey(tenantID), s.cfg.GetTrendingWindow())
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "failed to record recent search", err).WithOp("history.RecordRecent")
	}
	return nil
}

// ListRecent returns the user's most recent committed queries, newest first.
// A non-positive limit falls back to the configured display count.
func (s *Store) ListRecent(ctx context.Context, tenantID, userID uuid.UUID, limit int) ([]domain.RecentSearch, error) {
	if limit <= 0 {
		limit = s.cfg.GetRecentSearchDisplay()
	}
	if cap := s.cfg.GetRecentSearchCap(); limit > cap {
		limit = cap
	}

	entries, err := s.rdb.ZRevRangeWithScores(ctx, recentKey(tenantID, userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed to list recent searches", err).WithOp("history.ListRecent")
	}

	recent := make([]domain.RecentSearch, 0, len(entries))
	for _, entry := range entries {
		q, ok := entry.Member.(string)
		if !ok {
			continue
		}
		recent = append(recent, domain.RecentSearch{
			ID:         q,
			Query:      q,
			SearchedAt: time.UnixMilli(int64(entry.Score)),
		})
	}
	return recent, nil
}

// ClearRecent drops the user's entire recent list.
func (s *Store) ClearRecent(ctx context.Context, tenantID, userID uuid.UUID) error {
	if err := s.rdb.Del(ctx, recentKey(tenantID, userID)).Err(); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "failed to clear recent searches", err).WithOp("history.ClearRecent")
	}
	return nil
}

// SaveSearch stores a named search. Saved searches are uncapped and survive
// until deleted.
func (s *Store) SaveSearch(ctx context.Context, tenantID, userID uuid.UUID, name, query string) (*domain.SavedSearch, error) {
	name = strings.TrimSpace(name)
	query = strings.TrimSpace(query)
	if name == "" {
		return nil, apperr.Validation("saved search name is required").WithOp("history.SaveSearch")
	}
	if query == "" {
		return nil, apperr.Validation("saved search query is required").WithOp("history.SaveSearch")
	}

	saved := domain.SavedSearch{
		ID:        uuid.NewString(),
		Name:      name,
		Query:     query,
		CreatedAt: time.Now(),
	}
	raw, err := json.Marshal(saved)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.HSet(ctx, savedKey(tenantID, userID), saved.ID, raw).Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed to save search", err).WithOp("history.SaveSearch")
	}
	return &saved, nil
}

// ListSaved returns all saved searches, newest first.
func (s *Store) ListSaved(ctx context.Context, tenantID, userID uuid.UUID) ([]domain.SavedSearch, error) {
	raw, err := s.rdb.HGetAll(ctx, savedKey(tenantID, userID)).Result()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed to list saved searches", err).WithOp("history.ListSaved")
	}

	saved := make([]domain.SavedSearch, 0, len(raw))
	for id, entry := range raw {
		var item domain.SavedSearch
		if err := json.Unmarshal([]byte(entry), &item); err != nil {
			s.log.Warn("dropping unreadable saved search", "id", id, "error", err)
			continue
		}
		saved = append(saved, item)
	}
	sort.Slice(saved, func(i, j int) bool {
		if !saved[i].CreatedAt.Equal(saved[j].CreatedAt) {
			return saved[i].CreatedAt.After(saved[j].CreatedAt)
		}
		return saved[i].ID < saved[j].ID
	})
	return saved, nil
}

// DeleteSaved removes one saved search by id.
func (s *Store) DeleteSaved(ctx context.Context, tenantID, userID uuid.UUID, id string) error {
	removed, err := s.rdb.HDel(ctx, savedKey(tenantID, userID), id).Result()
	if err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "failed to delete saved search", err).WithOp("history.DeleteSaved")
	}
	if removed == 0 {
		return apperr.NotFound("saved search not found").WithOp("history.DeleteSaved")
	}
	return nil
}

// TopTrending returns the tenant's most committed queries inside the
// trending window, most popular first.
func (s *Store) TopTrending(ctx context.Context, tenantID uuid.UUID, n int) ([]string, error) {
	if n <= 0 {
		n = s.cfg.GetRecentSearchDisplay()
	}
	queries, err := s.rdb.ZRevRange(ctx, trendingKey(tenantID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed to list trending searches", err).WithOp("history.TopTrending")
	}
	return queries, nil
}

// SubscribeCommitted wires the store to the committed-search event so
// recording stays decoupled from the search and session flows.
func (s *Store) SubscribeCommitted(bus events.Bus) {
	bus.Subscribe("search.committed", events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		committed, ok := e.(domainevents.SearchCommitted)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", e.EventName())
		}
		return s.RecordRecent(ctx, committed.TenantID, committed.UserID, committed.Query)
	}))
}
