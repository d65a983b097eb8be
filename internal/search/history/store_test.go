package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainevents "beacon_backend/internal/events"
	"beacon_backend/platform/apperr"
	platformevents "beacon_backend/platform/events"
	"beacon_backend/platform/logger"
)

type fakeConfig struct {
	cap     int
	display int
	window  time.Duration
}

func (c fakeConfig) GetRecentSearchCap() int          { return c.cap }
func (c fakeConfig) GetRecentSearchDisplay() int      { return c.display }
func (c fakeConfig) GetTrendingWindow() time.Duration { return c.window }

func newStore(t *testing.T, cfg fakeConfig) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, cfg, logger.New("test")), mr
}

func TestRecordRecentDedupesAndCaps(t *testing.T) {
	store, _ := newStore(t, fakeConfig{cap: 3, display: 5, window: time.Hour})
	ctx := context.Background()
	tenant, user := uuid.New(), uuid.New()

	for _, q := range []string{"alpha", "beta", "gamma", "delta"} {
		if err := store.RecordRecent(ctx, tenant, user, q); err != nil {
			t.Fatalf("RecordRecent(%q): %v", q, err)
		}
	}

	recent, err := store.ListRecent(ctx, tenant, user, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected cap of 3, got %d entries", len(recent))
	}
	if recent[0].Query != "delta" || recent[2].Query != "beta" {
		t.Fatalf("unexpected order: %+v", recent)
	}

	// Re-searching an existing query moves it to the top without duplicating.
	if err := store.RecordRecent(ctx, tenant, user, "beta"); err != nil {
		t.Fatalf("RecordRecent: %v", err)
	}
	recent, err = store.ListRecent(ctx, tenant, user, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(recent) != 3 || recent[0].Query != "beta" {
		t.Fatalf("expected beta promoted to head, got %+v", recent)
	}
	seen := map[string]int{}
	for _, r := range recent {
		seen[r.Query]++
	}
	if seen["beta"] != 1 {
		t.Fatalf("duplicate recent entry: %+v", recent)
	}
}

func TestRecordRecentIgnoresBlankQuery(t *testing.T) {
	store, _ := newStore(t, fakeConfig{cap: 3, display: 5, window: time.Hour})
	ctx := context.Background()
	tenant, user := uuid.New(), uuid.New()

	if err := store.RecordRecent(ctx, tenant, user, "   "); err != nil {
		t.Fatalf("RecordRecent: %v", err)
	}
	recent, err := store.ListRecent(ctx, tenant, user, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("blank query should not be recorded: %+v", recent)
	}
}

func TestListRecentDefaultsToDisplayCount(t *testing.T) {
	store, _ := newStore(t, fakeConfig{cap: 50, display: 2, window: time.Hour})
	ctx := context.Background()
	tenant, user := uuid.New(), uuid.New()

	for _, q := range []string{"one", "two", "three"} {
		if err := store.RecordRecent(ctx, tenant, user, q); err != nil {
			t.Fatalf("RecordRecent: %v", err)
		}
	}
	recent, err := store.ListRecent(ctx, tenant, user, 0)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected display default of 2, got %d", len(recent))
	}
}

func TestSavedSearchLifecycle(t *testing.T) {
	store, _ := newStore(t, fakeConfig{cap: 50, display: 5, window: time.Hour})
	ctx := context.Background()
	tenant, user := uuid.New(), uuid.New()

	first, err := store.SaveSearch(ctx, tenant, user, "At-risk renewals", "renewal status:at_risk")
	if err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}
	if _, err := store.SaveSearch(ctx, tenant, user, "QBR prep", "meetings this month"); err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}

	saved, err := store.ListSaved(ctx, tenant, user)
	if err != nil {
		t.Fatalf("ListSaved: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved searches, got %d", len(saved))
	}

	if err := store.DeleteSaved(ctx, tenant, user, first.ID); err != nil {
		t.Fatalf("DeleteSaved: %v", err)
	}
	saved, err = store.ListSaved(ctx, tenant, user)
	if err != nil {
		t.Fatalf("ListSaved: %v", err)
	}
	if len(saved) != 1 || saved[0].Name != "QBR prep" {
		t.Fatalf("unexpected saved searches after delete: %+v", saved)
	}

	err = store.DeleteSaved(ctx, tenant, user, first.ID)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSaveSearchValidation(t *testing.T) {
	store, _ := newStore(t, fakeConfig{cap: 50, display: 5, window: time.Hour})
	ctx := context.Background()
	tenant, user := uuid.New(), uuid.New()

	var appErr *apperr.Error
	if _, err := store.SaveSearch(ctx, tenant, user, "", "renewal"); !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
	if _, err := store.SaveSearch(ctx, tenant, user, "name", " "); !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error for empty query, got %v", err)
	}
}

func TestTopTrendingRanksByCommitCount(t *testing.T) {
	store, _ := newStore(t, fakeConfig{cap: 50, display: 5, window: time.Hour})
	ctx := context.Background()
	tenant := uuid.New()

	for i := 0; i < 3; i++ {
		if err := store.RecordRecent(ctx, tenant, uuid.New(), "renewal"); err != nil {
			t.Fatalf("RecordRecent: %v", err)
		}
	}
	if err := store.RecordRecent(ctx, tenant, uuid.New(), "onboarding"); err != nil {
		t.Fatalf("RecordRecent: %v", err)
	}

	trending, err := store.TopTrending(ctx, tenant, 2)
	if err != nil {
		t.Fatalf("TopTrending: %v", err)
	}
	if len(trending) != 2 || trending[0] != "renewal" {
		t.Fatalf("unexpected trending order: %v", trending)
	}
}

func TestSubscribeCommittedRecordsHistory(t *testing.T) {
	store, _ := newStore(t, fakeConfig{cap: 50, display: 5, window: time.Hour})
	ctx := context.Background()
	tenant, user := uuid.New(), uuid.New()

	bus := platformevents.NewInMemoryBus(logger.New("test"))
	store.SubscribeCommitted(bus)

	err := bus.PublishSync(ctx, domainevents.SearchCommitted{
		BaseEvent: domainevents.NewBaseEvent(),
		UserID:    user,
		TenantID:  tenant,
		Query:     "renewal risk",
	})
	if err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	recent, err := store.ListRecent(ctx, tenant, user, 5)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(recent) != 1 || recent[0].Query != "renewal risk" {
		t.Fatalf("committed search not recorded: %+v", recent)
	}
}
