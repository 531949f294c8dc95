package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hourbank/overtime/internal/overtime/cache"
	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/stretchr/testify/require"
)

// memoryCache is an in-process Cache for exercising the read-through path
// without a Redis container.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte

	gets, sets, deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func submitEntry(t *testing.T, svc *EntryService, sess domain.Session, date, start, end string) {
	t.Helper()
	_, err := svc.Submit(context.Background(), sess, SubmitInput{
		Date: date, StartTime: start, EndTime: end,
	})
	require.NoError(t, err)
}

func TestOverviewAdminSeesAllVisibleUsers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	entries := newEntryService(st)

	alice := seedUser(t, st, "alice", "Alice", domain.RoleUser, "secret")
	bob := seedUser(t, st, "bob", "Bob", domain.RoleUser, "secret")
	admin := seedUser(t, st, "root", "Root", domain.RoleAdmin, "secret")

	submitEntry(t, entries, sessionFor(alice), "2026-03-02", "09:00", "17:30")
	submitEntry(t, entries, sessionFor(alice), "2026-03-02", "18:00", "19:15")
	submitEntry(t, entries, sessionFor(bob), "2026-03-03", "10:00", "11:00")

	svc := &DashboardService{
		Store:  st,
		Cache:  cache.Noop{},
		Policy: domain.HideUsernames("root"),
	}

	rows, err := svc.Overview(ctx, sessionFor(admin))
	require.NoError(t, err)
	require.Len(t, rows, 2, "denylisted admin account must not appear")

	byUsername := map[string]OverviewRow{}
	for _, r := range rows {
		byUsername[r.Username] = r
	}

	require.Equal(t, 2, byUsername["alice"].EntryCount)
	require.Equal(t, "9.75", byUsername["alice"].TotalHours)
	require.Equal(t, "9h45min", byUsername["alice"].TotalLabel)

	require.Equal(t, 1, byUsername["bob"].EntryCount)
	require.Equal(t, "1h", byUsername["bob"].TotalLabel)
}

func TestOverviewNonAdminSeesOnlySelf(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	entries := newEntryService(st)

	alice := seedUser(t, st, "alice", "Alice", domain.RoleUser, "secret")
	bob := seedUser(t, st, "bob", "Bob", domain.RoleUser, "secret")

	submitEntry(t, entries, sessionFor(alice), "2026-03-02", "09:00", "10:00")
	submitEntry(t, entries, sessionFor(bob), "2026-03-02", "09:00", "12:00")

	svc := &DashboardService{Store: st, Cache: cache.Noop{}, Policy: domain.AllUsers}

	rows, err := svc.Overview(ctx, sessionFor(alice))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "alice", rows[0].Username)
	require.Equal(t, 1, rows[0].EntryCount)
	require.Equal(t, time.Hour, rows[0].Total)
}

func TestOverviewRequiresAuthentication(t *testing.T) {
	st := newTestStore(t)
	svc := &DashboardService{Store: st, Cache: cache.Noop{}}

	_, err := svc.Overview(context.Background(), domain.Session{})
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestOverviewAdminUsesCache(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	mem := newMemoryCache()

	alice := seedUser(t, st, "alice", "Alice", domain.RoleUser, "secret")
	admin := seedUser(t, st, "root", "Root", domain.RoleAdmin, "secret")

	entries := &EntryService{Store: st, Cache: mem}
	submitEntry(t, entries, sessionFor(alice), "2026-03-02", "09:00", "10:00")

	svc := &DashboardService{Store: st, Cache: mem, Policy: domain.AllUsers, CacheTTL: time.Minute}

	first, err := svc.Overview(ctx, sessionFor(admin))
	require.NoError(t, err)
	require.Equal(t, 1, mem.sets, "miss should populate the cache")

	second, err := svc.Overview(ctx, sessionFor(admin))
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, mem.sets, "hit must not rewrite the cache")

	// A write invalidates; the next read rebuilds
	submitEntry(t, entries, sessionFor(alice), "2026-03-03", "09:00", "11:00")

	third, err := svc.Overview(ctx, sessionFor(admin))
	require.NoError(t, err)
	require.Equal(t, 2, mem.sets)
	require.Equal(t, 2, third[findRow(t, third, "alice")].EntryCount)
}

func findRow(t *testing.T, rows []OverviewRow, username string) int {
	t.Helper()
	for i, r := range rows {
		if r.Username == username {
			return i
		}
	}
	t.Fatalf("no row for %q", username)
	return -1
}
