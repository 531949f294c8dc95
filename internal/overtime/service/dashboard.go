package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hourbank/overtime/internal/overtime/cache"
	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/store"
	"github.com/hourbank/overtime/pkg/slogx"
)

// OverviewRow is one user's aggregate on the dashboard. TotalHours and
// TotalLabel are both rendered from the same Total value.
type OverviewRow struct {
	UserID     string        `json:"user_id"`
	Username   string        `json:"username"`
	Name       string        `json:"name"`
	Role       domain.Role   `json:"role"`
	EntryCount int           `json:"entry_count"`
	Total      time.Duration `json:"total"`
	TotalHours string        `json:"total_hours"`
	TotalLabel string        `json:"total_label"`
}

// DashboardService computes per-user aggregate rows. The admin view is cached
// read-through with a TTL; entry writes invalidate it.
type DashboardService struct {
	Store    store.Store
	Cache    cache.Cache
	Policy   domain.VisibilityPolicy
	CacheTTL time.Duration
}

// Overview returns aggregate rows for the caller. An ADMIN session sees every
// user passing the visibility policy; any other session sees exactly one row,
// its own.
func (s *DashboardService) Overview(ctx context.Context, sess domain.Session) ([]OverviewRow, error) {
	if !sess.Authenticated() {
		return nil, ErrUnauthenticated
	}

	if !sess.Role.IsAdmin() {
		return s.ownRow(ctx, sess)
	}

	if rows, ok := s.cachedRows(ctx); ok {
		return rows, nil
	}

	rows, err := s.buildAdminRows(ctx)
	if err != nil {
		return nil, err
	}

	s.storeRows(ctx, rows)
	return rows, nil
}

func (s *DashboardService) ownRow(ctx context.Context, sess domain.Session) ([]OverviewRow, error) {
	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if err != nil {
		return nil, repositoryError(err)
	}

	entries, err := s.Store.Entries().ListEntriesByUser(ctx, user.ID)
	if err != nil {
		return nil, repositoryError(err)
	}

	var total time.Duration
	for _, e := range entries {
		total += e.Duration()
	}

	return []OverviewRow{newOverviewRow(user, len(entries), total)}, nil
}

func (s *DashboardService) buildAdminRows(ctx context.Context) ([]OverviewRow, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, repositoryError(err)
	}

	entries, err := s.Store.Entries().ListEntriesWithOwners(ctx)
	if err != nil {
		return nil, repositoryError(err)
	}

	type agg struct {
		count int
		total time.Duration
	}
	byUser := make(map[string]agg, len(users))
	for _, e := range entries {
		a := byUser[e.UserID]
		a.count++
		a.total += e.Duration()
		byUser[e.UserID] = a
	}

	policy := s.Policy
	if policy == nil {
		policy = domain.AllUsers
	}

	rows := make([]OverviewRow, 0, len(users))
	for _, u := range users {
		if !policy(u) {
			continue
		}
		a := byUser[u.ID]
		rows = append(rows, newOverviewRow(u, a.count, a.total))
	}
	return rows, nil
}

func newOverviewRow(u domain.User, count int, total time.Duration) OverviewRow {
	return OverviewRow{
		UserID:     u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Role:       u.Role,
		EntryCount: count,
		Total:      total,
		TotalHours: domain.Hours(total),
		TotalLabel: domain.FormatDuration(total),
	}
}

// cachedRows attempts a cache read. Any failure counts as a miss.
func (s *DashboardService) cachedRows(ctx context.Context) ([]OverviewRow, bool) {
	if s.Cache == nil || s.CacheTTL <= 0 {
		return nil, false
	}

	raw, err := s.Cache.Get(ctx, OverviewCacheKey)
	if err != nil {
		if err != cache.ErrMiss {
			slogx.FromContext(ctx).Warn("dashboard cache read failed", "err", err)
		}
		return nil, false
	}

	var rows []OverviewRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		slogx.FromContext(ctx).Warn("dashboard cache entry corrupt", "err", err)
		return nil, false
	}
	return rows, true
}

// storeRows writes the overview to cache best-effort.
func (s *DashboardService) storeRows(ctx context.Context, rows []OverviewRow) {
	if s.Cache == nil || s.CacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, OverviewCacheKey, raw, s.CacheTTL); err != nil {
		slogx.FromContext(ctx).Warn("dashboard cache write failed", "err", err)
	}
}
