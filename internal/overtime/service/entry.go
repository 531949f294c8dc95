package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hourbank/overtime/internal/overtime/cache"
	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/store"
	"github.com/hourbank/overtime/pkg/idx"
	"github.com/hourbank/overtime/pkg/slogx"
)

// OverviewCacheKey is the cache key for the admin dashboard overview. Entry
// writes invalidate it so the dashboard never serves stale totals past a TTL.
const OverviewCacheKey = "overtime:dashboard:overview"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// EntryService is the sole gate through which overtime entries are created,
// removed and aggregated.
type EntryService struct {
	Store store.Store
	Cache cache.Cache
}

// SubmitInput carries the caller-supplied string form of a new entry.
// TargetUsername names a different account to submit on behalf of; empty
// means the session's own account.
type SubmitInput struct {
	Date           string
	StartTime      string
	EndTime        string
	Description    string
	TargetUsername string
}

// Submit validates, authorizes and persists one overtime entry.
//
// Checks run in a fixed order so failures are deterministic:
//
//  1. the session must be authenticated (ErrUnauthenticated)
//  2. a target username must be resolvable (ErrMissingTarget)
//  3. submitting for another user requires ADMIN (ErrForbidden); username
//     comparison is case-insensitive since usernames are case-insensitive
//     identities
//  4. date and times must parse (ErrInvalidInput)
//  5. the end must be strictly after the start (ErrInvalidTimeRange)
//  6. the target must exist, matched case-insensitively
//     (*TargetUserNotFoundError carrying the supplied spelling)
//
// Owner resolution and the insert run in one transaction, so a user removed
// mid-flight fails cleanly as target-not-found instead of creating an orphan.
// The entry is durably committed before Submit returns.
func (s *EntryService) Submit(ctx context.Context, sess domain.Session, in SubmitInput) (domain.Entry, error) {
	if !sess.Authenticated() {
		return domain.Entry{}, ErrUnauthenticated
	}

	target := strings.TrimSpace(in.TargetUsername)
	if target == "" {
		target = strings.TrimSpace(sess.Username)
	}
	if target == "" {
		return domain.Entry{}, ErrMissingTarget
	}

	if !strings.EqualFold(target, sess.Username) && !sess.Role.IsAdmin() {
		return domain.Entry{}, ErrForbidden
	}

	date, startAt, endAt, err := parseEntryTimes(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return domain.Entry{}, ErrInvalidInput
	}

	if !endAt.After(startAt) {
		return domain.Entry{}, ErrInvalidTimeRange
	}

	entry := domain.Entry{
		ID:          idx.New().String(),
		Date:        date,
		StartAt:     startAt,
		EndAt:       endAt,
		Description: strings.TrimSpace(in.Description),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		owner, err := tx.Users().GetUserByUsername(ctx, target)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &TargetUserNotFoundError{Username: target}
			}
			return err
		}

		entry.UserID = owner.ID
		if err := tx.Entries().CreateEntry(ctx, entry); err != nil {
			// The owner row vanished between resolution and insert.
			if errors.Is(err, store.ErrForeignKey) {
				return &TargetUserNotFoundError{Username: target}
			}
			return err
		}
		return nil
	})
	if err != nil {
		var notFound *TargetUserNotFoundError
		if errors.As(err, &notFound) {
			return domain.Entry{}, notFound
		}
		return domain.Entry{}, repositoryError(err)
	}

	s.invalidate(ctx)
	return entry, nil
}

// Remove permanently deletes an entry. Only the owner or an ADMIN may remove
// it; removing a missing id is ErrEntryNotFound rather than a silent no-op.
func (s *EntryService) Remove(ctx context.Context, sess domain.Session, entryID string) error {
	if !sess.Authenticated() {
		return ErrUnauthenticated
	}

	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return ErrEntryNotFound
	}

	entry, err := s.Store.Entries().GetEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEntryNotFound
		}
		return repositoryError(err)
	}

	if entry.UserID != sess.UserID && !sess.Role.IsAdmin() {
		return ErrForbidden
	}

	if err := s.Store.Entries().DeleteEntry(ctx, entryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEntryNotFound
		}
		return repositoryError(err)
	}

	s.invalidate(ctx)
	return nil
}

// ListAndAggregate returns one owner's entries, newest date first, together
// with the total duration over all of them. Zero entries yields a zero total,
// not an error. Caller-level authorization (who may list whom) is enforced at
// the transport boundary.
func (s *EntryService) ListAndAggregate(ctx context.Context, ownerUsername string) (domain.EntryList, error) {
	ownerUsername = strings.TrimSpace(ownerUsername)
	if ownerUsername == "" {
		return domain.EntryList{}, ErrMissingTarget
	}

	owner, err := s.Store.Users().GetUserByUsername(ctx, ownerUsername)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.EntryList{}, &TargetUserNotFoundError{Username: ownerUsername}
		}
		return domain.EntryList{}, repositoryError(err)
	}

	entries, err := s.Store.Entries().ListEntriesByUser(ctx, owner.ID)
	if err != nil {
		return domain.EntryList{}, repositoryError(err)
	}

	var total time.Duration
	for _, e := range entries {
		total += e.Duration()
	}

	return domain.EntryList{Entries: entries, Total: total}, nil
}

// invalidate drops cached views after a successful write. Best-effort: a
// cache failure is logged, never returned.
func (s *EntryService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, OverviewCacheKey); err != nil {
		slogx.FromContext(ctx).Warn("cache invalidation failed", "key", OverviewCacheKey, "err", err)
	}
}

// parseEntryTimes combines the date string with the two clock times. All
// values are interpreted in UTC; the returned date has the time-of-day zeroed.
func parseEntryTimes(dateStr, startStr, endStr string) (date, startAt, endAt time.Time, err error) {
	date, err = time.ParseInLocation(dateLayout, strings.TrimSpace(dateStr), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, err
	}

	start, err := time.ParseInLocation(timeLayout, strings.TrimSpace(startStr), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, err
	}

	end, err := time.ParseInLocation(timeLayout, strings.TrimSpace(endStr), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, err
	}

	startAt = time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, time.UTC)
	endAt = time.Date(date.Year(), date.Month(), date.Day(), end.Hour(), end.Minute(), 0, 0, time.UTC)
	return date, startAt, endAt, nil
}
