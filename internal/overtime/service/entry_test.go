package service

import (
	"context"
	"testing"
	"time"

	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/stretchr/testify/require"
)

func TestSubmitPersistsValidEntry(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newEntryService(st)

	alice := seedUser(t, st, "alice", "Alice", domain.RoleUser, "secret")

	entry, err := svc.Submit(ctx, sessionFor(alice), SubmitInput{
		Date:        "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "17:30",
		Description: "release support",
	})
	require.NoError(t, err)
	require.Equal(t, alice.ID, entry.UserID)
	require.Equal(t, 8*time.Hour+30*time.Minute, entry.Duration())

	// Durably visible to a subsequent read
	list, err := svc.ListAndAggregate(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	require.Equal(t, entry.ID, list.Entries[0].ID)
	require.Equal(t, "release support", list.Entries[0].Description)
	require.Equal(t, entry.Duration(), list.Total)
}

func TestSubmitRequiresAuthentication(t *testing.T) {
	st := newTestStore(t)
	svc := newEntryService(st)

	_, err := svc.Submit(context.Background(), domain.Session{}, SubmitInput{
		Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00",
	})
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSubmitRequiresResolvableTarget(t *testing.T) {
	st := newTestStore(t)
	svc := newEntryService(st)

	// Authenticated session whose username trims to nothing and no override
	sess := domain.Session{UserID: "someone", Username: "   ", Role: domain.RoleUser}
	_, err := svc.Submit(context.Background(), sess, SubmitInput{
		Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00",
	})
	require.ErrorIs(t, err, ErrMissingTarget)
}

func TestSubmitCrossUserRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newEntryService(st)

	alice := seedUser(t, st, "alice", "Alice", domain.RoleUser, "secret")
	bob := seedUser(t, st, "bob", "Bob", domain.RoleUser, "secret")
	admin := seedUser(t, st, "root", "Root", domain.RoleAdmin, "secret")

	input := SubmitInput{
		Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00",
		TargetUsername: bob.Username,
	}

	_, err := svc.Submit(ctx, sessionFor(alice), input)
	require.ErrorIs(t, err, ErrForbidden)

	entry, err := svc.Submit(ctx, sessionFor(admin), input)
	require.NoError(t, err)
	require.Equal(t, bob.ID, entry.UserID)
}

func TestSubmitTargetResolutionIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newEntryService(st)

	geral := seedUser(t, st, "geral", "Geral", domain.RoleUser, "secret")
	admin := seedUser(t, st, "root", "Root", domain.RoleAdmin, "secret")

	entry, err := svc.Submit(ctx, sessionFor(admin), SubmitInput{
		Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00",
		TargetUsername: "Geral",
	})
	require.NoError(t, err)
	require.Equal(t, geral.ID, entry.UserID)

	// A differently-cased self reference is still "own account", not cross-user
	sess := sessionFor(geral)
	sess.Username = "GERAL"
	_, err = svc.Submit(ctx, sess, SubmitInput{
		Date: "2026-03-03", StartTime: "09:00", EndTime: "10:00",
		TargetUsername: "geral",
	})
	require.NoError(t, err)
}

func TestSubmitRejectsMalformedInput(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newEntryService(st)

	alice := seedUser(t, st, "alice", "Alice", domain.RoleUser, "secret")

	for _, in := range []SubmitInput{
		{Date: "02/03/2026", StartTime: "09:00", EndTime: "10:00"},
		{Date: "2026-03-02", StartTime: "9am", EndTime: "10:00"},
		{Date: "2026-03-02", StartTime: "09:00", EndTime: ""},
		{Date: "", StartTime: "09:00", EndTime: "10:00"},
	} {
		_, err := svc.Submit(ctx, sessionFor(alice), in)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestSubmitRejectsNonPositiveRange(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newEntryService(st)

	alice := seedUser(t, st, "alice", "Alice", domain.RoleUser, "secret")

	for _, in := range []SubmitInput{
		{Date: "2026-03-02", StartTime: "17:00", EndTime: "09:00"}, // end before start
		{Date: "2026-03-02", StartTime: "09:00", EndTime: "09:00"}, // equal
	} {
		_, err := svc.Submit(ctx, sessionFor(alice), in)
		require.ErrorIs(t, err, ErrInvalidTimeRange)
	}

	// Nothing persisted
	list, err := svc.ListAndAggregate(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, list.Entries)
	require.Zero(t, list.Total)
}

func TestSubmitUnknownTargetPersistsNothing(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newEntryService(st)

	admin := seedUser(t, st, "root", "Root", domain.RoleAdmin, "secret")

	_, err := svc.Submit(ctx, sessionFor(admin), SubmitInput{
		Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00",
		TargetUsername: "ghost",
	})

	var notFound *TargetUserNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "ghost", notFound.Username)

	rows, err := st.Entries().ListEntriesWithOwners(ctx)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestListAndAggregateSumsDurations(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newEntryService(st)

	alice := seedUser(t, st, "alice", "Alice", domain.RoleUser, "secret")
	sess := sessionFor(alice)

	_, err := svc.Submit(ctx, sess, SubmitInput{Date: "2026-03-02", StartTime: "09:00", EndTime: "17:30"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, sess, SubmitInput{Date: "2026-03-02", StartTime: "18:00", EndTime: "19:15"})
	require.NoError(t, err)

	list, err := svc.ListAndAggregate(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list.Entries, 2)
	require.Equal(t, 9*time.Hour+45*time.Minute, list.Total)

	// Both display forms derive from the same sum
	require.Equal(t, "9.75", domain.Hours(list.Total))
	require.Equal(t, "9h45min", domain.FormatDuration(list.Total))
}

func TestListAndAggregateOrdersByDateDescending(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newEntryService(st)

	alice := seedUser(t, st, "alice", "Alice", domain.RoleUser, "secret")
	sess := sessionFor(alice)

	// Inserted out of chronological order
	for _, date := range []string{"2026-03-05", "2026-03-01", "2026-03-09", "2026-03-03"} {
		_, err := svc.Submit(ctx, sess, SubmitInput{Date: date, StartTime: "09:00", EndTime: "10:00"})
		require.NoError(t, err)
	}

	list, err := svc.ListAndAggregate(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list.Entries, 4)

	for i := 1; i < len(list.Entries); i++ {
		require.False(t, list.Entries[i-1].Date.Before(list.Entries[i].Date),
			"entries must be ordered by date descending")
	}
}

func TestListAndAggregateEmptyIsZero(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newEntryService(st)

	seedUser(t, st, "alice", "Alice", domain.RoleUser, "secret")

	list, err := svc.ListAndAggregate(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, list.Entries)
	require.Zero(t, list.Total)
	require.Equal(t, "0.00", domain.Hours(list.Total))
	require.Equal(t, "0h", domain.FormatDuration(list.Total))
}

func TestListAndAggregateUnknownOwner(t *testing.T) {
	st := newTestStore(t)
	svc := newEntryService(st)

	_, err := svc.ListAndAggregate(context.Background(), "ghost")

	var notFound *TargetUserNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRemoveOwnerOrAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newEntryService(st)

	alice := seedUser(t, st, "alice", "Alice", domain.RoleUser, "secret")
	bob := seedUser(t, st, "bob", "Bob", domain.RoleUser, "secret")
	admin := seedUser(t, st, "root", "Root", domain.RoleAdmin, "secret")

	entry, err := svc.Submit(ctx, sessionFor(alice), SubmitInput{
		Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err)

	// Another non-admin may not delete it
	require.ErrorIs(t, svc.Remove(ctx, sessionFor(bob), entry.ID), ErrForbidden)

	// The owner may
	require.NoError(t, svc.Remove(ctx, sessionFor(alice), entry.ID))

	list, err := svc.ListAndAggregate(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, list.Entries)

	// An admin may delete someone else's entry
	entry, err = svc.Submit(ctx, sessionFor(alice), SubmitInput{
		Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, sessionFor(admin), entry.ID))
}

func TestRemoveMissingIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newEntryService(st)

	alice := seedUser(t, st, "alice", "Alice", domain.RoleUser, "secret")

	require.ErrorIs(t, svc.Remove(ctx, sessionFor(alice), "01JC0000000000000000000000"), ErrEntryNotFound)
	require.ErrorIs(t, svc.Remove(ctx, sessionFor(alice), ""), ErrEntryNotFound)
	require.ErrorIs(t, svc.Remove(ctx, domain.Session{}, "x"), ErrUnauthenticated)
}
