package store

import (
	"context"
	"errors"

	"github.com/hourbank/overtime/internal/overtime/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrForeignKey reports a write that referenced a missing row, e.g. an
	// entry whose owner was deleted between resolution and insert.
	ErrForeignKey = errors.New("store: foreign key violation")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Entries() Entries

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to make multi-step operations atomic (e.g. resolving
	// an entry's owner and inserting the entry).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername resolves a username case-insensitively. The stored
	// unique index is case-insensitive too, so at most one row can match.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUserProfile mutates name and role and bumps updated_at.
	UpdateUserProfile(ctx context.Context, userID, name string, role domain.Role) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// ListUsers returns all users ordered by username.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)

	// UpdateMFASecret sets the TOTP secret for a user (enrollment step).
	UpdateMFASecret(ctx context.Context, userID string, secret string) error

	// EnableMFA marks TOTP as active for a user (sets mfa_enabled timestamp).
	EnableMFA(ctx context.Context, userID string) error

	// DisableMFA clears both mfa_enabled and mfa_secret.
	DisableMFA(ctx context.Context, userID string) error
}

type Entries interface {
	// CreateEntry inserts a new overtime entry (id is ULID). Returns
	// ErrForeignKey if the owning user does not exist.
	CreateEntry(ctx context.Context, e domain.Entry) error

	// GetEntryByID returns a single entry.
	GetEntryByID(ctx context.Context, id string) (domain.Entry, error)

	// DeleteEntry removes an entry. Returns ErrNotFound when no row matched.
	DeleteEntry(ctx context.Context, id string) error

	// ListEntriesByUser returns one owner's entries ordered by date
	// descending, then start time descending.
	ListEntriesByUser(ctx context.Context, userID string) ([]domain.Entry, error)

	// ListEntriesWithOwners returns every entry with owner identity attached,
	// same ordering. Admin dashboard path.
	ListEntriesWithOwners(ctx context.Context) ([]domain.EntryWithOwner, error)
}
