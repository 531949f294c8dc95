package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hourbank/overtime/internal/overtime/cache"
	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/store"
	"github.com/hourbank/overtime/internal/overtime/store/drivers/sqlite"
	"github.com/hourbank/overtime/pkg/cryptox"
	"github.com/hourbank/overtime/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Password hashing needs a pepper file
	pepperPath := filepath.Join(os.TempDir(), "overtime-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// seedUser inserts a user with the given password and returns it.
func seedUser(t *testing.T, st store.Store, username, name string, role domain.Role, password string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

func sessionFor(u domain.User) domain.Session {
	return domain.Session{UserID: u.ID, Username: u.Username, Name: u.Name, Role: u.Role}
}

func newEntryService(st store.Store) *EntryService {
	return &EntryService{Store: st, Cache: cache.Noop{}}
}
