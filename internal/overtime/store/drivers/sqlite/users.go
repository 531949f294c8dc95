package sqlite

import (
	"context"

	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	// The username column is declared COLLATE NOCASE, so equality here is
	// case-insensitive and matches at most one row.
	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	return mapConstraint(r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
	}))
}

func (r *usersRepo) UpdateUserProfile(ctx context.Context, userID, name string, role domain.Role) error {
	return r.q.UpdateUserProfile(ctx, gen.UpdateUserProfileParams{
		Name: name,
		Role: string(role),
		ID:   userID,
	})
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return r.q.UpdateUserPasswordHash(ctx, gen.UpdateUserPasswordHashParams{
		PasswordHash: newHash,
		ID:           userID,
	})
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUser(row))
	}
	return users, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.q.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *usersRepo) UpdateMFASecret(ctx context.Context, userID string, secret string) error {
	return r.q.UpdateUserMFASecret(ctx, gen.UpdateUserMFASecretParams{
		MfaSecret: stringToNullString(secret),
		ID:        userID,
	})
}

func (r *usersRepo) EnableMFA(ctx context.Context, userID string) error {
	return r.q.EnableUserMFA(ctx, userID)
}

func (r *usersRepo) DisableMFA(ctx context.Context, userID string) error {
	return r.q.DisableUserMFA(ctx, userID)
}
