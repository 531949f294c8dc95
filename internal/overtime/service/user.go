package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/store"
	"github.com/hourbank/overtime/pkg/cryptox"
	"github.com/hourbank/overtime/pkg/idx"
	"github.com/hourbank/overtime/pkg/slogx"
)

// ErrUserNotFound is returned when a direct user lookup misses.
var ErrUserNotFound = errors.New("user not found")

// UserService covers user lookups and provisioning. There is no self-service
// registration; accounts come from the seed command or the initial admin
// bootstrap.
type UserService struct {
	Store store.Store
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, repositoryError(err)
	}
	return user, nil
}

// GetByUsername resolves a username case-insensitively.
func (s *UserService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, repositoryError(err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, repositoryError(err)
	}
	return users, nil
}

// ProvisionInput describes one account to create or update.
type ProvisionInput struct {
	Username string
	Name     string
	Role     domain.Role
	Password string
}

// Provision upserts an account by username (case-insensitive). For an
// existing account it updates name and role and, when a password is supplied,
// rotates the hash. Returns the resulting user and whether it was created.
func (s *UserService) Provision(ctx context.Context, in ProvisionInput) (domain.User, bool, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return domain.User{}, false, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if !in.Role.Valid() {
		return domain.User{}, false, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}

	existing, err := s.Store.Users().GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		if err := s.Store.Users().UpdateUserProfile(ctx, existing.ID, in.Name, in.Role); err != nil {
			return domain.User{}, false, repositoryError(err)
		}
		if in.Password != "" {
			hash, err := cryptox.HashPassword(in.Password)
			if err != nil {
				return domain.User{}, false, err
			}
			if err := s.Store.Users().UpdatePasswordHash(ctx, existing.ID, hash); err != nil {
				return domain.User{}, false, repositoryError(err)
			}
		}
		updated, err := s.Store.Users().GetUserByID(ctx, existing.ID)
		if err != nil {
			return domain.User{}, false, repositoryError(err)
		}
		return updated, false, nil

	case errors.Is(err, store.ErrNotFound):
		password := in.Password
		if password == "" {
			// Generated passwords are logged once at provisioning time; the
			// operator is expected to rotate them.
			password, err = cryptox.GeneratePassword()
			if err != nil {
				return domain.User{}, false, err
			}
			slogx.FromContext(ctx).Warn("generated password for provisioned user",
				"username", username, "password", password)
		}

		hash, err := cryptox.HashPassword(password)
		if err != nil {
			return domain.User{}, false, err
		}

		now := time.Now().UTC()
		user := domain.User{
			ID:           idx.New().String(),
			Username:     username,
			Name:         strings.TrimSpace(in.Name),
			PasswordHash: hash,
			Role:         in.Role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.Store.Users().CreateUser(ctx, user); err != nil {
			return domain.User{}, false, repositoryError(err)
		}
		return user, true, nil

	default:
		return domain.User{}, false, repositoryError(err)
	}
}

// EnsureInitialAdmin creates the first admin account when the user table is
// empty. Called once at startup; a populated table makes it a no-op.
func (s *UserService) EnsureInitialAdmin(ctx context.Context, username, name, password string) error {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return repositoryError(err)
	}
	if !empty {
		return nil
	}

	if strings.TrimSpace(username) == "" {
		slogx.FromContext(ctx).Warn("user table empty and no initial admin configured")
		return nil
	}

	_, created, err := s.Provision(ctx, ProvisionInput{
		Username: username,
		Name:     name,
		Role:     domain.RoleAdmin,
		Password: password,
	})
	if err != nil {
		return err
	}
	if created {
		slogx.FromContext(ctx).Info("initial admin account created", "username", username)
	}
	return nil
}
