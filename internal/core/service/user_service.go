package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

// UserService implements account upserts, role lookups, and admin role
// management.
type UserService struct {
	users    ports.UserRepository
	requests ports.VendorRequestRepository
	log      zerolog.Logger
}

func NewUserService(users ports.UserRepository, requests ports.VendorRequestRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, requests: requests, log: log}
}

// SyncLogin upserts the user by email. The first sync creates the record
// with role customer; later syncs only refresh the last-login timestamp,
// leaving the role untouched.
func (s *UserService) SyncLogin(ctx context.Context, in ports.SyncLoginInput) (*ports.SyncLoginResult, error) {
	now := time.Now().UTC()

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		if err := s.users.TouchLastLogin(ctx, in.Email, now); err != nil {
			return nil, fmt.Errorf("sync login: %w", err)
		}
		s.log.Debug().Str("email", in.Email).Msg("login sync: existing user refreshed")
		return &ports.SyncLoginResult{UserID: existing.ID}, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("sync login: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Image:        in.Image,
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		LastLoggedIn: now,
	}
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("sync login: %w", err)
	}

	s.log.Info().Str("email", in.Email).Str("user_id", id).Msg("login sync: user created")
	return &ports.SyncLoginResult{Created: true, UserID: id}, nil
}

func (s *UserService) Role(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// Authorize returns nil iff a user record exists for email and its role
// equals required. Absence of a record and a role mismatch both map to
// ErrForbidden, never ErrUserNotFound.
func (s *UserService) Authorize(ctx context.Context, email, required string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	if user.Role != required {
		return domain.ErrForbidden
	}
	return nil
}

func (s *UserService) ListOthers(ctx context.Context, email string) ([]domain.User, error) {
	return s.users.ListOthers(ctx, email)
}

// UpdateRole assigns a role to the user and removes any pending vendor
// request for that email. The two writes are intentionally separate: the
// request record is advisory and its absence grants nothing.
func (s *UserService) UpdateRole(ctx context.Context, email, role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrInvalidRole
	}

	if err := s.users.UpdateRole(ctx, email, role); err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	if err := s.requests.DeleteByEmail(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("role updated but vendor request cleanup failed")
	}

	s.log.Info().Str("email", email).Str("role", role).Msg("role updated")
	return nil
}
