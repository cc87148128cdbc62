package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"planpact/internal/domain"
)

type userService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	contextTimeout time.Duration
}

// NewUserService creates a UserService with the given repository and password hasher.
func NewUserService(userRepo domain.UserRepository, hasher domain.PasswordHasher, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		hasher:         hasher,
		contextTimeout: timeout,
	}
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.activeUser(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id string, name, email *string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if name == nil && email == nil {
		return nil, domain.NewValidationError("", "no valid fields to update")
	}
	user, err := s.activeUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return nil, domain.NewValidationError("name", "must not be empty")
		}
		user.Name = n
	}
	if email != nil {
		e := domain.NormalizeEmail(*email)
		if !emailRegexp.MatchString(e) {
			return nil, domain.NewValidationError("email", "invalid email format")
		}
		user.Email = e
	}
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(newPassword) < minPasswordLen {
		return domain.NewValidationError("new_password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	user, err := s.activeUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Deactivate soft-deletes the account; the row stays so hosted pacts keep their host.
func (s *userService) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.activeUser(ctx, id)
	if err != nil {
		return err
	}
	user.IsActive = false
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// activeUser loads the user; missing and deactivated users both surface as ErrUnauthorized,
// since callers reach here holding a token for that id.
func (s *userService) activeUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
