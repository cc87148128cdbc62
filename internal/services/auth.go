package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"planpact/internal/domain"
)

const minPasswordLen = 8

type authService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	dispatcher     domain.NotificationDispatcher
	contextTimeout time.Duration
}

// NewAuthService creates an AuthService. dispatcher may be nil to skip the welcome e-mail.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, dispatcher domain.NotificationDispatcher, timeout time.Duration) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		dispatcher:     dispatcher,
		contextTimeout: timeout,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)
	if name == "" {
		return "", nil, domain.NewValidationError("name", "is required")
	}
	if !emailRegexp.MatchString(email) {
		return "", nil, domain.NewValidationError("email", "invalid email format")
	}
	if len(password) < minPasswordLen {
		return "", nil, domain.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user := domain.NewUser(name, email, hash, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokenIssuer.Issue(user.ID, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, &domain.Notification{
			Kind:          domain.NotificationWelcome,
			To:            user.Email,
			RecipientName: user.Name,
		})
	}
	return token, user, nil
}

// Login never reveals whether the e-mail exists: every failure is ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if !user.IsActive {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", nil, fmt.Errorf("record login: %w", err)
	}

	token, err := s.tokenIssuer.Issue(user.ID, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
