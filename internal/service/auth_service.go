package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/auth-gateway/internal/auth"
	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/events"
	"github.com/spec-kit/auth-gateway/internal/repository"
)

// AuthService coordinates registration, login and logout flows around the
// token manager. Credential verification stays here; the token core never
// touches the user store.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	BcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
	}
}

// Register creates a new account and logs the caller straight in.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, *domain.Token, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", nil, errors.New("email already registered")
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", nil, err
	}

	s.publish(ctx, events.New(events.EventUserRegistered, user.Email, events.LoginPayload{
		Email: user.Email,
		Role:  string(user.Role),
	}))

	token, meta, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, "", nil, err
	}
	return user, token, meta, nil
}

// Login verifies credentials against the user store and issues a token
// carrying the stored role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, *domain.Token, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.publishLoginFailed(ctx, email, "unknown account")
			return nil, "", nil, errors.New("invalid credentials")
		}
		return nil, "", nil, err
	}
	if user.Status != domain.UserStatusActive {
		s.publishLoginFailed(ctx, email, "account suspended")
		return nil, "", nil, errors.New("account suspended")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.publishLoginFailed(ctx, email, "password mismatch")
		return nil, "", nil, errors.New("invalid credentials")
	}

	token, meta, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, "", nil, err
	}

	s.publish(ctx, events.New(events.EventLoginSucceeded, user.Email, events.LoginPayload{
		Email: user.Email,
		Role:  string(user.Role),
	}))
	return user, token, meta, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal) error {
	if err := s.tokens.Revoke(ctx, principal.RawToken); err != nil {
		return err
	}
	s.publish(ctx, events.New(events.EventTokenRevoked, principal.Subject, events.RevocationPayload{
		TokenID:   principal.TokenID,
		ExpiresAt: principal.ExpiresAt,
	}))
	return nil
}

// Profile loads the account behind an authenticated subject.
func (s *AuthService) Profile(ctx context.Context, subject string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, subject)
}

func (s *AuthService) publishLoginFailed(ctx context.Context, email, reason string) {
	s.publish(ctx, events.New(events.EventLoginFailed, email, events.LoginPayload{
		Email:  email,
		Reason: reason,
	}))
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, event)
	}
}
