package service

import (
	"context"
	"errors"
	"fmt"

	"artmuseum/internal/auth"
	apperrors "artmuseum/internal/errors"
	"artmuseum/internal/model"
	"artmuseum/internal/repository"
)

// AuthService handles authentication operations.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Profile(ctx context.Context, claims *auth.Claims) (*model.User, error)
}

type authService struct {
	jwtService *auth.JWTService
	users      []repository.UserRepository
}

// NewAuthService creates a new authentication service. Users are looked up in
// primary first and then in each fallback, in order.
func NewAuthService(jwtService *auth.JWTService, primary repository.UserRepository, fallbacks ...repository.UserRepository) AuthService {
	users := []repository.UserRepository{primary}
	for _, f := range fallbacks {
		if f != nil {
			users = append(users, f)
		}
	}
	return &authService{jwtService: jwtService, users: users}
}

// Authenticate returns the first user, across backends, whose stored hash
// verifies password. Lookup failures other than NotFound are reported as
// such so an outage is not mistaken for bad credentials.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	var lookupErr error
	for _, repo := range s.users {
		user, err := repo.FindByEmail(ctx, email)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				lookupErr = err
			}
			continue
		}
		if auth.VerifyPassword(user.PasswordHash, password) {
			return user, nil
		}
	}
	if lookupErr != nil {
		return nil, fmt.Errorf("authenticate: %w", lookupErr)
	}
	return nil, apperrors.ErrInvalidCredentials
}

// Login authenticates and issues an access token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.jwtService.IssueToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Profile loads the user a token was issued to. Ids are local to a backend,
// so the account is found by the token's email in the same order Authenticate
// searches and must carry the token's subject id.
func (s *authService) Profile(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	id, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("%w: subject %q", apperrors.ErrUnauthorized, claims.Subject)
	}
	email := model.NormalizeEmail(claims.Email)
	for _, repo := range s.users {
		user, err := repo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("profile: %w", err)
		}
		if user.ID == id {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
}
