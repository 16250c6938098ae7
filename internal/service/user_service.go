package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"artmuseum/internal/auth"
	apperrors "artmuseum/internal/errors"
	"artmuseum/internal/model"
	"artmuseum/internal/repository"
)

// UserService exposes user operations over one backend.
type UserService interface {
	Register(ctx context.Context, userName, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateRoles(ctx context.Context, id int64, roles string) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserService builds a UserService on repo.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo, now: time.Now}
}

// Register creates a user with the default role. The email is normalized
// before the uniqueness check and storage; a blank user name falls back to
// the email's local part.
func (s *userService) Register(ctx context.Context, userName, email, password string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("register %s: %w", email, apperrors.ErrConflict)
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	userName = strings.TrimSpace(userName)
	if userName == "" {
		userName, _, _ = strings.Cut(email, "@")
	}

	now := s.now().UTC()
	user := &model.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
		Roles:        model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// UpdateRoles stores roles in canonical "A,B" form.
func (s *userService) UpdateRoles(ctx context.Context, id int64, roles string) (*model.User, error) {
	list := model.SplitRoles(roles)
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: roles must not be empty", apperrors.ErrValidation)
	}
	return s.repo.UpdateRoles(ctx, id, strings.Join(list, ","))
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
