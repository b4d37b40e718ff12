package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yanis004/WebServices/internal/store/domain"
	"github.com/yanis004/WebServices/internal/store/repository"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
	"github.com/yanis004/WebServices/pkg/pagination"
)

// UserService implements the business logic for user operations.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// CreateUserInput holds the parameters for creating a user.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ReplaceUserInput holds the parameters for a full user replacement.
type ReplaceUserInput struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// PatchUserInput holds the parameters for a partial user update.
type PatchUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// CreateUser creates a new user, hashing the password before storage.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: domain.HashPassword(input.Password),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created", slog.String("user_id", user.ID))
	return user, nil
}

// GetUser retrieves a user by its ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// ListUsers returns a paginated list of users.
func (s *UserService) ListUsers(ctx context.Context, params pagination.Params) ([]domain.User, int, error) {
	users, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// ReplaceUser overwrites every mutable field of an existing user.
func (s *UserService) ReplaceUser(ctx context.Context, id string, input ReplaceUserInput) (*domain.User, error) {
	user := &domain.User{
		ID:           id,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: domain.HashPassword(input.Password),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Replace(ctx, user); err != nil {
		return nil, fmt.Errorf("replace user: %w", err)
	}

	s.logger.InfoContext(ctx, "user replaced", slog.String("user_id", id))
	return s.repo.GetByID(ctx, id)
}

// PatchUser applies a partial update. At least one field must be set.
func (s *UserService) PatchUser(ctx context.Context, id string, input PatchUserInput) (*domain.User, error) {
	if input.Name == nil && input.Email == nil && input.Password == nil {
		return nil, apperrors.InvalidInput("at least one of name, email or password must be provided")
	}

	patch := repository.UserPatch{
		Name:  input.Name,
		Email: input.Email,
	}
	if input.Password != nil {
		hash := domain.HashPassword(*input.Password)
		patch.PasswordHash = &hash
	}

	user, err := s.repo.Patch(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("patch user: %w", err)
	}

	s.logger.InfoContext(ctx, "user patched", slog.String("user_id", id))
	return user, nil
}

// DeleteUser removes a user by its ID.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.InfoContext(ctx, "user deleted", slog.String("user_id", id))
	return nil
}
