package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yanis004/WebServices/internal/store/domain"
	"github.com/yanis004/WebServices/internal/store/repository"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
	"github.com/yanis004/WebServices/pkg/pagination"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, params pagination.Params) ([]domain.User, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepository) Replace(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Patch(ctx context.Context, id string, patch repository.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestUserService_CreateUser_HashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	svc := NewUserService(repo, testLogger())

	var stored *domain.User
	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.User) }).
		Return(nil)

	user, err := svc.CreateUser(ctx, CreateUserInput{
		Name:     "alex",
		Email:    "alex@example.com",
		Password: "azerty",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, domain.HashPassword("azerty"), stored.PasswordHash)
	assert.NotEqual(t, "azerty", stored.PasswordHash)
	assert.NotEmpty(t, user.ID)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	svc := NewUserService(repo, testLogger())

	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Return(apperrors.AlreadyExists("user", "email", "alex@example.com"))

	_, err := svc.CreateUser(ctx, CreateUserInput{
		Name:     "alex",
		Email:    "alex@example.com",
		Password: "azerty",
	})
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
}

func TestUserService_PatchUser_EmptyPatch(t *testing.T) {
	svc := NewUserService(new(mockUserRepository), testLogger())

	_, err := svc.PatchUser(context.Background(), "user-001", PatchUserInput{})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestUserService_PatchUser_HashesNewPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	svc := NewUserService(repo, testLogger())

	password := "newsecret"
	hash := domain.HashPassword(password)
	updated := &domain.User{ID: "user-001", PasswordHash: hash}

	repo.On("Patch", ctx, "user-001", mock.MatchedBy(func(p repository.UserPatch) bool {
		return p.PasswordHash != nil && *p.PasswordHash == hash && p.Name == nil && p.Email == nil
	})).Return(updated, nil)

	user, err := svc.PatchUser(ctx, "user-001", PatchUserInput{Password: &password})
	require.NoError(t, err)
	assert.Equal(t, hash, user.PasswordHash)

	repo.AssertExpectations(t)
}
