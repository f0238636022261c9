package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nimbuscloud/nimbus-api/internal/apperrors"
	"github.com/nimbuscloud/nimbus-api/internal/crypto"
	"github.com/nimbuscloud/nimbus-api/internal/model"
	"github.com/nimbuscloud/nimbus-api/internal/repository"
)

// MockUserStore is a mock implementation of UserStore.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUserStore) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) SeedUpsert(ctx context.Context, user *model.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) GetByEmails(ctx context.Context, emails []string) ([]model.User, error) {
	args := m.Called(ctx, emails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserStore) ListByEmailSuffix(ctx context.Context, suffix string) ([]model.User, error) {
	args := m.Called(ctx, suffix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserStore) GetCredentialByEmail(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockUserStore) UpdateLastLogin(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStore) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testUser(id int64) *model.User {
	return &model.User{
		ID:            id,
		Email:         "mario.rossi@nimbus.test",
		Username:      "mario.rossi",
		Role:          "user",
		IsActive:      true,
		EmailVerified: true,
		CreatedAt:     time.Now().UTC(),
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	return hash
}

func TestCheckDeletable_MissingUserID(t *testing.T) {
	svc := NewAccountService(new(MockUserStore))

	_, err := svc.CheckDeletable(context.Background(), "")

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))
}

func TestCheckDeletable_NonNumericUserID(t *testing.T) {
	svc := NewAccountService(new(MockUserStore))

	_, err := svc.CheckDeletable(context.Background(), "not-a-number")

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))
}

func TestCheckDeletable_UserNotFound(t *testing.T) {
	users := new(MockUserStore)
	users.On("GetByID", mock.Anything, int64(42)).Return(nil, repository.ErrUserNotFound)

	svc := NewAccountService(users)
	_, err := svc.CheckDeletable(context.Background(), "42")

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.Status(err))
}

func TestCheckDeletable_ReportsAssociatedData(t *testing.T) {
	users := new(MockUserStore)
	users.On("GetByID", mock.Anything, int64(42)).Return(testUser(42), nil)

	svc := NewAccountService(users)
	resp, err := svc.CheckDeletable(context.Background(), "42")

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(42), resp.User.ID)
	assert.True(t, resp.AssociatedData["resetTokens"])
	assert.True(t, resp.AssociatedData["favorites"])
}

func TestDelete_MissingFields(t *testing.T) {
	svc := NewAccountService(new(MockUserStore))

	_, err := svc.Delete(context.Background(), "", "secret")
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))

	_, err = svc.Delete(context.Background(), "42", "")
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))
}

func TestDelete_WrongPassword(t *testing.T) {
	user := testUser(42)
	users := new(MockUserStore)
	users.On("GetByID", mock.Anything, int64(42)).Return(user, nil)
	users.On("GetCredentialByEmail", mock.Anything, user.Email).Return(mustHash(t, "right-password"), nil)

	svc := NewAccountService(users)
	_, err := svc.Delete(context.Background(), "42", "wrong-password")

	assert.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.Status(err))
	assert.Equal(t, "Password non corretta", err.Error())
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_Success(t *testing.T) {
	user := testUser(42)
	users := new(MockUserStore)
	users.On("GetByID", mock.Anything, int64(42)).Return(user, nil)
	users.On("GetCredentialByEmail", mock.Anything, user.Email).Return(mustHash(t, "right-password"), nil)
	users.On("Delete", mock.Anything, int64(42)).Return(nil)

	svc := NewAccountService(users)
	deleted, err := svc.Delete(context.Background(), "42", "right-password")

	assert.NoError(t, err)
	assert.Equal(t, "42", deleted.ID)
	assert.Equal(t, user.Email, deleted.Email)
	assert.Equal(t, user.Username, deleted.Username)
	users.AssertCalled(t, "Delete", mock.Anything, int64(42))
}

// A user row without any stored hash is a server-side inconsistency, not a
// credential failure.
func TestDelete_MissingHash(t *testing.T) {
	user := testUser(42)
	users := new(MockUserStore)
	users.On("GetByID", mock.Anything, int64(42)).Return(user, nil)
	users.On("GetCredentialByEmail", mock.Anything, user.Email).Return("", nil)

	svc := NewAccountService(users)
	_, err := svc.Delete(context.Background(), "42", "whatever")

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.Status(err))
}

func TestSeedTestAccounts_CountsCreatedAndSkipped(t *testing.T) {
	users := new(MockUserStore)
	users.On("EnsureSchema", mock.Anything).Return(nil)
	users.On("SeedUpsert", mock.Anything, mock.Anything).Return(true, nil).Twice()
	users.On("SeedUpsert", mock.Anything, mock.Anything).Return(false, nil).Once()

	svc := NewAccountService(users)
	result, err := svc.SeedTestAccounts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Accounts, len(seedAccounts))
}

func TestSeedTestAccounts_RowFailureDoesNotAbortBatch(t *testing.T) {
	users := new(MockUserStore)
	users.On("EnsureSchema", mock.Anything).Return(nil)
	users.On("SeedUpsert", mock.Anything, mock.Anything).Return(false, assert.AnError).Once()
	users.On("SeedUpsert", mock.Anything, mock.Anything).Return(true, nil)

	svc := NewAccountService(users)
	result, err := svc.SeedTestAccounts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, len(seedAccounts)-1, result.Created)
	assert.Equal(t, 1, result.Skipped)
}

func TestSearchByEmail_NotFoundIsNotAnError(t *testing.T) {
	users := new(MockUserStore)
	users.On("GetByEmail", mock.Anything, "ghost@nimbus.test").Return(nil, repository.ErrUserNotFound)

	svc := NewAccountService(users)
	user, err := svc.SearchByEmail(context.Background(), "ghost@nimbus.test")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestSearchByEmails_EmptyList(t *testing.T) {
	svc := NewAccountService(new(MockUserStore))

	_, err := svc.SearchByEmails(context.Background(), nil)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.Status(err))
}

func TestSearchByEmails_MissingEntriesOmitted(t *testing.T) {
	users := new(MockUserStore)
	users.On("GetByEmails", mock.Anything, []string{"mario.rossi@nimbus.test", "ghost@nimbus.test"}).
		Return([]model.User{*testUser(42)}, nil)

	svc := NewAccountService(users)
	result, err := svc.SearchByEmails(context.Background(), []string{"mario.rossi@nimbus.test", "ghost@nimbus.test"})

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, int64(42), result[0].ID)
}
