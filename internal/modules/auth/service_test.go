package auth

import (
	"context"
	"testing"
	"time"

	"juanride/internal/domain"
	"juanride/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID int64, role domain.UserRole) (string, error) {
	return "token", nil
}

func testPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, AttemptTimeout: 50 * time.Millisecond, Backoff: time.Millisecond}
}

func hashed(pw string) string {
	h, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	return string(h)
}

func TestRegisterRenter_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubJWT{}, nil, testPolicy())

	users.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleRenter && u.IsActive && u.Email == "ana@example.com"
	})).Return(nil)

	u, err := svc.RegisterRenter(context.Background(), RegisterRequest{
		Email: "  Ana@Example.com ", Password: "secret123", FirstName: "Ana",
	})

	assert.NoError(t, err)
	assert.Empty(t, u.PasswordHash)
	users.AssertExpectations(t)
}

func TestRegisterOwner_StartsAsPendingRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubJWT{}, nil, testPolicy())

	users.On("ExistsByEmail", mock.Anything, "ben@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RolePending
	})).Return(nil)

	u, err := svc.RegisterOwner(context.Background(), RegisterRequest{
		Email: "ben@example.com", Password: "secret123", FirstName: "Ben",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RolePending, u.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubJWT{}, nil, testPolicy())

	users.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(true, nil)

	_, err := svc.RegisterRenter(context.Background(), RegisterRequest{
		Email: "ana@example.com", Password: "secret123", FirstName: "Ana",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubJWT{}, nil, testPolicy())

	u := &domain.User{ID: 1, Email: "ana@example.com", PasswordHash: hashed("secret123"),
		Role: domain.RoleRenter, IsActive: true}
	users.On("GetByEmail", mock.Anything, "ana@example.com").Return(u, nil)

	res, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secret123"})

	assert.NoError(t, err)
	assert.Equal(t, "token", res.Token)
	assert.Empty(t, res.User.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubJWT{}, nil, testPolicy())

	u := &domain.User{ID: 1, PasswordHash: hashed("secret123"), IsActive: true}
	users.On("GetByEmail", mock.Anything, "ana@example.com").Return(u, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailDoesNotRetry(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubJWT{}, nil, testPolicy())

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	users.AssertExpectations(t)
}

func TestLogin_RetriesTransientLookupFailure(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubJWT{}, nil, testPolicy())

	u := &domain.User{ID: 1, PasswordHash: hashed("secret123"), IsActive: true}
	users.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, assert.AnError).Once()
	users.On("GetByEmail", mock.Anything, "ana@example.com").Return(u, nil).Once()

	res, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secret123"})
	assert.NoError(t, err)
	assert.NotNil(t, res)
	users.AssertExpectations(t)
}

func TestLogin_DisabledAccount(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, stubJWT{}, nil, testPolicy())

	u := &domain.User{ID: 1, PasswordHash: hashed("secret123"), IsActive: false}
	users.On("GetByEmail", mock.Anything, "ana@example.com").Return(u, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserDisabled)
}

type mapCache struct {
	values map[int64]*domain.User
	hits   int
}

func (c *mapCache) Get(ctx context.Context, userID int64, dst any) error {
	u, ok := c.values[userID]
	if !ok {
		return assert.AnError
	}
	c.hits++
	*(dst.(*domain.User)) = *u
	return nil
}

func (c *mapCache) Set(ctx context.Context, userID int64, value any) error {
	c.values[userID] = value.(*domain.User)
	return nil
}

func (c *mapCache) Invalidate(ctx context.Context, userID int64) error {
	delete(c.values, userID)
	return nil
}

func TestProfile_CachesAfterFirstLoad(t *testing.T) {
	users := new(MockUserRepository)
	profiles := &mapCache{values: map[int64]*domain.User{}}
	svc := NewService(users, stubJWT{}, profiles, testPolicy())

	u := &domain.User{ID: 1, Email: "ana@example.com", Role: domain.RoleRenter}
	users.On("GetByID", mock.Anything, int64(1)).Return(u, nil).Once()

	first, err := svc.Profile(context.Background(), 1)
	assert.NoError(t, err)

	second, err := svc.Profile(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, 1, profiles.hits)
	users.AssertExpectations(t)
}

func TestUpdateProfile_InvalidatesCache(t *testing.T) {
	users := new(MockUserRepository)
	profiles := &mapCache{values: map[int64]*domain.User{1: {ID: 1, FirstName: "Old"}}}
	svc := NewService(users, stubJWT{}, profiles, testPolicy())

	u := &domain.User{ID: 1, FirstName: "Old"}
	users.On("GetByID", mock.Anything, int64(1)).Return(u, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.FirstName == "New"
	})).Return(nil)

	_, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileRequest{FirstName: "New"})
	assert.NoError(t, err)
	assert.NotContains(t, profiles.values, int64(1))
}
