package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taxsage/internal/config"
	"taxsage/internal/domain"
	"taxsage/internal/service"
	"taxsage/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-do-not-use",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "taxsage-test",
	}
}

func TestRegister_CreatesTaxpayerAndReturnsTokens(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "asha@example.com" && u.Role == domain.RoleTaxpayer && u.IsActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = uuid.New()
	}).Return(nil)

	svc := service.NewAuthService(userRepo, testJWTConfig())

	out, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "asha@example.com",
		Password: "correct horse",
		FullName: "Asha Iyer",
		Role:     "taxpayer",
	})
	require.NoError(t, err)
	require.NotNil(t, out.Tokens)
	assert.NotEmpty(t, out.Tokens.AccessToken)
	assert.NotEmpty(t, out.Tokens.RefreshToken)

	// Stored hash must verify against the plaintext password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(out.User.PasswordHash), []byte("correct horse")))
	userRepo.AssertExpectations(t)
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockUserRepo), testJWTConfig())

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "root@example.com",
		Password: "password123",
		FullName: "Root",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	svc := service.NewAuthService(userRepo, testJWTConfig())

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "asha@example.com").Return(&domain.User{
		ID:           uuid.New(),
		Email:        "asha@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleTaxpayer,
		IsActive:     true,
	}, nil)

	svc := service.NewAuthService(userRepo, testJWTConfig())

	_, err = svc.Login(context.Background(), service.LoginInput{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "gone@example.com").Return(&domain.User{
		ID:       uuid.New(),
		Email:    "gone@example.com",
		IsActive: false,
	}, nil)

	svc := service.NewAuthService(userRepo, testJWTConfig())

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "gone@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestTokens_RoundTripAndAudience(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	user := &domain.User{
		ID:           userID,
		Email:        "ca@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleCA,
		IsActive:     true,
	}

	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "ca@example.com").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, userID).Return(user, nil)

	svc := service.NewAuthService(userRepo, testJWTConfig())

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "ca@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleCA, claims.Role)

	// A refresh token must not pass access-token validation.
	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)

	// But it refreshes into a new pair.
	next, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.AccessToken)

	// An access token must not be usable for refresh.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.Error(t, err)
}
