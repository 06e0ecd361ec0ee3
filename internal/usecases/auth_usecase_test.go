package usecases_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"forgebase.backend/internal/domain/entities"
	domainerrors "forgebase.backend/internal/domain/errors"
	"forgebase.backend/internal/usecases"
	"forgebase.backend/pkg/crypto"
	"forgebase.backend/pkg/jwt"
	"forgebase.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	os.Exit(m.Run())
}

func newJWTService() *jwt.JWTService {
	return jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := usecases.NewAuthUsecase(mockUserRepo, newJWTService())
	ctx := context.Background()

	mockUserRepo.On("GetByEmail", ctx, "new@example.com").Return(nil, domainerrors.ErrNotFound).Once()
	mockUserRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Run(func(args mock.Arguments) {
		user := args.Get(1).(*entities.User)
		user.ID = uuid.New()
	}).Return(nil).Once()

	resp, err := uc.Register(ctx, &entities.RegisterInput{
		Email:    "new@example.com",
		Name:     "New User",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "new@example.com", resp.User.Email)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := usecases.NewAuthUsecase(mockUserRepo, newJWTService())
	ctx := context.Background()

	existing := &entities.User{ID: uuid.New(), Email: "taken@example.com"}
	mockUserRepo.On("GetByEmail", ctx, "taken@example.com").Return(existing, nil).Once()

	_, err := uc.Register(ctx, &entities.RegisterInput{
		Email:    "taken@example.com",
		Name:     "Someone",
		Password: "s3cretpass",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeBadRequest, appErr.Code)
}

func TestAuthUsecase_Login(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := usecases.NewAuthUsecase(mockUserRepo, newJWTService())
	ctx := context.Background()

	hash, err := crypto.HashPassword("correct-horse")
	require.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: hash}

	mockUserRepo.On("GetByEmail", ctx, "user@example.com").Return(user, nil)

	resp, err := uc.Login(ctx, &entities.LoginInput{Email: "user@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = uc.Login(ctx, &entities.LoginInput{Email: "user@example.com", Password: "wrong"})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeUnauthorized, appErr.Code)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	uc := usecases.NewAuthUsecase(mockUserRepo, newJWTService())
	ctx := context.Background()

	mockUserRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.Login(ctx, &entities.LoginInput{Email: "ghost@example.com", Password: "whatever"})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	// Same answer as a bad password so emails cannot be probed.
	assert.Equal(t, domainerrors.CodeUnauthorized, appErr.Code)
}

func TestAuthUsecase_RefreshToken(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	svc := newJWTService()
	uc := usecases.NewAuthUsecase(mockUserRepo, svc)
	ctx := context.Background()

	user := &entities.User{ID: uuid.New(), Email: "user@example.com"}
	pair, err := svc.GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)

	mockUserRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()

	resp, err := uc.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	_, err = uc.RefreshToken(ctx, "not-a-token")
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeUnauthorized, appErr.Code)
}
