package services

import (
	"testing"
	"time"

	"github.com/projtrack/project-tracker-api/internal/models"
	"github.com/projtrack/project-tracker-api/internal/repository"
	"github.com/projtrack/project-tracker-api/internal/token"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Project{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	issuer := token.NewIssuer("test-secret", time.Hour)
	return NewAuthService(userRepo, issuer)
}

func TestAuthService_Register(t *testing.T) {
	svc := setupAuthService(t)

	user, signed, err := svc.Register(RegisterInput{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "Ana", user.Name)
	require.NotEmpty(t, signed)
	require.NotEqual(t, "secret1", user.PasswordHash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := setupAuthService(t)

	_, _, err := svc.Register(RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = svc.Register(RegisterInput{Name: "Other", Email: "ana@x.com", Password: "secret2"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthService(t)

	_, _, err := svc.Register(RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	user, signed, err := svc.Login(LoginInput{Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "ana@x.com", user.Email)
	require.NotEmpty(t, signed)
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	svc := setupAuthService(t)

	_, _, err := svc.Register(RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	// Wrong password and unknown email must be the same error
	_, _, wrongPassword := svc.Login(LoginInput{Email: "ana@x.com", Password: "wrong-password"})
	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)

	_, _, unknownEmail := svc.Login(LoginInput{Email: "nobody@x.com", Password: "secret1"})
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)

	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_GetUser_NotFound(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.GetUser(9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}
