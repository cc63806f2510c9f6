package service

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhavenapp/bookhaven-server/internal/auth"
	"github.com/bookhavenapp/bookhaven-server/internal/domain"
	domainerrors "github.com/bookhavenapp/bookhaven-server/internal/errors"
	"github.com/bookhavenapp/bookhaven-server/internal/store"
	"github.com/bookhavenapp/bookhaven-server/internal/store/sqlite"
)

// setupAuthTest creates an auth service backed by temporary storage.
func setupAuthTest(t *testing.T) (*AuthService, store.Store, *auth.TokenService) {
	t.Helper()

	tmpDir := t.TempDir()

	s, err := sqlite.Open(tmpDir+"/test.db", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(hex.EncodeToString(authKey), 24*time.Hour)
	require.NoError(t, err)

	return NewAuthService(s, tokenService, nil), s, tokenService
}

func TestAuthService_Register_Success(t *testing.T) {
	authService, s, _ := setupAuthTest(t)
	ctx := context.Background()

	resp, err := authService.Register(ctx, RegisterRequest{
		Username: "margaret",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.UserID)
	assert.Equal(t, "margaret", resp.Username)

	// New accounts start with the base role.
	user, err := s.GetUser(ctx, resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.HasPassword())
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	authService, _, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "margaret", Password: "correct-horse-battery"})
	require.NoError(t, err)

	// Same username in different case still collides.
	_, err = authService.Register(ctx, RegisterRequest{Username: "MARGARET", Password: "correct-horse-battery"})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyExists))
}

func TestAuthService_Register_WithRole(t *testing.T) {
	authService, s, _ := setupAuthTest(t)
	ctx := context.Background()

	resp, err := authService.Register(ctx, RegisterRequest{
		Username: "harold",
		Password: "correct-horse-battery",
		Role:     "editor",
	})
	require.NoError(t, err)
	assert.Equal(t, "editor", resp.Role)

	user, err := s.GetUser(ctx, resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, user.Role)

	// Unknown role names are rejected, not silently downgraded.
	_, err = authService.Register(ctx, RegisterRequest{
		Username: "pretender",
		Password: "correct-horse-battery",
		Role:     "superuser",
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestAuthService_Register_Validation(t *testing.T) {
	authService, _, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "margaret", Password: "short"})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, err = authService.Register(ctx, RegisterRequest{Username: "", Password: "correct-horse-battery"})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestAuthService_Login_Success(t *testing.T) {
	authService, _, tokenService := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "margaret", Password: "correct-horse-battery"})
	require.NoError(t, err)

	result, err := authService.Login(ctx, "margaret", "correct-horse-battery")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := tokenService.VerifyAccessToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "margaret", claims.Username)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.True(t, claims.HasScope(domain.ScopeBooksRead))
	assert.True(t, claims.HasScope(domain.ScopeReviewsWrite))
	assert.False(t, claims.HasScope(domain.ScopeBooksWrite))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, _, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "margaret", Password: "correct-horse-battery"})
	require.NoError(t, err)

	_, err = authService.Login(ctx, "margaret", "wrong-password")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	authService, _, _ := setupAuthTest(t)

	_, err := authService.Login(context.Background(), "nobody", "any-password")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_AdminScopes(t *testing.T) {
	authService, s, tokenService := setupAuthTest(t)
	ctx := context.Background()

	resp, err := authService.Register(ctx, RegisterRequest{Username: "root", Password: "correct-horse-battery"})
	require.NoError(t, err)
	require.NoError(t, s.UpdateUserRole(ctx, resp.UserID, domain.RoleAdmin))

	result, err := authService.Login(ctx, "root", "correct-horse-battery")
	require.NoError(t, err)

	claims, err := tokenService.VerifyAccessToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.True(t, claims.HasScope(domain.ScopeBooksWrite))
	assert.True(t, claims.HasScope(domain.ScopeUsersDelete))
}

func TestAuthService_Login_SelfHealsMissingRole(t *testing.T) {
	authService, s, tokenService := setupAuthTest(t)
	ctx := context.Background()

	// Legacy account: password but no stored role.
	hash, err := auth.HashPassword("correct-horse-battery")
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, s.CreateUser(ctx, &domain.User{
		ID:           "user-legacy",
		Username:     "oldtimer",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	result, err := authService.Login(ctx, "oldtimer", "correct-horse-battery")
	require.NoError(t, err)

	claims, err := tokenService.VerifyAccessToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, claims.Role)

	// The default role was written back.
	user, err := s.GetUser(ctx, "user-legacy")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestAuthService_Login_FallbackOnUnknownRole(t *testing.T) {
	authService, s, tokenService := setupAuthTest(t)
	ctx := context.Background()

	resp, err := authService.Register(ctx, RegisterRequest{Username: "weird", Password: "correct-horse-battery"})
	require.NoError(t, err)
	require.NoError(t, s.UpdateUserRole(ctx, resp.UserID, domain.Role("superuser")))

	// Login still succeeds, with a degraded read-mostly token.
	result, err := authService.Login(ctx, "weird", "correct-horse-battery")
	require.NoError(t, err)

	claims, err := tokenService.VerifyAccessToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.True(t, claims.HasScope(domain.ScopeBooksRead))
	assert.True(t, claims.HasScope(domain.ScopeReviewsRead))
	assert.False(t, claims.HasScope(domain.ScopeReviewsWrite))
}

func TestAuthService_VerifyToken_Invalid(t *testing.T) {
	authService, _, _ := setupAuthTest(t)

	_, err := authService.VerifyToken("v4.local.garbage")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	_, s, _ := setupAuthTest(t)
	ctx := context.Background()

	// A token service with a negative lifetime issues already-expired tokens.
	expiredTokens, err := auth.NewTokenService(
		"0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef", -time.Minute)
	require.NoError(t, err)
	authService := NewAuthService(s, expiredTokens, nil)

	_, err = authService.Register(ctx, RegisterRequest{Username: "margaret", Password: "correct-horse-battery"})
	require.NoError(t, err)

	result, err := authService.Login(ctx, "margaret", "correct-horse-battery")
	require.NoError(t, err)

	_, err = authService.VerifyToken(result.Token)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrTokenExpired))
}

// fallbackOnlyIssuer refuses full scope sets and only manages the degraded
// base-role token, mimicking a token layer that fails mid-issuance.
type fallbackOnlyIssuer struct{}

func (fallbackOnlyIssuer) GenerateAccessToken(_ *domain.User, _ domain.Role, scopes []domain.Scope) (string, error) {
	if len(scopes) > len(domain.FallbackScopes()) {
		return "", errors.New("entropy source unavailable")
	}
	return "degraded-token", nil
}

func (fallbackOnlyIssuer) VerifyAccessToken(string) (*auth.AccessClaims, error) {
	return nil, errors.New("verification unavailable")
}

func TestAuthService_Login_FallsBackWhenIssuanceFails(t *testing.T) {
	authService, s, _ := setupAuthTest(t)
	ctx := context.Background()

	_, err := authService.Register(ctx, RegisterRequest{Username: "margaret", Password: "correct-horse-battery"})
	require.NoError(t, err)

	// Verified credentials must still get a token when full issuance fails.
	degraded := NewAuthService(s, fallbackOnlyIssuer{}, nil)
	result, err := degraded.Login(ctx, "margaret", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, "degraded-token", result.Token)
}
