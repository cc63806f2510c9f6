package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookhavenapp/bookhaven-server/internal/auth"
	"github.com/bookhavenapp/bookhaven-server/internal/domain"
	domainerrors "github.com/bookhavenapp/bookhaven-server/internal/errors"
	"github.com/bookhavenapp/bookhaven-server/internal/id"
	"github.com/bookhavenapp/bookhaven-server/internal/store"
)

// TokenIssuer is the token surface AuthService depends on.
// *auth.TokenService is the production implementation.
type TokenIssuer interface {
	GenerateAccessToken(user *domain.User, role domain.Role, scopes []domain.Scope) (string, error)
	VerifyAccessToken(tokenString string) (*auth.AccessClaims, error)
}

// AuthService handles registration, credential verification, and token issuance.
type AuthService struct {
	store        store.Store
	tokenService TokenIssuer
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store store.Store, tokenService TokenIssuer, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		logger:       logger,
	}
}

// RegisterRequest contains user registration data. Role is optional and
// defaults to the base role; unknown role names are rejected.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	Role     string `json:"role" validate:"omitempty,oneof=admin editor user"`
}

// RegisterResponse contains the result of a registration request.
type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Message  string `json:"message"`
}

// LoginResult carries the issued token and the authenticated account.
type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates a new account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	role := domain.Role(req.Role).OrDefault()

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           userID,
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if domainerrors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("username is already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)

	return &RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		Message:  "account created",
	}, nil
}

// Login verifies credentials and issues an access token. The failure mode
// is identical for unknown usernames and wrong passwords.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid username or password")
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if !user.HasPassword() || !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	token, err := s.issueAccessToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &LoginResult{Token: token, User: user}, nil
}

// issueAccessToken resolves the user's role and scope set and encodes them
// into a new token. Accounts with no stored role get the base role
// persisted on first login; if that write fails, or role resolution fails
// for any other reason, a degraded token with read-mostly scopes is issued
// instead. Credentials already checked out, so login does not fail here.
func (s *AuthService) issueAccessToken(ctx context.Context, user *domain.User) (string, error) {
	role := user.Role
	if role == "" {
		role = domain.RoleUser
		if err := s.store.UpdateUserRole(ctx, user.ID, role); err != nil {
			s.logger.Warn("failed to persist default role, issuing fallback token",
				"user_id", user.ID, "error", err)
			return s.issueFallbackToken(user)
		}
		user.Role = role
	}

	if !domain.ValidRole(string(role)) {
		s.logger.Warn("unknown stored role, issuing fallback token",
			"user_id", user.ID, "role", string(role))
		return s.issueFallbackToken(user)
	}

	token, err := s.tokenService.GenerateAccessToken(user, role, domain.ScopesFor(role))
	if err != nil {
		s.logger.Warn("token generation failed, issuing fallback token",
			"user_id", user.ID, "error", err)
		return s.issueFallbackToken(user)
	}

	return token, nil
}

// issueFallbackToken encodes the base role with read-mostly scopes. The only
// way this can fail as well is an outage of the randomness source, and that
// error does surface to the login caller.
func (s *AuthService) issueFallbackToken(user *domain.User) (string, error) {
	return s.tokenService.GenerateAccessToken(user, domain.RoleUser, domain.FallbackScopes())
}

// VerifyToken parses and validates a bearer token, returning its claims.
func (s *AuthService) VerifyToken(tokenString string) (*auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		if domainerrors.Is(err, auth.ErrTokenExpired) {
			return nil, domainerrors.TokenExpired("token expired")
		}
		return nil, domainerrors.Unauthorized("invalid or expired token")
	}
	return claims, nil
}
