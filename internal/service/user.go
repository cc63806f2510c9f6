package service

import (
	"context"
	"log/slog"

	"github.com/bookhavenapp/bookhaven-server/internal/domain"
	domainerrors "github.com/bookhavenapp/bookhaven-server/internal/errors"
	"github.com/bookhavenapp/bookhaven-server/internal/store"
)

// UserService covers account lookups and the admin-only account operations.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &UserService{store: store, logger: logger}
}

// AssignRoleRequest contains the target role for an account.
type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin editor user"`
}

// GetUser returns a single account.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.GetUser(ctx, userID)
}

// ListUsers returns all accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx)
}

// AssignRole sets an account's role. Takes effect on the account's next
// login; tokens already issued keep their embedded role until expiry.
func (s *UserService) AssignRole(ctx context.Context, userID string, req AssignRoleRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	if err := s.store.UpdateUserRole(ctx, userID, domain.Role(req.Role)); err != nil {
		return nil, err
	}

	s.logger.Info("role assigned", "user_id", userID, "role", req.Role)
	return s.store.GetUser(ctx, userID)
}

// DeleteUser removes an account. Admins cannot delete themselves; a
// server should not be left without its last administrator by accident.
func (s *UserService) DeleteUser(ctx context.Context, userID, actorID string) error {
	if userID == actorID {
		return domainerrors.Conflict("cannot delete your own account")
	}

	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}
