package api

import (
	"context"

	"github.com/bookhavenapp/bookhaven-server/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyClaims contextKey = "claims"

// withClaims stores verified token claims in the request context.
func withClaims(ctx context.Context, claims *auth.AccessClaims) context.Context {
	return context.WithValue(ctx, contextKeyClaims, claims)
}

// getClaims extracts verified token claims from the request context.
// Returns nil if the request is not authenticated.
func getClaims(ctx context.Context) *auth.AccessClaims {
	claims, ok := ctx.Value(contextKeyClaims).(*auth.AccessClaims)
	if !ok {
		return nil
	}
	return claims
}

// getUserID extracts the authenticated user ID from the request context.
// Returns empty string if not authenticated.
func getUserID(ctx context.Context) string {
	if claims := getClaims(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
