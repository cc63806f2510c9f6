package auth

import (
	"time"

	"github.com/bookhavenapp/bookhaven-server/internal/domain"
)

// AccessClaims represents the claims stored in a PASETO access token.
// These are encrypted in v4.local tokens, so they're not readable without the key.
type AccessClaims struct {
	UserID   string         `json:"user_id"`
	Username string         `json:"username"`
	Role     domain.Role    `json:"role"`
	Scopes   []domain.Scope `json:"scopes"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Audience   string    `json:"aud"`
	Subject    string    `json:"sub"`
	Expiration time.Time `json:"exp"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// HasScope reports whether the token carries the given scope.
func (c *AccessClaims) HasScope(scope domain.Scope) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
