package api

import (
	"net"
	"net/http"
	"strings"

	"github.com/bookhavenapp/bookhaven-server/internal/domain"
	"github.com/bookhavenapp/bookhaven-server/internal/http/response"
)

// requireAuth is middleware that validates access tokens and attaches the
// verified claims to the request context. Authentication comes before
// authorization: missing or invalid tokens are always a 401, never a 403.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Missing authorization header", s.logger)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format", s.logger)
			return
		}

		claims, err := s.authService.VerifyToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token", s.logger)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// requireScope is middleware that checks the token carries the given scope.
// Must be used after requireAuth.
func (s *Server) requireScope(scope domain.Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := getClaims(r.Context())
			if claims == nil {
				response.Unauthorized(w, "Authentication required", s.logger)
				return
			}
			if !claims.HasScope(scope) {
				response.Forbidden(w, "Token does not grant the required scope", s.logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireRole is middleware that checks the token's role satisfies the given
// role under the role hierarchy. Must be used after requireAuth.
func (s *Server) requireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := getClaims(r.Context())
			if claims == nil {
				response.Unauthorized(w, "Authentication required", s.logger)
				return
			}
			if !claims.Role.OrDefault().Satisfies(role) {
				response.Forbidden(w, "Insufficient role", s.logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// secureHeaders sets browser hardening headers on every response.
func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// rateLimit is middleware that throttles requests per client IP.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow(clientIP(r)) {
			response.TooManyRequests(w, "Too many requests", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the client address for rate-limit bucketing. RealIP
// middleware has already folded X-Forwarded-For into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
