package domain

// Role is a named privilege level. The set is closed: every user holds
// exactly one role, and an unassigned role is treated as RoleUser.
type Role string

// The closed, ordered role set.
const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleUser   Role = "user"
)

// Scope is a fine-grained permission string carried inside access tokens,
// distinct from the role it was derived from.
type Scope = string

// Scopes recognized by the API.
const (
	ScopeBooksRead     Scope = "books:read"
	ScopeBooksWrite    Scope = "books:write"
	ScopeReviewsRead   Scope = "reviews:read"
	ScopeReviewsWrite  Scope = "reviews:write"
	ScopeReviewsDelete Scope = "reviews:delete"
	ScopeUsersRead     Scope = "users:read"
	ScopeUsersWrite    Scope = "users:write"
	ScopeUsersDelete   Scope = "users:delete"
)

// roleHierarchy maps a role to the set of roles it satisfies.
// The relation is reflexive: every role satisfies itself.
var roleHierarchy = map[Role][]Role{
	RoleAdmin:  {RoleAdmin, RoleEditor, RoleUser},
	RoleEditor: {RoleEditor, RoleUser},
	RoleUser:   {RoleUser},
}

// ValidRole reports whether name is one of the closed role set.
func ValidRole(name string) bool {
	_, ok := roleHierarchy[Role(name)]
	return ok
}

// Satisfies reports whether holding r grants the privileges of required.
// Unknown roles satisfy nothing.
func (r Role) Satisfies(required Role) bool {
	for _, allowed := range roleHierarchy[r] {
		if allowed == required {
			return true
		}
	}
	return false
}

// OrDefault returns r, or RoleUser when r is empty or unknown.
func (r Role) OrDefault() Role {
	if _, ok := roleHierarchy[r]; !ok {
		return RoleUser
	}
	return r
}

// ScopesFor derives the scope set for a role. Scope sets are strictly
// increasing along the hierarchy: admin's set contains editor's, which
// contains user's.
func ScopesFor(role Role) []Scope {
	scopes := []Scope{ScopeBooksRead, ScopeReviewsRead, ScopeReviewsWrite}

	switch role.OrDefault() {
	case RoleAdmin:
		scopes = append(scopes, ScopeBooksWrite, ScopeReviewsDelete,
			ScopeUsersRead, ScopeUsersWrite, ScopeUsersDelete)
	case RoleEditor:
		scopes = append(scopes, ScopeBooksWrite, ScopeReviewsDelete)
	}

	return scopes
}

// FallbackScopes is the minimal read-only scope set embedded in tokens
// issued when role resolution fails during login.
func FallbackScopes() []Scope {
	return []Scope{ScopeBooksRead, ScopeReviewsRead}
}
