package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Satisfies(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		want     bool
	}{
		{"admin satisfies admin", RoleAdmin, RoleAdmin, true},
		{"admin satisfies editor", RoleAdmin, RoleEditor, true},
		{"admin satisfies user", RoleAdmin, RoleUser, true},
		{"editor satisfies editor", RoleEditor, RoleEditor, true},
		{"editor satisfies user", RoleEditor, RoleUser, true},
		{"editor does not satisfy admin", RoleEditor, RoleAdmin, false},
		{"user satisfies user", RoleUser, RoleUser, true},
		{"user does not satisfy editor", RoleUser, RoleEditor, false},
		{"user does not satisfy admin", RoleUser, RoleAdmin, false},
		{"unknown role satisfies nothing", Role("superuser"), RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Satisfies(tt.required))
		})
	}
}

func TestRole_Reflexive(t *testing.T) {
	// Every role in the closed set must satisfy itself.
	for _, r := range []Role{RoleAdmin, RoleEditor, RoleUser} {
		assert.True(t, r.Satisfies(r), "role %s should satisfy itself", r)
	}
}

func TestRole_OrDefault(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleAdmin.OrDefault())
	assert.Equal(t, RoleUser, Role("").OrDefault())
	assert.Equal(t, RoleUser, Role("superuser").OrDefault())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("admin"))
	assert.True(t, ValidRole("editor"))
	assert.True(t, ValidRole("user"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("root"))
}

func TestScopesFor_Monotonic(t *testing.T) {
	userScopes := ScopesFor(RoleUser)
	editorScopes := ScopesFor(RoleEditor)
	adminScopes := ScopesFor(RoleAdmin)

	assert.Subset(t, editorScopes, userScopes, "editor scopes must contain user scopes")
	assert.Subset(t, adminScopes, editorScopes, "admin scopes must contain editor scopes")

	assert.Greater(t, len(editorScopes), len(userScopes))
	assert.Greater(t, len(adminScopes), len(editorScopes))
}

func TestScopesFor_Content(t *testing.T) {
	assert.ElementsMatch(t,
		[]Scope{ScopeBooksRead, ScopeReviewsRead, ScopeReviewsWrite},
		ScopesFor(RoleUser))

	assert.Contains(t, ScopesFor(RoleEditor), ScopeBooksWrite)
	assert.Contains(t, ScopesFor(RoleEditor), ScopeReviewsDelete)
	assert.NotContains(t, ScopesFor(RoleEditor), ScopeUsersRead)

	adminScopes := ScopesFor(RoleAdmin)
	for _, s := range []Scope{ScopeUsersRead, ScopeUsersWrite, ScopeUsersDelete} {
		assert.Contains(t, adminScopes, s)
	}
}

func TestScopesFor_UnknownRoleGetsBase(t *testing.T) {
	assert.ElementsMatch(t, ScopesFor(RoleUser), ScopesFor(Role("mystery")))
}

func TestFallbackScopes(t *testing.T) {
	assert.ElementsMatch(t, []Scope{ScopeBooksRead, ScopeReviewsRead}, FallbackScopes())
	// Fallback must be a subset of every role's real scope set.
	for _, r := range []Role{RoleAdmin, RoleEditor, RoleUser} {
		assert.Subset(t, ScopesFor(r), FallbackScopes())
	}
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
}
