package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeFor(t *testing.T) {
	admin := ScopeFor(RoleAdmin, "")
	assert.True(t, admin.All)
	assert.True(t, admin.Visible())

	user := ScopeFor(RoleUser, "584120000001")
	assert.False(t, user.All)
	assert.Equal(t, "584120000001", user.Telefono)
	assert.True(t, user.Visible())
}

func TestScopeWithoutTelefonoSeesNothing(t *testing.T) {
	s := ScopeFor(RoleUser, "")
	assert.False(t, s.All)
	assert.False(t, s.Visible(), "a non-admin without telefono must match no rows")
}

func TestScopeTenant(t *testing.T) {
	admin := ScopeFor(RoleAdmin, "")
	assert.Equal(t, "584129999999", admin.Tenant("584129999999"))

	user := ScopeFor(RoleUser, "584120000001")
	assert.Equal(t, "584120000001", user.Tenant("584129999999"),
		"a non-admin can only write into its own tenant")
}
