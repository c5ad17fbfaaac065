package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRoleValid(t *testing.T) {
	for _, role := range AllRoles() {
		assert.True(t, role.Valid(), "role %q should be valid", role)
	}

	assert.False(t, UserRole("superuser").Valid())
	assert.False(t, UserRole("").Valid())
}

func TestNewUser(t *testing.T) {
	user := NewUser("Ana", "ana@example.com", "hash", RoleEditor)

	assert.NotEqual(t, [16]byte{}, [16]byte(user.ID))
	assert.Equal(t, RoleEditor, user.Role)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.False(t, user.IsAdmin())
	assert.True(t, NewUser("Root", "root@example.com", "hash", RoleAdmin).IsAdmin())
}

func TestUserPasswordNeverSerialized(t *testing.T) {
	user := NewUser("Ana", "ana@example.com", "bcrypt-hash", RoleViewer)

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "bcrypt-hash")
	assert.NotContains(t, string(raw), "password")
}
