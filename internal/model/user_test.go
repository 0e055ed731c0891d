package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRoleListClosedSet(t *testing.T) {
	tests := []struct {
		name  string
		roles string
		want  []Role
	}{
		{"empty column", "", nil},
		{"admin", `["ROLE_ADMIN"]`, []Role{RoleAdmin}},
		{"both", `["ROLE_USER","ROLE_ADMIN"]`, []Role{RoleUser, RoleAdmin}},
		{"unknown roles dropped", `["ROLE_SUPERUSER","ROLE_ADMIN"]`, []Role{RoleAdmin}},
		{"garbage column", "oops", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Roles: tt.roles}
			assert.Equal(t, tt.want, u.RoleList())
		})
	}
}

func TestUserSetRoleListRoundTrip(t *testing.T) {
	var u User
	require.NoError(t, u.SetRoleList([]Role{RoleAdmin, RoleUser}))
	assert.Equal(t, `["ROLE_ADMIN","ROLE_USER"]`, u.Roles)
	assert.True(t, u.HasRole(RoleAdmin))
	assert.True(t, u.HasRole(RoleUser))
}

func TestUserHasRole(t *testing.T) {
	u := User{Roles: `["ROLE_USER"]`}
	assert.True(t, u.HasRole(RoleUser))
	assert.False(t, u.HasRole(RoleAdmin))
}
