package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRoles(t *testing.T) {
	assert.Equal(t, []string{"Admin", "User"}, SplitRoles(" Admin, User,,"))
	assert.Nil(t, SplitRoles(""))
}

func TestHasRoleIgnoresCase(t *testing.T) {
	u := &User{Roles: "user,admin"}
	assert.True(t, u.HasRole(RoleAdmin))
	assert.False(t, u.HasRole("Curator"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@museum.org", NormalizeEmail("  Ada@Museum.ORG "))
}
