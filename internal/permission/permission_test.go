package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHR(t *testing.T) {
	gate := NewGate("HR", "Staff")

	assert.True(t, gate.IsHR(RoleSet{"HR"}))
	assert.True(t, gate.IsHR(RoleSet{"Member", "HR"}))
	assert.False(t, gate.IsHR(RoleSet{"Staff"}))
	assert.False(t, gate.IsHR(RoleSet{}))
	assert.False(t, gate.IsHR(nil))
}

func TestIsStaffAcceptsHR(t *testing.T) {
	gate := NewGate("HR", "Staff")

	assert.True(t, gate.IsStaff(RoleSet{"Staff"}))
	assert.True(t, gate.IsStaff(RoleSet{"HR"}))
	assert.False(t, gate.IsStaff(RoleSet{"Member"}))
	assert.False(t, gate.IsStaff(nil))
}

func TestConfiguredRoleNames(t *testing.T) {
	gate := NewGate("People Ops", "Moderators")

	assert.True(t, gate.IsHR(RoleSet{"People Ops"}))
	assert.False(t, gate.IsHR(RoleSet{"HR"}))
	assert.True(t, gate.IsStaff(RoleSet{"Moderators"}))
	assert.False(t, gate.IsStaff(RoleSet{"Staff"}))
}

func TestRequireHelpers(t *testing.T) {
	gate := NewGate("HR", "Staff")

	assert.NoError(t, gate.RequireHR(RoleSet{"HR"}))
	assert.ErrorIs(t, gate.RequireHR(RoleSet{"Staff"}), ErrForbidden)
	assert.ErrorIs(t, gate.RequireHR(nil), ErrForbidden)

	assert.NoError(t, gate.RequireStaff(RoleSet{"Staff"}))
	assert.NoError(t, gate.RequireStaff(RoleSet{"HR"}))
	assert.ErrorIs(t, gate.RequireStaff(RoleSet{"Member"}), ErrForbidden)
	assert.ErrorIs(t, gate.RequireStaff(nil), ErrForbidden)
}
