package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_fallsBackToRoleDefaults(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		override Set
	}{
		{name: "nil override", role: RoleEmployee, override: nil},
		// an override narrowed to an empty map falls back to full role defaults;
		// intentional all-or-nothing semantics, asserted here so any change is deliberate
		{name: "empty override", role: RoleStudent, override: Set{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Defaults(tt.role), Resolve(tt.role, tt.override))
		})
	}
}

func TestResolve_overrideWinsWholesale(t *testing.T) {
	override := Set{
		AppAccounting: {Read: true, Update: true},
	}

	resolved := Resolve(RoleStudent, override)

	// exactly the override; never merged with the role defaults
	assert.Equal(t, override, resolved)
	assert.False(t, resolved.Allows(AppLMS, ActionRead))
	assert.False(t, resolved.Allows(AppStudentDashboard, ActionRead))
	assert.True(t, resolved.Allows(AppAccounting, ActionUpdate))
}

func TestResolve_idempotent(t *testing.T) {
	override := Set{AppCRM: fullAccess, AppDashboard: readOnly}

	first := Resolve(RoleEmployee, override)
	second := Resolve(RoleEmployee, override)
	assert.Equal(t, first, second)

	// mutating a resolved set must not leak into subsequent resolutions
	first[AppCRM] = PermissionSet{}
	assert.Equal(t, second, Resolve(RoleEmployee, override))
}

func TestResolve_unknownRole(t *testing.T) {
	assert.Empty(t, Resolve(Role("Visitor"), nil))
}
