package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allActions = []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}

func TestDefaults_admin(t *testing.T) {
	defaults := Defaults(RoleAdmin)

	assert.Len(t, defaults, len(Apps))
	for _, app := range Apps {
		for _, action := range allActions {
			assert.True(t, defaults.Allows(app, action), "admin should be allowed %s on %s", action, app)
		}
	}

	// student-only areas are not part of the admin row
	assert.False(t, defaults.Allows(AppStudentDashboard, ActionRead))
	assert.False(t, defaults.Allows(AppProfile, ActionRead))
}

func TestDefaults_employee(t *testing.T) {
	defaults := Defaults(RoleEmployee)

	for _, app := range employeeFullAccessApps {
		for _, action := range allActions {
			assert.True(t, defaults.Allows(app, action), "employee should be allowed %s on %s", action, app)
		}
	}
	for _, app := range employeeReadOnlyApps {
		assert.True(t, defaults.Allows(app, ActionRead), "employee should be allowed read on %s", app)
		for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
			assert.False(t, defaults.Allows(app, action), "employee should be denied %s on %s", action, app)
		}
	}
	for _, app := range []App{AppSettings, AppAccessControl, AppStudentDashboard, AppProfile} {
		for _, action := range allActions {
			assert.False(t, defaults.Allows(app, action), "employee should be denied %s on %s", action, app)
		}
	}
}

func TestDefaults_student(t *testing.T) {
	defaults := Defaults(RoleStudent)

	assert.Len(t, defaults, 3)
	for _, app := range []App{AppLMS, AppStudentDashboard, AppProfile} {
		assert.True(t, defaults.Allows(app, ActionRead), "student should be allowed read on %s", app)
		for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
			assert.False(t, defaults.Allows(app, action), "student should be denied %s on %s", action, app)
		}
	}
	for _, app := range Apps {
		if app == AppLMS {
			continue
		}
		for _, action := range allActions {
			assert.False(t, defaults.Allows(app, action), "student should be denied %s on %s", action, app)
		}
	}
}

func TestDefaults_unknownRole(t *testing.T) {
	defaults := Defaults(Role("Janitor"))
	assert.Empty(t, defaults)
	assert.False(t, defaults.Allows(AppDashboard, ActionRead))
}

func TestDefaults_returnsCopies(t *testing.T) {
	row := Defaults(RoleAdmin)
	row[AppDashboard] = PermissionSet{}
	delete(row, AppContacts)

	fresh := Defaults(RoleAdmin)
	assert.True(t, fresh.Allows(AppDashboard, ActionDelete))
	assert.True(t, fresh.Allows(AppContacts, ActionRead))
}
