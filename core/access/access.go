// Package access implements the role/permission model gating every protected
// route and UI affordance: per-app CRUD permission sets, the static role
// defaults matrix and the resolution of a user's effective permissions.
package access

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// Role is the coarse-grained identity class determining default capabilities.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Employee"
	RoleStudent  Role = "Student"
)

var Roles = []Role{RoleAdmin, RoleEmployee, RoleStudent}

func KnownRole(r Role) bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// App identifies a functional area of the system subject to independent CRUD gating.
type App string

const (
	AppDashboard     App = "Dashboard"
	AppContacts      App = "Contacts"
	AppLMS           App = "LMS"
	AppCRM           App = "CRM"
	AppCalendar      App = "Calendar"
	AppDiscuss       App = "Discuss"
	AppAccounting    App = "Accounting"
	AppSales         App = "Sales"
	AppInventory     App = "Inventory"
	AppManufacturing App = "Manufacturing"
	AppWebsite       App = "Website"
	AppPointOfSale   App = "Point of Sale"
	AppMarketing     App = "Marketing"
	AppTodo          App = "To-do"
	AppReception     App = "Reception"
	AppSettings      App = "Settings"
	AppAccessControl App = "Access Control"

	// student-only areas
	AppStudentDashboard App = "StudentDashboard"
	AppProfile          App = "Profile"
)

// Apps is the canonical list of staff-facing apps; it is the app set the
// Admin role gets full access to.
var Apps = []App{
	AppDashboard,
	AppContacts,
	AppLMS,
	AppCRM,
	AppCalendar,
	AppDiscuss,
	AppAccounting,
	AppSales,
	AppInventory,
	AppManufacturing,
	AppWebsite,
	AppPointOfSale,
	AppMarketing,
	AppTodo,
	AppReception,
	AppSettings,
	AppAccessControl,
}

var studentApps = []App{AppStudentDashboard, AppProfile}

// KnownApp reports whether the app name belongs to the closed app set.
// Permission assignment rejects unknown names; permission checks simply deny them.
func KnownApp(a App) bool {
	for _, app := range Apps {
		if a == app {
			return true
		}
	}
	for _, app := range studentApps {
		if a == app {
			return true
		}
	}
	return false
}

// Action is one of the four independent CRUD grants.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// PermissionSet holds the four independent CRUD grants for one app.
// An absent flag means the action is not granted.
type PermissionSet struct {
	Read   bool `json:"read,omitempty"`
	Create bool `json:"create,omitempty"`
	Update bool `json:"update,omitempty"`
	Delete bool `json:"delete,omitempty"`
}

func (ps PermissionSet) Has(action Action) bool {
	switch action {
	case ActionRead:
		return ps.Read
	case ActionCreate:
		return ps.Create
	case ActionUpdate:
		return ps.Update
	case ActionDelete:
		return ps.Delete
	}
	return false
}

// Set maps apps to their permission sets; either a role's matrix row or
// a user's stored override.
type Set map[App]PermissionSet

// Allows reports whether `action` on `app` is granted.
// Unknown apps and actions are a silent deny.
func (s Set) Allows(app App, action Action) bool {
	return s[app].Has(action)
}

func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	clone := make(Set, len(s))
	for app, perms := range s {
		clone[app] = perms
	}
	return clone
}

// Check validates every app name in the set against the closed app set.
func (s Set) Check() (invalid []App) {
	for app := range s {
		if !KnownApp(app) {
			invalid = append(invalid, app)
		}
	}
	return invalid
}

// Value implements driver.Valuer; Set is persisted as a jsonb column.
func (s Set) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(s)
	return data, errors.Wrap(err, "marshaling permission set")
}

// Scan implements sql.Scanner.
func (s *Set) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("unsupported permission set type %T", src)
	}
	return errors.Wrap(json.Unmarshal(data, s), "unmarshaling permission set")
}
