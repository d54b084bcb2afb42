package access

var (
	fullAccess = PermissionSet{Read: true, Create: true, Update: true, Delete: true}
	readOnly   = PermissionSet{Read: true}

	// Employee apps are partitioned into full-access and read-only;
	// apps in neither list are inaccessible to Employees.
	employeeFullAccessApps = []App{
		AppContacts,
		AppCRM,
		AppCalendar,
		AppDiscuss,
		AppTodo,
		AppReception,
		AppSales,
		AppMarketing,
		AppLMS,
	}
	employeeReadOnlyApps = []App{
		AppDashboard,
		AppAccounting,
		AppInventory,
		AppManufacturing,
		AppWebsite,
		AppPointOfSale,
	}

	matrix = buildMatrix()
)

func buildMatrix() map[Role]Set {
	admin := make(Set, len(Apps))
	for _, app := range Apps {
		admin[app] = fullAccess
	}

	employee := make(Set, len(employeeFullAccessApps)+len(employeeReadOnlyApps))
	for _, app := range employeeFullAccessApps {
		employee[app] = fullAccess
	}
	for _, app := range employeeReadOnlyApps {
		employee[app] = readOnly
	}

	student := Set{
		AppLMS:              readOnly,
		AppStudentDashboard: readOnly,
		AppProfile:          readOnly,
	}

	return map[Role]Set{
		RoleAdmin:    admin,
		RoleEmployee: employee,
		RoleStudent:  student,
	}
}

// Defaults returns the matrix row for the role.
// The returned set is a copy; callers cannot mutate the matrix through it.
// An unrecognized role yields an empty set (a silent deny on every check).
func Defaults(role Role) Set {
	row, ok := matrix[role]
	if !ok {
		return Set{}
	}
	return row.Clone()
}
