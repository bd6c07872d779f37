package auth

const (
	PermCompaniesRead    = "companies.read"
	PermCompaniesWrite   = "companies.write"
	PermEmployeesRead    = "employees.read"
	PermEmployeesWrite   = "employees.write"
	PermCalendarsRead    = "calendars.read"
	PermCalendarsWrite   = "calendars.write"
	PermIncidencesRead   = "incidences.read"
	PermIncidencesWrite  = "incidences.write"
	PermIncidencesReview = "incidences.review"
	PermPayrollRead      = "payroll.read"
	PermPayrollWrite     = "payroll.write"
	PermPayrollAuthorize = "payroll.authorize"
	PermInvitationsWrite = "invitations.write"
	PermSystemAdmin      = "admin.system"
)

var DefaultPermissions = []string{
	PermCompaniesRead,
	PermCompaniesWrite,
	PermEmployeesRead,
	PermEmployeesWrite,
	PermCalendarsRead,
	PermCalendarsWrite,
	PermIncidencesRead,
	PermIncidencesWrite,
	PermIncidencesReview,
	PermPayrollRead,
	PermPayrollWrite,
	PermPayrollAuthorize,
	PermInvitationsWrite,
	PermSystemAdmin,
}

// RolePermissions is the central capability table; it is seeded into
// role_permissions and consulted by the RBAC middleware, so no handler
// hand-rolls its own role checks beyond resource ownership.
var RolePermissions = map[string][]string{
	RoleOperator: {
		PermCompaniesRead,
		PermCompaniesWrite,
		PermEmployeesRead,
		PermEmployeesWrite,
		PermCalendarsRead,
		PermCalendarsWrite,
		PermIncidencesRead,
		PermIncidencesWrite,
		PermPayrollRead,
		PermPayrollWrite,
	},
	RoleClient: {
		PermCompaniesRead,
		PermEmployeesRead,
		PermCalendarsRead,
		PermIncidencesRead,
		PermIncidencesWrite,
		PermIncidencesReview,
		PermPayrollRead,
		PermPayrollAuthorize,
		PermInvitationsWrite,
	},
	RoleDepartmentHead: {
		PermEmployeesRead,
		PermIncidencesRead,
		PermIncidencesWrite,
	},
	RoleAdmin: {
		PermCompaniesRead,
		PermCompaniesWrite,
		PermEmployeesRead,
		PermEmployeesWrite,
		PermCalendarsRead,
		PermCalendarsWrite,
		PermIncidencesRead,
		PermIncidencesWrite,
		PermIncidencesReview,
		PermPayrollRead,
		PermPayrollWrite,
		PermPayrollAuthorize,
		PermInvitationsWrite,
		PermSystemAdmin,
	},
}
