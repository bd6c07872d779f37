package auth

const (
	RoleOperator       = "OPERATOR"
	RoleClient         = "CLIENT"
	RoleDepartmentHead = "DEPARTMENT_HEAD"
	RoleAdmin          = "ADMIN"
)

// UserContext is what the auth middleware extracts from a verified token.
type UserContext struct {
	UserID    string
	CompanyID string
	RoleID    string
	RoleName  string
}

// BelongsTo reports whether the user may act on the given company's
// resources. Operators and admins are back-office users without a company
// binding and may act on any company.
func (u UserContext) BelongsTo(companyID string) bool {
	if u.RoleName == RoleOperator || u.RoleName == RoleAdmin {
		return true
	}
	return u.CompanyID == companyID
}
