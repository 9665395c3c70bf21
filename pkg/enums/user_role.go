package enums

// UserRole distinguishes shoppers from staff accounts.
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleStaff    UserRole = "staff"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleCustomer, UserRoleStaff:
		return true
	}
	return false
}
