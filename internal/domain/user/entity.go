package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleSupervisor Role = "supervisor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleSupervisor:
		return true
	}
	return false
}

// Label is the job title given to the employee record created at signup.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleSupervisor:
		return "Supervisor"
	default:
		return "Employee"
	}
}

// HasEmployeeRecord reports whether signing up with this role also creates an employee.
func (r Role) HasEmployeeRecord() bool {
	return r == RoleUser || r == RoleSupervisor
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Photo        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	EmployeeID *string
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
