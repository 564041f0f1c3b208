package user

import "time"

type Role string

const (
	RoleSuperAdmin Role = "Super Admin"
	RoleAdmin      Role = "Admin"
	RoleHRManager  Role = "HR Manager"
	RolePIC        Role = "PIC"
	RoleStaff      Role = "Staff"
)

type User struct {
	ID         string
	Username   string
	Role       Role
	EmployeeID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
