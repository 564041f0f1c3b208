package user

type Permission string

const (
	// Claim Management
	PermissionClaimViewOwn Permission = "claim.view_own"
	PermissionClaimSubmit  Permission = "claim.submit"
	PermissionClaimViewAll Permission = "claim.view_all"

	// Employee Directory
	PermissionEmployeeViewAll Permission = "employee.view_all"

	// Reports
	PermissionReportsView Permission = "reports.view"

	// Approval Policy
	PermissionPolicyView Permission = "policy.view"
)

// RolePermissions maps roles to their permissions. Approval rights are not
// role-based: they come from the approval policy's designated employee ids.
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionClaimViewOwn,
		PermissionClaimSubmit,
		PermissionClaimViewAll,
		PermissionEmployeeViewAll,
		PermissionReportsView,
		PermissionPolicyView,
	},
	RoleAdmin: {
		PermissionClaimViewOwn,
		PermissionClaimSubmit,
		PermissionClaimViewAll,
		PermissionEmployeeViewAll,
		PermissionReportsView,
		PermissionPolicyView,
	},
	RoleHRManager: {
		PermissionClaimViewOwn,
		PermissionClaimSubmit,
		PermissionClaimViewAll,
		PermissionEmployeeViewAll,
		PermissionReportsView,
		PermissionPolicyView,
	},
	RolePIC: {
		PermissionClaimViewOwn,
		PermissionClaimSubmit,
		PermissionClaimViewAll,
		PermissionEmployeeViewAll,
		PermissionReportsView,
	},
	RoleStaff: {
		PermissionClaimViewOwn,
		PermissionClaimSubmit,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// HasPrivilegedAccess reports whether the role may see company-wide claim
// listings and reports. New roles only need a RolePermissions entry.
func HasPrivilegedAccess(role Role) bool {
	return HasPermission(role, PermissionClaimViewAll)
}
