package user

import "github.com/willykudo/pionix/internal/domain/shift"

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Attendance Management
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceManage  Permission = "attendance.manage"

	// Shift Management
	PermissionShiftViewOwn Permission = "shift.view_own"
	PermissionShiftViewAll Permission = "shift.view_all"
	PermissionShiftManage  Permission = "shift.manage"

	// Inventory
	PermissionProductView   Permission = "product.view"
	PermissionProductManage Permission = "product.manage"
	PermissionRentalView    Permission = "rental.view"
	PermissionRentalManage  Permission = "rental.manage"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionShiftViewOwn,
		PermissionShiftViewAll,
		PermissionShiftManage,
		PermissionProductView,
		PermissionProductManage,
		PermissionRentalView,
		PermissionRentalManage,
		PermissionUserManage,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionShiftViewOwn,
		PermissionProductView,
		PermissionRentalView,
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

// ScopeFor returns whose shifts a role may see.
func ScopeFor(role Role) shift.Scope {
	if HasPermission(role, PermissionShiftViewAll) {
		return shift.ScopeAll
	}
	return shift.ScopeSelf
}
