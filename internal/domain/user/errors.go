package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUsernameExists          = errors.New("username already registered")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrSessionMissing          = errors.New("no authenticated session in context")
	ErrCannotDeleteSelf        = errors.New("administrators cannot delete their own account")
)
