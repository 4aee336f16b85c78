package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages shifts, stock, rentals and users
	RoleEmployee Role = "karyawan" // Checks in and out of own shifts
)

var RoleValues = []string{string(RoleAdmin), string(RoleEmployee)}

type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
