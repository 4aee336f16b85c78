package auth

import (
	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/pkg/validator"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3-50 letters, numbers, dots, underscores or hyphens",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	errs = append(errs, validatePassword("password", r.Password)...)

	if r.Role == "" {
		r.Role = string(user.RoleEmployee)
	} else if !validator.IsInSlice(r.Role, user.RoleValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be admin or karyawan",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResetPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	errs = append(errs, validatePassword("newPassword", r.NewPassword)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs = append(errs, validator.ValidationError{
			Field:   "refreshToken",
			Message: "refreshToken is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LogoutRequest carries the tokens to revoke; both are optional.
type LogoutRequest struct {
	AccessToken  string `json:"-"`
	RefreshToken string `json:"refreshToken"`
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string            `json:"token"`
	AccessTokenExpiresIn  int64             `json:"tokenExpiresIn"`
	RefreshToken          string            `json:"refreshToken"`
	RefreshTokenExpiresIn int64             `json:"refreshTokenExpiresIn"`
	User                  user.UserResponse `json:"user"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"token"`
	AccessTokenExpiresIn int64  `json:"tokenExpiresIn"`
}

func validatePassword(field, password string) validator.ValidationErrors {
	switch {
	case validator.IsEmpty(password):
		return validator.ValidationErrors{{Field: field, Message: field + " is required"}}
	case len(password) < 6:
		return validator.ValidationErrors{{Field: field, Message: field + " must be at least 6 characters long"}}
	case len(password) > 72:
		return validator.ValidationErrors{{Field: field, Message: field + " must not exceed 72 characters"}}
	}
	return nil
}
