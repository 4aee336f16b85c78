package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/willykudo/pionix/internal/domain/attendance"
	"github.com/willykudo/pionix/internal/domain/auth"
	"github.com/willykudo/pionix/internal/domain/product"
	"github.com/willykudo/pionix/internal/domain/rental"
	"github.com/willykudo/pionix/internal/domain/report"
	"github.com/willykudo/pionix/internal/domain/shift"
	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrSessionMissing):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrCannotDeleteSelf):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNoShiftToday),
		errors.Is(err, attendance.ErrEmployeeNotScheduled):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrDuplicateShift):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, shift.ErrEmployeeNotFound):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, shift.ErrInvalidShiftRange):
		BadRequest(w, err.Error(), nil)

	// Inventory domain errors
	case errors.Is(err, product.ErrProductNotFound):
		NotFound(w, "Product not found")
	case errors.Is(err, product.ErrProductCodeExists):
		Conflict(w, err.Error())
	case errors.Is(err, rental.ErrRentalNotFound):
		NotFound(w, "Rental not found")
	case errors.Is(err, rental.ErrRentalCodeExists):
		Conflict(w, err.Error())

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrReportGenerationFailed):
		InternalServerError(w, "Failed to generate report")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
