package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID returns ErrAttendanceNotFound when no record matches.
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetOpenByEmployee returns the employee's latest record without a check-out,
	// or ErrAttendanceNotFound.
	GetOpenByEmployee(ctx context.Context, employeeID string) (Attendance, error)

	Update(ctx context.Context, attendance Attendance) error
	Delete(ctx context.Context, id string) error

	// List returns one page of records, newest check-in first, and the total match count.
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListOpenEndedBefore returns open records whose shift ended before cutoff.
	ListOpenEndedBefore(ctx context.Context, cutoff time.Time) ([]Attendance, error)

	// ListAll returns every record matching filter, ignoring pagination.
	ListAll(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)
}
