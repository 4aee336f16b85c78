package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens a record using the caller's (or, for admins, the chosen employee's)
	// shift window for today.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes an open record and recomputes its status.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// List returns all records for admins and the caller's own records otherwise.
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetOpenSession returns the caller's open record, or ErrNotCheckedIn.
	GetOpenSession(ctx context.Context) (AttendanceResponse, error)

	Get(ctx context.Context, id string) (AttendanceResponse, error)

	// Update corrects a record (admin); status is recomputed.
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// Delete removes a record and its proof photos (admin).
	Delete(ctx context.Context, id string) error
}
