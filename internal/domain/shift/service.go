package shift

import "context"

type ShiftService interface {
	// List returns every shift for admins and only the caller's shifts for employees.
	List(ctx context.Context) ([]ShiftResponse, error)
	Get(ctx context.Context, id string) (ShiftResponse, error)
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error

	// Calendar returns one representative entry per (date range, shift type) group.
	Calendar(ctx context.Context) ([]CalendarEntry, error)

	// Today returns the scope-resolved schedule for the current calendar day.
	Today(ctx context.Context) ([]ScheduledEmployeeResponse, error)
}
