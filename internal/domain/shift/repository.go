package shift

import (
	"context"

	"github.com/willykudo/pionix/internal/pkg/calendar"
)

// ShiftRepository persists shifts together with their assignee join rows.
// Every read returns shifts ordered by start date then creation time, with employees
// in assignment order and their display names resolved.
type ShiftRepository interface {
	List(ctx context.Context) ([]Shift, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Shift, error)
	ListCoveringDate(ctx context.Context, d calendar.Date) ([]Shift, error)
	ListOverlapping(ctx context.Context, shiftType ShiftType, start, end calendar.Date) ([]Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	Create(ctx context.Context, s Shift) (Shift, error)
	Update(ctx context.Context, s Shift) error
	Delete(ctx context.Context, id string) error
}
