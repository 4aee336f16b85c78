package shift

import (
	"time"

	"github.com/willykudo/pionix/internal/pkg/calendar"
)

type ShiftType string

const (
	ShiftTypeMorning   ShiftType = "Morning"
	ShiftTypeAfternoon ShiftType = "Afternoon"
)

var ShiftTypeValues = []string{
	string(ShiftTypeMorning),
	string(ShiftTypeAfternoon),
}

// DefaultTimes returns the conventional start/end pair for a shift type.
func DefaultTimes(t ShiftType) (start, end calendar.Clock, ok bool) {
	switch t {
	case ShiftTypeMorning:
		return calendar.Clock{Hour: 8}, calendar.Clock{Hour: 16}, true
	case ShiftTypeAfternoon:
		return calendar.Clock{Hour: 12}, calendar.Clock{Hour: 20}, true
	}
	return calendar.Clock{}, calendar.Clock{}, false
}

// Label is the Indonesian calendar title used by the front end.
func (t ShiftType) Label() string {
	if t == ShiftTypeMorning {
		return "Shift Pagi"
	}
	return "Shift Siang"
}

// Shift is a recurring work window assigned to one or more employees.
type Shift struct {
	ID         string
	ShiftType  ShiftType
	StartDate  calendar.Date
	EndDate    calendar.Date
	ShiftStart calendar.Clock
	ShiftEnd   calendar.Clock
	Employees  []Employee
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Employee is an assignee of a shift.
type Employee struct {
	ID   string
	Name string
}

// CoversDate reports whether d falls inside the shift's inclusive date range.
func (s Shift) CoversDate(d calendar.Date) bool {
	return calendar.Contains(s.StartDate, s.EndDate, d)
}

// HasEmployee reports whether employeeID is assigned to the shift.
func (s Shift) HasEmployee(employeeID string) bool {
	for _, e := range s.Employees {
		if e.ID == employeeID {
			return true
		}
	}
	return false
}

// ConflictsWith reports whether o is a different shift of the same type whose date range
// overlaps s and which shares at least one employee with it.
func (s Shift) ConflictsWith(o Shift) bool {
	if s.ID != "" && s.ID == o.ID {
		return false
	}
	if s.ShiftType != o.ShiftType {
		return false
	}
	if !calendar.Overlaps(s.StartDate, s.EndDate, o.StartDate, o.EndDate) {
		return false
	}
	for _, e := range o.Employees {
		if s.HasEmployee(e.ID) {
			return true
		}
	}
	return false
}

// EmployeeIDs returns the assignee IDs in assignment order.
func (s Shift) EmployeeIDs() []string {
	ids := make([]string, 0, len(s.Employees))
	for _, e := range s.Employees {
		ids = append(ids, e.ID)
	}
	return ids
}

// Window returns the shift's start and end instants on date d.
func (s Shift) Window(d calendar.Date, loc *time.Location) (start, end time.Time) {
	return s.ShiftStart.On(d, loc), s.ShiftEnd.On(d, loc)
}
