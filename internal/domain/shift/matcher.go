package shift

import (
	"iter"

	"github.com/willykudo/pionix/internal/pkg/calendar"
)

// Scope selects whose shifts a query returns.
type Scope int

const (
	// ScopeSelf limits results to the calling employee.
	ScopeSelf Scope = iota
	// ScopeAll returns every scheduled employee (administrators).
	ScopeAll
)

// ScheduledEmployee is one (shift, employee) pair scheduled on a date.
type ScheduledEmployee struct {
	ShiftID      string
	ShiftType    ShiftType
	EmployeeID   string
	EmployeeName string
	ShiftStart   calendar.Clock
	ShiftEnd     calendar.Clock
}

// GroupKey identifies shifts that share a date range and type.
type GroupKey struct {
	StartDate calendar.Date
	EndDate   calendar.Date
	ShiftType ShiftType
}

// FindShiftForEmployeeOnDate returns the first shift, in input order, that covers ref and
// includes employeeID. Overlapping matches are a data problem; only the first is returned.
func FindShiftForEmployeeOnDate(shifts []Shift, employeeID string, ref calendar.Date) (Shift, bool) {
	for _, s := range shifts {
		if s.CoversDate(ref) && s.HasEmployee(employeeID) {
			return s, true
		}
	}
	return Shift{}, false
}

// FindShiftsForAllEmployeesOnDate yields one tuple per (shift, employee) for every shift
// covering ref. Order follows the input shifts, then their assignees. Duplicates are kept.
// The sequence reads shifts lazily and can be ranged over more than once.
func FindShiftsForAllEmployeesOnDate(shifts []Shift, ref calendar.Date) iter.Seq[ScheduledEmployee] {
	return func(yield func(ScheduledEmployee) bool) {
		for _, s := range shifts {
			if !s.CoversDate(ref) {
				continue
			}
			for _, e := range s.Employees {
				if !yield(scheduled(s, e)) {
					return
				}
			}
		}
	}
}

// ShiftsForScope resolves admin/self visibility once. ScopeSelf yields at most the
// caller's own matching shift; ScopeAll yields every scheduled tuple.
func ShiftsForScope(shifts []Shift, scope Scope, employeeID string, ref calendar.Date) []ScheduledEmployee {
	if scope == ScopeAll {
		out := []ScheduledEmployee{}
		for se := range FindShiftsForAllEmployeesOnDate(shifts, ref) {
			out = append(out, se)
		}
		return out
	}

	s, ok := FindShiftForEmployeeOnDate(shifts, employeeID, ref)
	if !ok {
		return []ScheduledEmployee{}
	}
	for _, e := range s.Employees {
		if e.ID == employeeID {
			return []ScheduledEmployee{scheduled(s, e)}
		}
	}
	return []ScheduledEmployee{}
}

// GroupShiftsByDateAndType collapses shifts sharing (StartDate, EndDate, ShiftType) into the
// first record seen for each key. keys lists the groups in first-appearance order.
func GroupShiftsByDateAndType(shifts []Shift) (groups map[GroupKey]Shift, keys []GroupKey) {
	groups = make(map[GroupKey]Shift)
	for _, s := range shifts {
		k := GroupKey{StartDate: s.StartDate, EndDate: s.EndDate, ShiftType: s.ShiftType}
		if _, seen := groups[k]; seen {
			continue
		}
		groups[k] = s
		keys = append(keys, k)
	}
	return groups, keys
}

func scheduled(s Shift, e Employee) ScheduledEmployee {
	return ScheduledEmployee{
		ShiftID:      s.ID,
		ShiftType:    s.ShiftType,
		EmployeeID:   e.ID,
		EmployeeName: e.Name,
		ShiftStart:   s.ShiftStart,
		ShiftEnd:     s.ShiftEnd,
	}
}
