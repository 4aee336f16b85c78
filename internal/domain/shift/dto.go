package shift

import (
	"time"

	"github.com/willykudo/pionix/internal/pkg/calendar"
	"github.com/willykudo/pionix/internal/pkg/validator"
)

type CreateShiftRequest struct {
	ShiftType   string   `json:"shiftType"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	ShiftStart  string   `json:"shiftStart"`
	ShiftEnd    string   `json:"shiftEnd"`
	EmployeeIDs []string `json:"employeeIds"`
}

// Validate checks the request and, when valid, returns the parsed shift. Omitted times fall
// back to the shift type's defaults.
func (r *CreateShiftRequest) Validate(loc *time.Location) (Shift, error) {
	var errs validator.ValidationErrors
	var s Shift

	typeOK := false
	if validator.IsEmpty(r.ShiftType) {
		errs = append(errs, validator.ValidationError{
			Field:   "shiftType",
			Message: "shiftType is required",
		})
	} else if !validator.IsInSlice(r.ShiftType, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "shiftType",
			Message: "shiftType must be Morning or Afternoon",
		})
	} else {
		typeOK = true
	}
	s.ShiftType = ShiftType(r.ShiftType)

	var startOK, endOK bool
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate is required",
		})
	} else if d, err := calendar.ParseDate(r.StartDate, loc); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be in YYYY-MM-DD format",
		})
	} else {
		s.StartDate, startOK = d, true
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate is required",
		})
	} else if d, err := calendar.ParseDate(r.EndDate, loc); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be in YYYY-MM-DD format",
		})
	} else {
		s.EndDate, endOK = d, true
	}

	if startOK && endOK && s.StartDate.After(s.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}

	defStart, defEnd, _ := DefaultTimes(s.ShiftType)
	s.ShiftStart, s.ShiftEnd = defStart, defEnd
	clockOK := typeOK || (!validator.IsEmpty(r.ShiftStart) && !validator.IsEmpty(r.ShiftEnd))
	if !validator.IsEmpty(r.ShiftStart) {
		c, err := calendar.ParseClock(r.ShiftStart)
		if err != nil {
			clockOK = false
			errs = append(errs, validator.ValidationError{
				Field:   "shiftStart",
				Message: "shiftStart must be in HH:MM format",
			})
		}
		s.ShiftStart = c
	}
	if !validator.IsEmpty(r.ShiftEnd) {
		c, err := calendar.ParseClock(r.ShiftEnd)
		if err != nil {
			clockOK = false
			errs = append(errs, validator.ValidationError{
				Field:   "shiftEnd",
				Message: "shiftEnd must be in HH:MM format",
			})
		}
		s.ShiftEnd = c
	}
	if clockOK && !s.ShiftStart.Before(s.ShiftEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "shiftEnd",
			Message: "shiftEnd must be after shiftStart",
		})
	}

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeIds",
			Message: "at least one employee is required",
		})
	}
	seen := make(map[string]bool, len(r.EmployeeIDs))
	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employeeIds",
				Message: "employeeIds must not contain empty values",
			})
			break
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		s.Employees = append(s.Employees, Employee{ID: id})
	}

	if len(errs) > 0 {
		return Shift{}, errs
	}
	return s, nil
}

type UpdateShiftRequest struct {
	ID string `json:"-"`
	CreateShiftRequest
}

type EmployeeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ShiftResponse struct {
	ID         string             `json:"id"`
	ShiftType  string             `json:"shiftType"`
	StartDate  string             `json:"startDate"`
	EndDate    string             `json:"endDate"`
	ShiftStart string             `json:"shiftStart"`
	ShiftEnd   string             `json:"shiftEnd"`
	Employees  []EmployeeResponse `json:"employees"`
	CreatedAt  string             `json:"createdAt"`
	UpdatedAt  string             `json:"updatedAt"`
}

// CalendarEntry is one grouped calendar event.
type CalendarEntry struct {
	Title      string `json:"title"`
	ShiftID    string `json:"shiftId"`
	ShiftType  string `json:"shiftType"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	ShiftStart string `json:"shiftStart"`
	ShiftEnd   string `json:"shiftEnd"`
}

type ScheduledEmployeeResponse struct {
	ShiftID      string `json:"shiftId"`
	ShiftType    string `json:"shiftType"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	ShiftStart   string `json:"shiftStart"`
	ShiftEnd     string `json:"shiftEnd"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	employees := make([]EmployeeResponse, 0, len(s.Employees))
	for _, e := range s.Employees {
		employees = append(employees, EmployeeResponse{ID: e.ID, Name: e.Name})
	}
	return ShiftResponse{
		ID:         s.ID,
		ShiftType:  string(s.ShiftType),
		StartDate:  s.StartDate.String(),
		EndDate:    s.EndDate.String(),
		ShiftStart: s.ShiftStart.String(),
		ShiftEnd:   s.ShiftEnd.String(),
		Employees:  employees,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  s.UpdatedAt.Format(time.RFC3339),
	}
}

func NewScheduledEmployeeResponse(se ScheduledEmployee) ScheduledEmployeeResponse {
	return ScheduledEmployeeResponse{
		ShiftID:      se.ShiftID,
		ShiftType:    string(se.ShiftType),
		EmployeeID:   se.EmployeeID,
		EmployeeName: se.EmployeeName,
		ShiftStart:   se.ShiftStart.String(),
		ShiftEnd:     se.ShiftEnd.String(),
	}
}
