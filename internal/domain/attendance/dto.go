package attendance

import (
	"mime/multipart"
	"time"

	"github.com/willykudo/pionix/internal/pkg/pagination"
	"github.com/willykudo/pionix/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckInRequest opens an attendance record. EmployeeID is only honoured for admins;
// everyone else checks in as themselves.
type CheckInRequest struct {
	EmployeeID string                `json:"employeeId"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if verr := validator.ValidateImage("checkInImage", r.FileHeader, false); verr != nil {
		errs = append(errs, *verr)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	ID         string                `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: ErrNotCheckedIn.Error(),
		})
	}

	if verr := validator.ValidateImage("checkOutImage", r.FileHeader, false); verr != nil {
		errs = append(errs, *verr)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest corrects a record. Timestamps are RFC3339; status is always
// recomputed and any client-supplied value is ignored.
type UpdateAttendanceRequest struct {
	ID             string  `json:"-"`
	EmployeeName   *string `json:"employeeName,omitempty"`
	CheckInTime    *string `json:"checkInTime,omitempty"`
	CheckOutTime   *string `json:"checkOutTime,omitempty"`
	ShiftStartTime *string `json:"shiftStartTime,omitempty"`
	ShiftEndTime   *string `json:"shiftEndTime,omitempty"`
	Status         *string `json:"status,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.EmployeeName != nil && validator.IsEmpty(*r.EmployeeName) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeName",
			Message: "employeeName must not be empty",
		})
	}

	check := func(field string, v *string) {
		if v == nil {
			return
		}
		if _, ok := validator.IsValidDateTime(*v); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be an ISO8601 timestamp (e.g. 2024-01-15T08:00:00+07:00)",
			})
		}
	}
	check("checkInTime", r.CheckInTime)
	if r.CheckOutTime != nil && *r.CheckOutTime != "" {
		check("checkOutTime", r.CheckOutTime)
	}
	check("shiftStartTime", r.ShiftStartTime)
	check("shiftEndTime", r.ShiftEndTime)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply copies the requested corrections onto a and recomputes its status. An empty
// checkOutTime reopens the record.
func (r *UpdateAttendanceRequest) Apply(a *Attendance) error {
	parse := func(v string) time.Time {
		t, _ := validator.IsValidDateTime(v)
		return t
	}

	if r.EmployeeName != nil {
		a.EmployeeName = *r.EmployeeName
	}
	if r.CheckInTime != nil {
		a.CheckInTime = parse(*r.CheckInTime)
	}
	if r.CheckOutTime != nil {
		if *r.CheckOutTime == "" {
			a.CheckOutTime = nil
		} else {
			t := parse(*r.CheckOutTime)
			a.CheckOutTime = &t
		}
	}
	if r.ShiftStartTime != nil {
		a.ShiftStartTime = parse(*r.ShiftStartTime)
	}
	if r.ShiftEndTime != nil {
		a.ShiftEndTime = parse(*r.ShiftEndTime)
	}

	var errs validator.ValidationErrors
	if a.CheckOutTime != nil && a.CheckOutTime.Before(a.CheckInTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "checkOutTime",
			Message: "checkOutTime must not be before checkInTime",
		})
	}
	if !a.ShiftStartTime.Before(a.ShiftEndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "shiftEndTime",
			Message: "shiftEndTime must be after shiftStartTime",
		})
	}
	if len(errs) > 0 {
		return errs
	}

	a.RecomputeStatus()
	return nil
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employeeId"`
	EmployeeName   string  `json:"employeeName"`
	CheckInTime    string  `json:"checkInTime"`
	CheckOutTime   *string `json:"checkOutTime"`
	ShiftStartTime string  `json:"shiftStartTime"`
	ShiftEndTime   string  `json:"shiftEndTime"`
	Status         string  `json:"status"`
	WorkedMinutes  *int    `json:"workedMinutes,omitempty"`
	CheckInImage   *string `json:"checkInImage,omitempty"`
	CheckOutImage  *string `json:"checkOutImage,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

type AttendanceFilter struct {
	// Search matches employee name or status, case-insensitive.
	Search *string `json:"search,omitempty"`

	// EmployeeID restricts results to one employee; forced for non-admins.
	EmployeeID *string `json:"employeeId,omitempty"`
	StartDate  *string `json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"endDate,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	errs := pagination.Normalize(&f.Page, &f.Limit, 5)

	var start, end time.Time
	var startOK, endOK bool
	if f.StartDate != nil {
		if start, startOK = validator.IsValidDate(*f.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if end, endOK = validator.IsValidDate(*f.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"totalCount"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"totalPages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// NewAttendanceResponse renders timestamps in loc; imageURL turns stored photo keys into URLs.
func NewAttendanceResponse(a Attendance, loc *time.Location, imageURL func(string) string) AttendanceResponse {
	format := func(t time.Time) string { return t.In(loc).Format(time.RFC3339) }
	link := func(key *string) *string {
		if key == nil || imageURL == nil {
			return nil
		}
		u := imageURL(*key)
		return &u
	}

	resp := AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		CheckInTime:    format(a.CheckInTime),
		ShiftStartTime: format(a.ShiftStartTime),
		ShiftEndTime:   format(a.ShiftEndTime),
		Status:         a.Status,
		WorkedMinutes:  a.WorkedMinutes(),
		CheckInImage:   link(a.CheckInImage),
		CheckOutImage:  link(a.CheckOutImage),
		CreatedAt:      format(a.CreatedAt),
		UpdatedAt:      format(a.UpdatedAt),
	}
	if a.CheckOutTime != nil {
		s := format(*a.CheckOutTime)
		resp.CheckOutTime = &s
	}
	return resp
}
