package testutil

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/willykudo/pionix/internal/domain/attendance"
	"github.com/willykudo/pionix/internal/pkg/calendar"
)

type AttendanceRepo struct {
	mu      sync.Mutex
	records []attendance.Attendance
	loc     *time.Location
}

// NewAttendanceRepo evaluates date filters in loc.
func NewAttendanceRepo(loc *time.Location, records ...attendance.Attendance) *AttendanceRepo {
	return &AttendanceRepo{records: append([]attendance.Attendance(nil), records...), loc: loc}
}

func (r *AttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.records {
		if e.EmployeeID == a.EmployeeID && e.IsOpen() {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}
	a.CreatedAt = a.CheckInTime
	a.UpdatedAt = a.CheckInTime
	r.records = append(r.records, a)
	return a, nil
}

func (r *AttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.records {
		if a.ID == id {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepo) GetOpenByEmployee(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	open := r.match(func(a attendance.Attendance) bool { return a.EmployeeID == employeeID && a.IsOpen() })
	if len(open) == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return open[0], nil
}

func (r *AttendanceRepo) Update(ctx context.Context, a attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == a.ID {
			r.records[i] = a
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	all, _ := r.ListAll(ctx, filter)
	return page(all, filter.Page, filter.Limit), int64(len(all)), nil
}

func (r *AttendanceRepo) ListOpenEndedBefore(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	return r.match(func(a attendance.Attendance) bool { return a.IsOpen() && a.ShiftEndTime.Before(cutoff) }), nil
}

func (r *AttendanceRepo) ListAll(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	return r.match(func(a attendance.Attendance) bool {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			return false
		}
		if filter.Search != nil && *filter.Search != "" {
			q := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(a.EmployeeName), q) && !strings.Contains(strings.ToLower(a.Status), q) {
				return false
			}
		}
		day := calendar.DateOf(a.CheckInTime, r.loc)
		if filter.StartDate != nil {
			if d, err := calendar.ParseDate(*filter.StartDate, r.loc); err == nil && day.Before(d) {
				return false
			}
		}
		if filter.EndDate != nil {
			if d, err := calendar.ParseDate(*filter.EndDate, r.loc); err == nil && day.After(d) {
				return false
			}
		}
		return true
	}), nil
}

// match returns copies of matching records, newest check-in first.
func (r *AttendanceRepo) match(keep func(attendance.Attendance) bool) []attendance.Attendance {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]attendance.Attendance, 0)
	for _, a := range r.records {
		if keep(a) {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b attendance.Attendance) int { return b.CheckInTime.Compare(a.CheckInTime) })
	return out
}
