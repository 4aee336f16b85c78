package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/willykudo/pionix/internal/domain/shift"
	"github.com/willykudo/pionix/internal/pkg/calendar"
)

type ShiftRepo struct {
	mu     sync.Mutex
	shifts []shift.Shift
	seq    int
}

func NewShiftRepo(shifts ...shift.Shift) *ShiftRepo {
	return &ShiftRepo{shifts: append([]shift.Shift(nil), shifts...)}
}

func (r *ShiftRepo) filter(keep func(shift.Shift) bool) []shift.Shift {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shift.Shift, 0)
	for _, s := range r.shifts {
		if keep(s) {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b shift.Shift) int { return a.StartDate.Compare(b.StartDate) })
	return out
}

func (r *ShiftRepo) List(ctx context.Context) ([]shift.Shift, error) {
	return r.filter(func(shift.Shift) bool { return true }), nil
}

func (r *ShiftRepo) ListByEmployee(ctx context.Context, employeeID string) ([]shift.Shift, error) {
	return r.filter(func(s shift.Shift) bool { return s.HasEmployee(employeeID) }), nil
}

func (r *ShiftRepo) ListCoveringDate(ctx context.Context, d calendar.Date) ([]shift.Shift, error) {
	return r.filter(func(s shift.Shift) bool { return s.CoversDate(d) }), nil
}

func (r *ShiftRepo) ListOverlapping(ctx context.Context, t shift.ShiftType, start, end calendar.Date) ([]shift.Shift, error) {
	return r.filter(func(s shift.Shift) bool {
		return s.ShiftType == t && calendar.Overlaps(s.StartDate, s.EndDate, start, end)
	}), nil
}

func (r *ShiftRepo) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shifts {
		if s.ID == id {
			return s, nil
		}
	}
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (r *ShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if s.ID == "" {
		s.ID = fmt.Sprintf("shift-%d", r.seq)
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.shifts = append(r.shifts, s)
	return s, nil
}

func (r *ShiftRepo) Update(ctx context.Context, s shift.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.shifts {
		if r.shifts[i].ID == s.ID {
			s.CreatedAt = r.shifts[i].CreatedAt
			s.UpdatedAt = time.Now()
			r.shifts[i] = s
			return nil
		}
	}
	return shift.ErrShiftNotFound
}

func (r *ShiftRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.shifts {
		if r.shifts[i].ID == id {
			r.shifts = append(r.shifts[:i], r.shifts[i+1:]...)
			return nil
		}
	}
	return shift.ErrShiftNotFound
}
