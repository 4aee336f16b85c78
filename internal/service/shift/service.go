package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/willykudo/pionix/internal/domain/shift"
	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/pkg/calendar"
	"github.com/willykudo/pionix/internal/pkg/database"
)

type shiftServiceImpl struct {
	tx        database.Transactor
	shiftRepo shift.ShiftRepository
	userRepo  user.UserRepository
	loc       *time.Location
	now       func() time.Time
}

func NewShiftService(tx database.Transactor, shiftRepo shift.ShiftRepository, userRepo user.UserRepository, loc *time.Location) shift.ShiftService {
	return &shiftServiceImpl{
		tx:        tx,
		shiftRepo: shiftRepo,
		userRepo:  userRepo,
		loc:       loc,
		now:       time.Now,
	}
}

// visible returns the shifts the caller may see, in repository order.
func (s *shiftServiceImpl) visible(ctx context.Context, session user.Session) ([]shift.Shift, error) {
	if user.ScopeFor(session.Role) == shift.ScopeAll {
		return s.shiftRepo.List(ctx)
	}
	return s.shiftRepo.ListByEmployee(ctx, session.UserID)
}

func (s *shiftServiceImpl) List(ctx context.Context) ([]shift.ShiftResponse, error) {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.visible(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	resp := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		resp = append(resp, shift.NewShiftResponse(sh))
	}
	return resp, nil
}

func (s *shiftServiceImpl) Get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if user.ScopeFor(session.Role) == shift.ScopeSelf && !sh.HasEmployee(session.UserID) {
		return shift.ShiftResponse{}, user.ErrInsufficientPermissions
	}
	return shift.NewShiftResponse(sh), nil
}

func (s *shiftServiceImpl) requireManager(ctx context.Context) error {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return err
	}
	if !session.Can(user.PermissionShiftManage) {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}

// resolveEmployees fills assignee names and fails when any ID is unknown.
func (s *shiftServiceImpl) resolveEmployees(ctx context.Context, sh *shift.Shift) error {
	users, err := s.userRepo.GetByIDs(ctx, sh.EmployeeIDs())
	if err != nil {
		return fmt.Errorf("failed to load employees: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for i, e := range sh.Employees {
		name, ok := names[e.ID]
		if !ok {
			return shift.ErrEmployeeNotFound
		}
		sh.Employees[i].Name = name
	}
	return nil
}

// checkDuplicate rejects sh when an employee already has a shift of the same type on an
// overlapping range.
func (s *shiftServiceImpl) checkDuplicate(ctx context.Context, sh shift.Shift) error {
	existing, err := s.shiftRepo.ListOverlapping(ctx, sh.ShiftType, sh.StartDate, sh.EndDate)
	if err != nil {
		return fmt.Errorf("failed to check overlapping shifts: %w", err)
	}
	for _, other := range existing {
		if sh.ConflictsWith(other) {
			return shift.ErrDuplicateShift
		}
	}
	return nil
}

func (s *shiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := s.requireManager(ctx); err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := req.Validate(s.loc)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := s.resolveEmployees(ctx, &sh); err != nil {
		return shift.ShiftResponse{}, err
	}

	var created shift.Shift
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.checkDuplicate(txCtx, sh); err != nil {
			return err
		}
		created, err = s.shiftRepo.Create(txCtx, sh)
		if err != nil {
			return fmt.Errorf("failed to create shift: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.NewShiftResponse(created), nil
}

func (s *shiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := s.requireManager(ctx); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := req.Validate(s.loc)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	sh.ID = existing.ID
	sh.CreatedAt = existing.CreatedAt
	if err := s.resolveEmployees(ctx, &sh); err != nil {
		return shift.ShiftResponse{}, err
	}

	var updated shift.Shift
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.checkDuplicate(txCtx, sh); err != nil {
			return err
		}
		if err := s.shiftRepo.Update(txCtx, sh); err != nil {
			return fmt.Errorf("failed to update shift: %w", err)
		}
		updated, err = s.shiftRepo.GetByID(txCtx, sh.ID)
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return shift.NewShiftResponse(updated), nil
}

func (s *shiftServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.requireManager(ctx); err != nil {
		return err
	}
	if _, err := s.shiftRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.shiftRepo.Delete(ctx, id)
}

// Calendar groups the visible shifts so each (range, type) appears once.
func (s *shiftServiceImpl) Calendar(ctx context.Context) ([]shift.CalendarEntry, error) {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.visible(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	groups, keys := shift.GroupShiftsByDateAndType(shifts)
	entries := make([]shift.CalendarEntry, 0, len(keys))
	for _, k := range keys {
		rep := groups[k]
		entries = append(entries, shift.CalendarEntry{
			Title:      rep.ShiftType.Label(),
			ShiftID:    rep.ID,
			ShiftType:  string(rep.ShiftType),
			StartDate:  rep.StartDate.String(),
			EndDate:    rep.EndDate.String(),
			ShiftStart: rep.ShiftStart.String(),
			ShiftEnd:   rep.ShiftEnd.String(),
		})
	}
	return entries, nil
}

func (s *shiftServiceImpl) Today(ctx context.Context) ([]shift.ScheduledEmployeeResponse, error) {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	today := calendar.DateOf(s.now(), s.loc)
	shifts, err := s.shiftRepo.ListCoveringDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's shifts: %w", err)
	}

	scheduled := shift.ShiftsForScope(shifts, user.ScopeFor(session.Role), session.UserID, today)
	resp := make([]shift.ScheduledEmployeeResponse, 0, len(scheduled))
	for _, se := range scheduled {
		resp = append(resp, shift.NewScheduledEmployeeResponse(se))
	}
	return resp, nil
}
