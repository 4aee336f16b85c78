package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/willykudo/pionix/internal/domain/attendance"
	"github.com/willykudo/pionix/internal/domain/shift"
	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/pkg/calendar"
	"github.com/willykudo/pionix/internal/pkg/database"
	"github.com/willykudo/pionix/internal/pkg/pagination"
	"github.com/willykudo/pionix/internal/service/file"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	shift.ShiftRepository
	fileService file.FileService
	loc         *time.Location
	now         func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	fileService file.FileService,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		ShiftRepository:      shiftRepo,
		fileService:          fileService,
		loc:                  loc,
		now:                  time.Now,
	}
}

func (a *AttendanceServiceImpl) toResponse(rec attendance.Attendance) attendance.AttendanceResponse {
	return attendance.NewAttendanceResponse(rec, a.loc, a.fileService.URL)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID := session.UserID
	onBehalf := false
	if req.EmployeeID != "" && req.EmployeeID != session.UserID {
		if !session.Can(user.PermissionAttendanceManage) {
			return attendance.AttendanceResponse{}, user.ErrAdminPrivilegeRequired
		}
		employeeID = req.EmployeeID
		onBehalf = true
	}

	now := a.now()
	today := calendar.DateOf(now, a.loc)

	shifts, err := a.ShiftRepository.ListCoveringDate(ctx, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to list today's shifts: %w", err)
	}
	sh, ok := shift.FindShiftForEmployeeOnDate(shifts, employeeID, today)
	if !ok {
		if onBehalf {
			return attendance.AttendanceResponse{}, attendance.ErrEmployeeNotScheduled
		}
		return attendance.AttendanceResponse{}, attendance.ErrNoShiftToday
	}

	employeeName := session.Name
	for _, e := range sh.Employees {
		if e.ID == employeeID && e.Name != "" {
			employeeName = e.Name
		}
	}

	if _, err := a.AttendanceRepository.GetOpenByEmployee(ctx, employeeID); err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check open attendance: %w", err)
	}

	start, end := sh.Window(today, a.loc)
	rec := attendance.Attendance{
		ID:             uuid.NewString(),
		EmployeeID:     employeeID,
		EmployeeName:   employeeName,
		CheckInTime:    now,
		ShiftStartTime: start,
		ShiftEndTime:   end,
	}
	rec.RecomputeStatus()

	if req.File != nil && req.FileHeader != nil {
		key, err := a.fileService.UploadAttendanceProof(ctx, rec.ID, today, file.ProofCheckIn, req.File, req.FileHeader.Filename)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to upload check-in image: %w", err)
		}
		rec.CheckInImage = &key
	}

	created, err := a.AttendanceRepository.Create(ctx, rec)
	if err != nil {
		a.discard(ctx, rec.CheckInImage)
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	slog.Info("employee checked in", "attendance_id", created.ID, "employee_id", employeeID, "status", created.Status)
	return a.toResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	var uploaded *string
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		rec, err := a.AttendanceRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if rec.EmployeeID != session.UserID && !session.Can(user.PermissionAttendanceManage) {
			return attendance.ErrUnauthorized
		}
		if !rec.IsOpen() {
			return attendance.ErrAlreadyCheckedOut
		}

		now := a.now()
		if now.Before(rec.CheckInTime) {
			now = rec.CheckInTime
		}
		rec.CheckOutTime = &now
		rec.RecomputeStatus()

		if req.File != nil && req.FileHeader != nil {
			key, err := a.fileService.UploadAttendanceProof(txCtx, rec.ID, calendar.DateOf(now, a.loc), file.ProofCheckOut, req.File, req.FileHeader.Filename)
			if err != nil {
				return fmt.Errorf("failed to upload check-out image: %w", err)
			}
			uploaded = &key
			rec.CheckOutImage = &key
		}

		if err := a.AttendanceRepository.Update(txCtx, rec); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		updated = rec
		return nil
	})
	if err != nil {
		a.discard(ctx, uploaded)
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("employee checked out", "attendance_id", updated.ID, "employee_id", updated.EmployeeID, "status", updated.Status)
	return a.toResponse(updated), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if !session.Can(user.PermissionAttendanceViewAll) {
		own := session.UserID
		filter.EmployeeID = &own
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, a.toResponse(rec))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  pagination.TotalPages(total, filter.Limit),
		Showing:     pagination.Showing(filter.Page, filter.Limit, total),
		Attendances: resp,
	}, nil
}

// GetOpenSession implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetOpenSession(ctx context.Context) (attendance.AttendanceResponse, error) {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := a.AttendanceRepository.GetOpenByEmployee(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get open attendance: %w", err)
	}
	return a.toResponse(rec), nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if rec.EmployeeID != session.UserID && !session.Can(user.PermissionAttendanceViewAll) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}
	return a.toResponse(rec), nil
}

// Update implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := a.requireManager(ctx); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err := a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		rec, err := a.AttendanceRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if err := req.Apply(&rec); err != nil {
			return err
		}
		if err := a.AttendanceRepository.Update(txCtx, rec); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		updated = rec
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.toResponse(updated), nil
}

// Delete implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	if err := a.requireManager(ctx); err != nil {
		return err
	}

	rec, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	a.discard(ctx, rec.CheckInImage)
	a.discard(ctx, rec.CheckOutImage)
	return nil
}

func (a *AttendanceServiceImpl) requireManager(ctx context.Context) error {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return err
	}
	if !session.Can(user.PermissionAttendanceManage) {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}

// discard removes a stored photo; failures are logged only.
func (a *AttendanceServiceImpl) discard(ctx context.Context, key *string) {
	if key == nil {
		return
	}
	if err := a.fileService.DeleteFile(ctx, *key); err != nil {
		slog.Warn("failed to delete attendance image", "key", *key, "error", err)
	}
}
