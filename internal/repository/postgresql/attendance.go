package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/willykudo/pionix/internal/domain/attendance"
	"github.com/willykudo/pionix/internal/pkg/calendar"
	"github.com/willykudo/pionix/internal/pkg/database"
	"github.com/willykudo/pionix/internal/pkg/pagination"
)

const attendanceColumns = `
	id, employee_id, employee_name, check_in_time, check_out_time,
	shift_start_time, shift_end_time, status, check_in_image, check_out_image,
	created_at, updated_at`

type attendanceRepository struct {
	db  *database.DB
	loc *time.Location
}

// NewAttendanceRepository evaluates startDate/endDate filters as calendar days in loc.
func NewAttendanceRepository(db *database.DB, loc *time.Location) attendance.AttendanceRepository {
	return &attendanceRepository{db: db, loc: loc}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.EmployeeName, &att.CheckInTime, &att.CheckOutTime,
		&att.ShiftStartTime, &att.ShiftEndTime, &att.Status, &att.CheckInImage, &att.CheckOutImage,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if isNoRows(err) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, err
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()
	out := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, att)
	}
	return out, rows.Err()
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, employee_name, check_in_time, check_out_time,
			shift_start_time, shift_end_time, status, check_in_image, check_out_image
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		att.ID, att.EmployeeID, att.EmployeeName, att.CheckInTime, att.CheckOutTime,
		att.ShiftStartTime, att.ShiftEndTime, att.Status, att.CheckInImage, att.CheckOutImage,
	))
	if err != nil {
		if isUniqueViolation(err, "attendances_one_open_per_employee") {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to insert attendance: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)
	return scanAttendance(q.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE id = $1`, id))
}

// GetOpenByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND check_out_time IS NULL
		ORDER BY check_in_time DESC
		LIMIT 1
	`
	return scanAttendance(q.QueryRow(ctx, query, employeeID))
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET employee_name = $1, check_in_time = $2, check_out_time = $3,
			shift_start_time = $4, shift_end_time = $5, status = $6,
			check_in_image = $7, check_out_image = $8, updated_at = NOW()
		WHERE id = $9
	`
	tag, err := q.Exec(ctx, query,
		att.EmployeeName, att.CheckInTime, att.CheckOutTime,
		att.ShiftStartTime, att.ShiftEndTime, att.Status,
		att.CheckInImage, att.CheckOutImage, att.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "attendances_one_open_per_employee") {
			return attendance.ErrAlreadyCheckedIn
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)
	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// where builds the filter clause. Date bounds cover whole days in the repository's zone.
func (a *attendanceRepository) where(filter attendance.AttendanceFilter) (string, []any) {
	where := "1=1"
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND employee_id::text = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND (employee_name ILIKE $%d OR status ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		if d, err := calendar.ParseDate(*filter.StartDate, a.loc); err == nil {
			where += fmt.Sprintf(" AND check_in_time >= $%d", argIdx)
			args = append(args, d.Time(a.loc))
			argIdx++
		}
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		if d, err := calendar.ParseDate(*filter.EndDate, a.loc); err == nil {
			where += fmt.Sprintf(" AND check_in_time < $%d", argIdx)
			args = append(args, d.AddDays(1).Time(a.loc))
		}
	}
	return where, args
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)
	where, args := a.where(filter)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances
		WHERE %s
		ORDER BY check_in_time DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	records, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAll(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)
	where, args := a.where(filter)

	rows, err := q.Query(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE `+where+` ORDER BY check_in_time DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	return collectAttendances(rows)
}

// ListOpenEndedBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenEndedBefore(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE check_out_time IS NULL
		  AND shift_end_time < $1
		ORDER BY shift_end_time
	`
	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query open attendances: %w", err)
	}
	return collectAttendances(rows)
}
