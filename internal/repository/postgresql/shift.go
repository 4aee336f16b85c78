package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/willykudo/pionix/internal/domain/shift"
	"github.com/willykudo/pionix/internal/pkg/calendar"
	"github.com/willykudo/pionix/internal/pkg/database"
)

const shiftColumns = `s.id, s.shift_type, s.start_date, s.end_date, s.shift_start, s.shift_end, s.created_at, s.updated_at`

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var startDate, endDate pgtype.Date
	var start, end pgtype.Time
	err := row.Scan(&s.ID, &s.ShiftType, &startDate, &endDate, &start, &end, &s.CreatedAt, &s.UpdatedAt)
	if isNoRows(err) {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	if err != nil {
		return shift.Shift{}, err
	}
	s.StartDate, s.EndDate = fromPgDate(startDate), fromPgDate(endDate)
	s.ShiftStart, s.ShiftEnd = fromPgTime(start), fromPgTime(end)
	return s, nil
}

// query loads the matching shifts, then their assignees in one round trip.
func (r *shiftRepository) query(ctx context.Context, where string, args ...any) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts s
		WHERE `+where+`
		ORDER BY s.start_date, s.created_at
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	shifts := make([]shift.Shift, 0)
	index := make(map[string]int)
	ids := make([]string, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		index[s.ID] = len(shifts)
		ids = append(ids, s.ID)
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return shifts, nil
	}

	empRows, err := q.Query(ctx, `
		SELECT se.shift_id, se.employee_id, u.name
		FROM shift_employees se
		JOIN users u ON u.id = se.employee_id
		WHERE se.shift_id::text = ANY($1)
		ORDER BY se.shift_id, se.position
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift employees: %w", err)
	}
	defer empRows.Close()

	for empRows.Next() {
		var shiftID string
		var e shift.Employee
		if err := empRows.Scan(&shiftID, &e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("failed to scan shift employee: %w", err)
		}
		i := index[shiftID]
		shifts[i].Employees = append(shifts[i].Employees, e)
	}
	return shifts, empRows.Err()
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context) ([]shift.Shift, error) {
	return r.query(ctx, "TRUE")
}

// ListByEmployee implements shift.ShiftRepository.
func (r *shiftRepository) ListByEmployee(ctx context.Context, employeeID string) ([]shift.Shift, error) {
	return r.query(ctx, `EXISTS (
		SELECT 1 FROM shift_employees se
		WHERE se.shift_id = s.id AND se.employee_id::text = $1
	)`, employeeID)
}

// ListCoveringDate implements shift.ShiftRepository.
func (r *shiftRepository) ListCoveringDate(ctx context.Context, d calendar.Date) ([]shift.Shift, error) {
	return r.query(ctx, "s.start_date <= $1 AND s.end_date >= $1", pgDate(d))
}

// ListOverlapping implements shift.ShiftRepository.
func (r *shiftRepository) ListOverlapping(ctx context.Context, shiftType shift.ShiftType, start, end calendar.Date) ([]shift.Shift, error) {
	return r.query(ctx, "s.shift_type = $1 AND s.start_date <= $3 AND s.end_date >= $2",
		string(shiftType), pgDate(start), pgDate(end))
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	shifts, err := r.query(ctx, "s.id::text = $1", id)
	if err != nil {
		return shift.Shift{}, err
	}
	if len(shifts) == 0 {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return shifts[0], nil
}

func (r *shiftRepository) assign(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO shift_employees (shift_id, employee_id, position)
		SELECT $1, e.id::uuid, e.ord
		FROM unnest($2::text[]) WITH ORDINALITY AS e(id, ord)
	`, s.ID, s.EmployeeIDs())
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) || isPgError(err, pgInvalidTextRepresentation) {
			return shift.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to assign shift employees: %w", err)
	}
	return nil
}

// Create implements shift.ShiftRepository. Callers run it inside a transaction so the
// shift and its assignees land together.
func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO shifts (shift_type, start_date, end_date, shift_start, shift_end)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, string(s.ShiftType), pgDate(s.StartDate), pgDate(s.EndDate), pgTime(s.ShiftStart), pgTime(s.ShiftEnd),
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to insert shift: %w", err)
	}

	if err := r.assign(ctx, s); err != nil {
		return shift.Shift{}, err
	}
	return s, nil
}

// Update implements shift.ShiftRepository. The assignee list is replaced wholesale.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE shifts
		SET shift_type = $1, start_date = $2, end_date = $3, shift_start = $4, shift_end = $5, updated_at = NOW()
		WHERE id::text = $6
	`, string(s.ShiftType), pgDate(s.StartDate), pgDate(s.EndDate), pgTime(s.ShiftStart), pgTime(s.ShiftEnd), s.ID)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	if _, err := q.Exec(ctx, `DELETE FROM shift_employees WHERE shift_id = $1`, s.ID); err != nil {
		return fmt.Errorf("failed to clear shift employees: %w", err)
	}
	return r.assign(ctx, s)
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}
