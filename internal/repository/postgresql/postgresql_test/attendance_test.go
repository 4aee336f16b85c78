package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willykudo/pionix/internal/domain/attendance"
	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/repository/postgresql"
)

func TestAttendanceRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	budi := createTestUser(t, postgresql.NewUserRepository(setup.DB), "budi", "Budi", user.RoleEmployee)
	repo := postgresql.NewAttendanceRepository(setup.DB, jakarta)

	// 23:30 UTC on the 5th is already the 6th in Jakarta.
	checkIn := time.Date(2024, 5, 5, 23, 30, 0, 0, time.UTC)
	rec := attendance.Attendance{
		ID:             uuid.NewString(),
		EmployeeID:     budi.ID,
		EmployeeName:   budi.Name,
		CheckInTime:    checkIn,
		ShiftStartTime: time.Date(2024, 5, 6, 8, 0, 0, 0, jakarta),
		ShiftEndTime:   time.Date(2024, 5, 6, 16, 0, 0, 0, jakarta),
	}
	rec.RecomputeStatus()

	_, err = repo.Create(ctx, rec)
	require.NoError(t, err)

	dup := rec
	dup.ID = uuid.NewString()
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	open, err := repo.GetOpenByEmployee(ctx, budi.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, open.ID)

	day := "2024-05-06"
	records, total, err := repo.List(ctx, attendance.AttendanceFilter{StartDate: &day, EndDate: &day, Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, records, 1)

	prev := "2024-05-05"
	records, err = repo.ListAll(ctx, attendance.AttendanceFilter{StartDate: &prev, EndDate: &prev})
	require.NoError(t, err)
	assert.Empty(t, records)

	stale, err := repo.ListOpenEndedBefore(ctx, time.Date(2024, 5, 7, 0, 0, 0, 0, jakarta))
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	out := time.Date(2024, 5, 6, 16, 0, 0, 0, jakarta)
	open.CheckOutTime = &out
	open.RecomputeStatus()
	require.NoError(t, repo.Update(ctx, open))

	_, err = repo.GetOpenByEmployee(ctx, budi.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	require.NoError(t, repo.Delete(ctx, rec.ID))
	_, err = repo.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
