package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/willykudo/pionix/internal/domain/attendance"
)

// staleAfter is how long past shift end an open record is reported.
const staleAfter = 4 * time.Hour

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	now            func() time.Time
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_stale_attendances", 1*time.Hour, j.ReportStaleAttendances)
}

// ReportStaleAttendances logs records still open well after their shift ended. Records
// are left untouched; an admin closes them through the update endpoint.
func (j *AttendanceJobs) ReportStaleAttendances(ctx context.Context) error {
	cutoff := j.now().Add(-staleAfter)

	stale, err := j.attendanceRepo.ListOpenEndedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list stale attendances: %w", err)
	}

	for _, a := range stale {
		slog.Warn("Cron: attendance still open after shift end",
			"attendance_id", a.ID,
			"employee_id", a.EmployeeID,
			"employee_name", a.EmployeeName,
			"shift_end", a.ShiftEndTime.Format(time.RFC3339))
	}

	if len(stale) > 0 {
		slog.Info("Cron: stale attendances found", "count", len(stale))
	}
	return nil
}
