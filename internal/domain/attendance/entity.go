package attendance

import (
	"time"
)

type Attendance struct {
	ID             string
	EmployeeID     string
	EmployeeName   string
	CheckInTime    time.Time
	CheckOutTime   *time.Time
	ShiftStartTime time.Time
	ShiftEndTime   time.Time
	Status         string
	CheckInImage   *string
	CheckOutImage  *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RecomputeStatus rebuilds Status from the four timestamps. Every write path calls it,
// so a stored status never disagrees with the times it was derived from.
func (a *Attendance) RecomputeStatus() {
	a.Status = ComputeStatus(a.CheckInTime, a.CheckOutTime, a.ShiftStartTime, a.ShiftEndTime)
}

// IsOpen reports whether the employee has not checked out yet.
func (a *Attendance) IsOpen() bool {
	return a.CheckOutTime == nil
}

// WorkedMinutes is the time between check-in and check-out, nil while the record is open.
func (a *Attendance) WorkedMinutes() *int {
	if a.CheckOutTime == nil {
		return nil
	}
	mins := int(a.CheckOutTime.Sub(a.CheckInTime).Minutes())
	return &mins
}
