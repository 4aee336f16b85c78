package attendance

import "time"

// Status clause labels.
const (
	ClauseOnTime      = "On Time"
	ClauseLate        = "Late"
	ClausePending     = "Pending"
	ClauseUnderworked = "Underworked"
	ClauseOverworked  = "Overworked"
)

// ComputeStatus derives the two-clause status label "<check-in>, <check-out>".
//
// Arriving exactly at or before shiftStart is on time. A nil checkOut is pending.
// Leaving exactly at shiftEnd is on time, earlier is underworked, later is overworked.
// shiftStart and shiftEnd must be set; callers validate that before calling.
func ComputeStatus(checkIn time.Time, checkOut *time.Time, shiftStart, shiftEnd time.Time) string {
	return CheckInClause(checkIn, shiftStart) + ", " + CheckOutClause(checkOut, shiftEnd)
}

// CheckInClause is the first half of the status label.
func CheckInClause(checkIn, shiftStart time.Time) string {
	if checkIn.After(shiftStart) {
		return ClauseLate
	}
	return ClauseOnTime
}

// CheckOutClause is the second half of the status label.
func CheckOutClause(checkOut *time.Time, shiftEnd time.Time) string {
	switch {
	case checkOut == nil:
		return ClausePending
	case checkOut.Before(shiftEnd):
		return ClauseUnderworked
	case checkOut.After(shiftEnd):
		return ClauseOverworked
	default:
		return ClauseOnTime
	}
}
