package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn     = errors.New("employee already has an open attendance record")
	ErrNoShiftToday         = errors.New("no shift scheduled for today")
	ErrEmployeeNotScheduled = errors.New("employee is not scheduled for a shift today")
	ErrNotCheckedIn         = errors.New("attendance ID is not available, please check in first")
	ErrAlreadyCheckedOut    = errors.New("attendance record is already checked out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
