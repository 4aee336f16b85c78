package shift

import "errors"

var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrDuplicateShift    = errors.New("duplicate shift detected for the same employee on overlapping days")
	ErrEmployeeNotFound  = errors.New("one or more assigned employees do not exist")
	ErrInvalidShiftRange = errors.New("shift start date must not be after end date")
)
