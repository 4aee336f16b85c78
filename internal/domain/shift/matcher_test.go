package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willykudo/pionix/internal/pkg/calendar"
)

var (
	morningStart, morningEnd, _     = DefaultTimes(ShiftTypeMorning)
	afternoonStart, afternoonEnd, _ = DefaultTimes(ShiftTypeAfternoon)
)

func newShift(id string, t ShiftType, start, end string, employees ...Employee) Shift {
	s := Shift{
		ID:        id,
		ShiftType: t,
		StartDate: calendar.MustParseDate(start),
		EndDate:   calendar.MustParseDate(end),
		Employees: employees,
	}
	if t == ShiftTypeMorning {
		s.ShiftStart, s.ShiftEnd = morningStart, morningEnd
	} else {
		s.ShiftStart, s.ShiftEnd = afternoonStart, afternoonEnd
	}
	return s
}

var (
	budi = Employee{ID: "e1", Name: "Budi"}
	sari = Employee{ID: "e2", Name: "Sari"}
	adi  = Employee{ID: "e3", Name: "Adi"}
)

func TestFindShiftForEmployeeOnDate(t *testing.T) {
	shifts := []Shift{
		newShift("s1", ShiftTypeMorning, "2024-05-01", "2024-05-03", budi),
		newShift("s2", ShiftTypeAfternoon, "2024-05-02", "2024-05-05", budi, sari),
	}

	cases := []struct {
		name       string
		employeeID string
		ref        string
		wantID     string
		wantOK     bool
	}{
		{"first day of range", "e1", "2024-05-01", "s1", true},
		{"last day of range", "e1", "2024-05-03", "s1", true},
		{"overlap returns first in input order", "e1", "2024-05-02", "s1", true},
		{"only second shift covers", "e1", "2024-05-04", "s2", true},
		{"other assignee", "e2", "2024-05-02", "s2", true},
		{"day before any range", "e1", "2024-04-30", "", false},
		{"day after every range", "e2", "2024-05-06", "", false},
		{"not assigned anywhere", "e3", "2024-05-02", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := FindShiftForEmployeeOnDate(shifts, c.employeeID, calendar.MustParseDate(c.ref))
			assert.Equal(t, c.wantOK, ok)
			assert.Equal(t, c.wantID, got.ID)
		})
	}
}

func TestFindShiftForEmployeeOnDate_Empty(t *testing.T) {
	_, ok := FindShiftForEmployeeOnDate(nil, "e1", calendar.MustParseDate("2024-05-01"))
	assert.False(t, ok)
}

func TestFindShiftsForAllEmployeesOnDate(t *testing.T) {
	shifts := []Shift{
		newShift("s1", ShiftTypeMorning, "2024-05-01", "2024-05-03", budi, sari),
		newShift("s2", ShiftTypeAfternoon, "2024-05-04", "2024-05-05", adi),
		newShift("s3", ShiftTypeAfternoon, "2024-05-02", "2024-05-02", budi),
	}

	var got []ScheduledEmployee
	for se := range FindShiftsForAllEmployeesOnDate(shifts, calendar.MustParseDate("2024-05-02")) {
		got = append(got, se)
	}

	require.Len(t, got, 3)
	assert.Equal(t, ScheduledEmployee{
		ShiftID: "s1", ShiftType: ShiftTypeMorning,
		EmployeeID: "e1", EmployeeName: "Budi",
		ShiftStart: morningStart, ShiftEnd: morningEnd,
	}, got[0])
	assert.Equal(t, "e2", got[1].EmployeeID)
	// Budi appears twice: duplicates across shifts are kept.
	assert.Equal(t, "e1", got[2].EmployeeID)
	assert.Equal(t, afternoonStart, got[2].ShiftStart)
}

func TestFindShiftsForAllEmployeesOnDate_Restartable(t *testing.T) {
	shifts := []Shift{newShift("s1", ShiftTypeMorning, "2024-05-01", "2024-05-01", budi, sari)}
	seq := FindShiftsForAllEmployeesOnDate(shifts, calendar.MustParseDate("2024-05-01"))

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, 2, count())
	assert.Equal(t, 2, count())
}

func TestFindShiftsForAllEmployeesOnDate_EarlyStop(t *testing.T) {
	shifts := []Shift{
		newShift("s1", ShiftTypeMorning, "2024-05-01", "2024-05-01", budi, sari),
		newShift("s2", ShiftTypeAfternoon, "2024-05-01", "2024-05-01", adi),
	}
	var seen []string
	for se := range FindShiftsForAllEmployeesOnDate(shifts, calendar.MustParseDate("2024-05-01")) {
		seen = append(seen, se.EmployeeID)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"e1", "e2"}, seen)
}

func TestFindShiftsForAllEmployeesOnDate_NoneScheduled(t *testing.T) {
	shifts := []Shift{newShift("s1", ShiftTypeMorning, "2024-05-01", "2024-05-01", budi)}
	for range FindShiftsForAllEmployeesOnDate(shifts, calendar.MustParseDate("2024-06-01")) {
		t.Fatal("expected empty sequence")
	}
}

func TestShiftsForScope(t *testing.T) {
	shifts := []Shift{
		newShift("s1", ShiftTypeMorning, "2024-05-01", "2024-05-03", budi, sari),
		newShift("s2", ShiftTypeAfternoon, "2024-05-01", "2024-05-03", adi),
	}
	ref := calendar.MustParseDate("2024-05-02")

	all := ShiftsForScope(shifts, ScopeAll, "e1", ref)
	assert.Len(t, all, 3)

	self := ShiftsForScope(shifts, ScopeSelf, "e2", ref)
	require.Len(t, self, 1)
	assert.Equal(t, "Sari", self[0].EmployeeName)
	assert.Equal(t, "s1", self[0].ShiftID)

	none := ShiftsForScope(shifts, ScopeSelf, "e9", ref)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGroupShiftsByDateAndType(t *testing.T) {
	shifts := []Shift{
		newShift("s1", ShiftTypeMorning, "2024-05-01", "2024-05-03", budi),
		newShift("s2", ShiftTypeMorning, "2024-05-01", "2024-05-03", sari),
		newShift("s3", ShiftTypeAfternoon, "2024-05-01", "2024-05-03", adi),
		newShift("s4", ShiftTypeMorning, "2024-05-04", "2024-05-06", budi),
	}

	groups, keys := GroupShiftsByDateAndType(shifts)

	require.Len(t, keys, 3)
	assert.Len(t, groups, 3)
	assert.Equal(t, "s1", groups[keys[0]].ID, "first record per key wins")
	assert.Equal(t, ShiftTypeAfternoon, keys[1].ShiftType)
	assert.Equal(t, "s4", groups[keys[2]].ID)

	_, keysAgain := GroupShiftsByDateAndType(shifts)
	assert.Equal(t, keys, keysAgain)
}

func TestGroupShiftsByDateAndType_Empty(t *testing.T) {
	groups, keys := GroupShiftsByDateAndType(nil)
	assert.Empty(t, groups)
	assert.Empty(t, keys)
}

func TestDefaultTimes(t *testing.T) {
	start, end, ok := DefaultTimes(ShiftTypeAfternoon)
	require.True(t, ok)
	assert.Equal(t, "12:00", start.String())
	assert.Equal(t, "20:00", end.String())

	_, _, ok = DefaultTimes("Night")
	assert.False(t, ok)
}

func TestShift_ConflictsWith(t *testing.T) {
	base := newShift("s1", ShiftTypeMorning, "2024-05-01", "2024-05-03", budi)

	assert.True(t, base.ConflictsWith(newShift("", ShiftTypeMorning, "2024-05-03", "2024-05-05", budi)))
	assert.False(t, base.ConflictsWith(newShift("", ShiftTypeMorning, "2024-05-04", "2024-05-05", budi)), "adjacent range")
	assert.False(t, base.ConflictsWith(newShift("", ShiftTypeAfternoon, "2024-05-01", "2024-05-03", budi)), "other type")
	assert.False(t, base.ConflictsWith(newShift("", ShiftTypeMorning, "2024-05-01", "2024-05-03", sari)), "other employee")
	assert.False(t, base.ConflictsWith(base), "same record")
}
