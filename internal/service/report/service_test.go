package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/willykudo/pionix/internal/domain/attendance"
	"github.com/willykudo/pionix/internal/domain/product"
	"github.com/willykudo/pionix/internal/domain/report"
	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/testutil"
)

var (
	jakarta, _ = time.LoadLocation("Asia/Jakarta")

	admin = user.User{ID: "u-admin", Username: "admin", Name: "Admin", Role: user.RoleAdmin}
	budi  = user.User{ID: "u-budi", Username: "budi", Name: "Budi", Role: user.RoleEmployee}
	sari  = user.User{ID: "u-sari", Username: "sari", Name: "Sari", Role: user.RoleEmployee}
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 5, day, hour, minute, 0, 0, jakarta)
}

func record(id string, u user.User, day int, in time.Time, out *time.Time) attendance.Attendance {
	a := attendance.Attendance{
		ID:             id,
		EmployeeID:     u.ID,
		EmployeeName:   u.Name,
		CheckInTime:    in,
		CheckOutTime:   out,
		ShiftStartTime: at(day, 8, 0),
		ShiftEndTime:   at(day, 16, 0),
	}
	a.RecomputeStatus()
	return a
}

func ptr(t time.Time) *time.Time { return &t }

func fixtures() *testutil.AttendanceRepo {
	return testutil.NewAttendanceRepo(jakarta,
		record("a1", budi, 6, at(6, 8, 10), ptr(at(6, 16, 0))),
		record("a2", budi, 7, at(7, 7, 50), ptr(at(7, 15, 0))),
		record("a3", sari, 7, at(7, 8, 0), nil),
		record("a4", sari, 9, at(9, 8, 0), ptr(at(9, 17, 0))),
	)
}

func newService(repo attendance.AttendanceRepository, products ...product.Product) *ReportServiceImpl {
	svc := NewReportService(repo, testutil.NewProductRepo(products...), jakarta).(*ReportServiceImpl)
	svc.now = func() time.Time { return at(10, 12, 0) }
	return svc
}

func TestAttendanceSummary(t *testing.T) {
	svc := newService(fixtures())
	ctx := testutil.WithSession(context.Background(), admin)

	rep, err := svc.AttendanceSummary(ctx, report.AttendanceSummaryRequest{StartDate: "2024-05-06", EndDate: "2024-05-07"})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10T12:00:00+07:00", rep.GeneratedAt)
	require.Len(t, rep.Employees, 2)

	byEmployee := map[string]report.AttendanceSummary{}
	for _, e := range rep.Employees {
		byEmployee[e.EmployeeID] = e.Summary
	}
	assert.Equal(t, report.AttendanceSummary{
		TotalRecords:       2,
		OnTimeArrivals:     1,
		LateArrivals:       1,
		OnTimeDepartures:   1,
		Underworked:        1,
		TotalWorkedMinutes: 470 + 430,
	}, byEmployee[budi.ID])
	assert.Equal(t, 1, byEmployee[sari.ID].Pending)
	assert.Equal(t, 1, byEmployee[sari.ID].TotalRecords)
}

func TestAttendanceSummary_Rejects(t *testing.T) {
	svc := newService(fixtures())

	_, err := svc.AttendanceSummary(testutil.WithSession(context.Background(), budi), report.AttendanceSummaryRequest{StartDate: "2024-05-01", EndDate: "2024-05-31"})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.AttendanceSummary(testutil.WithSession(context.Background(), admin), report.AttendanceSummaryRequest{StartDate: "2024-05-31", EndDate: "2024-05-01"})
	assert.Error(t, err)
}

func readExport(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	return rows
}

func TestExportAttendance(t *testing.T) {
	svc := newService(fixtures())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportAttendance(testutil.WithSession(context.Background(), admin), attendance.AttendanceFilter{}, &buf))
	rows := readExport(t, &buf)
	require.Len(t, rows, 5)
	assert.Equal(t, "Employee ID", rows[0][0])
	// newest first
	assert.Equal(t, []string{"u-sari", "Sari", "2024-05-09 08:00", "2024-05-09 17:00", "2024-05-09 08:00", "2024-05-09 16:00", "On Time, Overworked", "540"}, rows[1])
}

func TestExportAttendance_EmployeeSeesOwnRows(t *testing.T) {
	svc := newService(fixtures())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportAttendance(testutil.WithSession(context.Background(), budi), attendance.AttendanceFilter{}, &buf))
	rows := readExport(t, &buf)
	require.Len(t, rows, 3)
	for _, row := range rows[1:] {
		assert.Equal(t, budi.ID, row[0])
	}
}

func TestStock(t *testing.T) {
	svc := newService(fixtures(),
		product.Product{ID: "p1", Name: "Semen", Category: "Material Konstruksi", Price: decimal.NewFromInt(65000), Quantity: 2, MinStock: 10},
		product.Product{ID: "p2", Name: "Paku", Category: "Besi dan Baja", Price: decimal.NewFromInt(1000), Quantity: 500, MinStock: 100},
	)

	rep, err := svc.Stock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, rep.TotalProducts)
	assert.EqualValues(t, 502, rep.TotalQuantity)
	assert.True(t, decimal.NewFromInt(630000).Equal(rep.InventoryValue), rep.InventoryValue.String())
	assert.Equal(t, 1, rep.LowStockCount)
	assert.True(t, decimal.NewFromInt(130000).Equal(rep.LowStockValue), rep.LowStockValue.String())
	require.Len(t, rep.LowStock, 1)
	assert.Equal(t, "p1", rep.LowStock[0].ID)
}
