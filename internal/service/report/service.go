package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/willykudo/pionix/internal/domain/attendance"
	"github.com/willykudo/pionix/internal/domain/product"
	"github.com/willykudo/pionix/internal/domain/report"
	"github.com/willykudo/pionix/internal/domain/user"
)

const exportSheet = "Attendance"

var exportHeader = []any{
	"Employee ID", "Employee Name", "Check In", "Check Out",
	"Shift Start", "Shift End", "Status", "Worked Minutes",
}

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	product.ProductRepository
	loc *time.Location
	now func() time.Time
}

func NewReportService(attendanceRepo attendance.AttendanceRepository, productRepo product.ProductRepository, loc *time.Location) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepo,
		ProductRepository:    productRepo,
		loc:                  loc,
		now:                  time.Now,
	}
}

// AttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, req report.AttendanceSummaryRequest) (report.AttendanceSummaryReport, error) {
	if err := requireViewAll(ctx); err != nil {
		return report.AttendanceSummaryReport{}, err
	}
	if err := req.Validate(); err != nil {
		return report.AttendanceSummaryReport{}, err
	}

	records, err := s.AttendanceRepository.ListAll(ctx, req.Filter())
	if err != nil {
		return report.AttendanceSummaryReport{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	return report.AttendanceSummaryReport{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GeneratedAt: s.now().In(s.loc).Format(time.RFC3339),
		Employees:   report.Summarize(records),
	}, nil
}

// ExportAttendance implements report.ReportService.
func (s *ReportServiceImpl) ExportAttendance(ctx context.Context, filter attendance.AttendanceFilter, w io.Writer) error {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return err
	}
	if err := filter.Validate(); err != nil {
		return err
	}
	if !session.Can(user.PermissionAttendanceViewAll) {
		own := session.UserID
		filter.EmployeeID = &own
	}

	records, err := s.AttendanceRepository.ListAll(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load attendance: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", "H1", bold); err != nil {
		return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}
	if err := f.SetColWidth(exportSheet, "A", "H", 22); err != nil {
		return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	for i, a := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
		}
		row := s.exportRow(a)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func (s *ReportServiceImpl) exportRow(a attendance.Attendance) []any {
	format := func(t time.Time) string { return t.In(s.loc).Format("2006-01-02 15:04") }

	checkOut, worked := "", ""
	if a.CheckOutTime != nil {
		checkOut = format(*a.CheckOutTime)
	}
	if m := a.WorkedMinutes(); m != nil {
		worked = fmt.Sprint(*m)
	}
	return []any{
		a.EmployeeID,
		a.EmployeeName,
		format(a.CheckInTime),
		checkOut,
		format(a.ShiftStartTime),
		format(a.ShiftEndTime),
		a.Status,
		worked,
	}
}

// Stock implements report.ReportService.
func (s *ReportServiceImpl) Stock(ctx context.Context) (report.StockReport, error) {
	products, err := s.ProductRepository.ListAll(ctx)
	if err != nil {
		return report.StockReport{}, fmt.Errorf("failed to list products: %w", err)
	}
	return report.NewStockReport(products, s.now().In(s.loc)), nil
}

func requireViewAll(ctx context.Context) error {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return err
	}
	if !session.Can(user.PermissionAttendanceViewAll) {
		return user.ErrInsufficientPermissions
	}
	return nil
}
