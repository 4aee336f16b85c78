package report

import (
	"context"
	"io"

	"github.com/willykudo/pionix/internal/domain/attendance"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// AttendanceSummary tallies status clauses per employee over a date range.
	AttendanceSummary(ctx context.Context, req AttendanceSummaryRequest) (AttendanceSummaryReport, error)

	// ExportAttendance writes the records matching filter as an XLSX workbook.
	ExportAttendance(ctx context.Context, filter attendance.AttendanceFilter, w io.Writer) error

	// Stock lists low-stock products with their stock value.
	Stock(ctx context.Context) (StockReport, error)
}
