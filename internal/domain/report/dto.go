package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/willykudo/pionix/internal/domain/attendance"
	"github.com/willykudo/pionix/internal/domain/product"
	"github.com/willykudo/pionix/internal/pkg/validator"
)

// ========================================
// ATTENDANCE SUMMARY REPORT
// ========================================

type AttendanceSummaryRequest struct {
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	EmployeeID *string `json:"employeeId,omitempty"`
}

func (r *AttendanceSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter converts the request into the attendance list filter it covers.
func (r *AttendanceSummaryRequest) Filter() attendance.AttendanceFilter {
	start, end := r.StartDate, r.EndDate
	return attendance.AttendanceFilter{
		StartDate:  &start,
		EndDate:    &end,
		EmployeeID: r.EmployeeID,
	}
}

type AttendanceSummaryReport struct {
	StartDate   string                     `json:"startDate"`
	EndDate     string                     `json:"endDate"`
	GeneratedAt string                     `json:"generatedAt"`
	Employees   []EmployeeAttendanceSummary `json:"employees"`
}

type EmployeeAttendanceSummary struct {
	EmployeeID   string            `json:"employeeId"`
	EmployeeName string            `json:"employeeName"`
	Summary      AttendanceSummary `json:"summary"`
}

type AttendanceSummary struct {
	TotalRecords       int `json:"totalRecords"`
	OnTimeArrivals     int `json:"onTimeArrivals"`
	LateArrivals       int `json:"lateArrivals"`
	OnTimeDepartures   int `json:"onTimeDepartures"`
	Underworked        int `json:"underworked"`
	Overworked         int `json:"overworked"`
	Pending            int `json:"pending"`
	TotalWorkedMinutes int `json:"totalWorkedMinutes"`
}

// Summarize tallies status clauses per employee, in order of first appearance.
// Clauses are derived from the timestamps rather than the stored label.
func Summarize(records []attendance.Attendance) []EmployeeAttendanceSummary {
	index := make(map[string]int)
	out := make([]EmployeeAttendanceSummary, 0)

	for _, a := range records {
		i, ok := index[a.EmployeeID]
		if !ok {
			i = len(out)
			index[a.EmployeeID] = i
			out = append(out, EmployeeAttendanceSummary{
				EmployeeID:   a.EmployeeID,
				EmployeeName: a.EmployeeName,
			})
		}
		s := &out[i].Summary
		s.TotalRecords++

		if attendance.CheckInClause(a.CheckInTime, a.ShiftStartTime) == attendance.ClauseLate {
			s.LateArrivals++
		} else {
			s.OnTimeArrivals++
		}

		switch attendance.CheckOutClause(a.CheckOutTime, a.ShiftEndTime) {
		case attendance.ClausePending:
			s.Pending++
		case attendance.ClauseUnderworked:
			s.Underworked++
		case attendance.ClauseOverworked:
			s.Overworked++
		default:
			s.OnTimeDepartures++
		}

		if m := a.WorkedMinutes(); m != nil {
			s.TotalWorkedMinutes += *m
		}
	}

	return out
}

// ========================================
// STOCK REPORT
// ========================================

type StockReport struct {
	GeneratedAt    string                    `json:"generatedAt"`
	TotalProducts  int                       `json:"totalProducts"`
	TotalQuantity  int64                     `json:"totalQuantity"`
	InventoryValue decimal.Decimal           `json:"inventoryValue"`
	LowStockCount  int                       `json:"lowStockCount"`
	LowStockValue  decimal.Decimal           `json:"lowStockValue"`
	LowStock       []product.ProductResponse `json:"lowStock"`
}

// NewStockReport totals the whole catalogue and lists the products below minimum stock.
func NewStockReport(products []product.Product, now time.Time) StockReport {
	rep := StockReport{
		GeneratedAt:    now.Format(time.RFC3339),
		TotalProducts:  len(products),
		InventoryValue: decimal.Zero,
		LowStockValue:  decimal.Zero,
		LowStock:       make([]product.ProductResponse, 0),
	}
	for _, p := range products {
		value := p.StockValue()
		rep.TotalQuantity += int64(p.Quantity)
		rep.InventoryValue = rep.InventoryValue.Add(value)
		if p.IsLowStock() {
			rep.LowStockValue = rep.LowStockValue.Add(value)
			rep.LowStock = append(rep.LowStock, product.NewProductResponse(p))
		}
	}
	rep.LowStockCount = len(rep.LowStock)
	return rep
}
