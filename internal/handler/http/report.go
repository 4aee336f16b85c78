package http

import (
	"net/http"

	"github.com/willykudo/pionix/internal/domain/report"
	"github.com/willykudo/pionix/internal/handler/http/response"
)

type ReportHandler interface {
	// AttendanceSummary handles GET /reports/attendance?startDate=&endDate=&employeeId=
	AttendanceSummary(w http.ResponseWriter, r *http.Request)

	// Stock handles GET /reports/stock
	Stock(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func (h *reportHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	req := report.AttendanceSummaryRequest{
		StartDate:  r.URL.Query().Get("startDate"),
		EndDate:    r.URL.Query().Get("endDate"),
		EmployeeID: queryString(r, "employeeId"),
	}

	result, err := h.reportService.AttendanceSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) Stock(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Stock(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
