package report

import "errors"

var (
	ErrInvalidDateRange       = errors.New("endDate must not be before startDate")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
