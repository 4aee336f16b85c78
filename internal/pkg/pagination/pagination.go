package pagination

import (
	"fmt"
	"math"

	"github.com/willykudo/pionix/internal/pkg/validator"
)

const MaxLimit = 100

// Normalize validates page/limit and applies defaults for zero values.
func Normalize(page, limit *int, defaultLimit int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if *page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if *page == 0 {
		*page = 1
	}

	if *limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if *limit == 0 {
		*limit = defaultLimit
	}
	if *limit > MaxLimit {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("limit must not exceed %d", MaxLimit),
		})
	}

	return errs
}

// Offset returns the row offset for a 1-based page.
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// Showing renders the "from-to of total" label used by list responses.
func Showing(page, limit int, total int64) string {
	if total == 0 {
		return "0 of 0"
	}
	from := int64(Offset(page, limit) + 1)
	to := min(int64(page*limit), total)
	if from > total {
		return fmt.Sprintf("0 of %d", total)
	}
	return fmt.Sprintf("%d-%d of %d", from, to, total)
}
