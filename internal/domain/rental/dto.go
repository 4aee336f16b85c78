package rental

import (
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/willykudo/pionix/internal/pkg/calendar"
	"github.com/willykudo/pionix/internal/pkg/pagination"
	"github.com/willykudo/pionix/internal/pkg/validator"
)

// RentalRequest is the multipart form used for both create and update.
type RentalRequest struct {
	ID                 string
	RentalID           string
	EquipmentName      string
	RentalStatus       string
	CustomerName       string
	RentalDuration     string
	RentalPrice        string
	EquipmentCondition string
	Description        string
	RentalDate         string
	ReturnDate         string
	File               multipart.File
	FileHeader         *multipart.FileHeader
}

// ParsePrice reads a price that may carry dotted thousands separators ("1.500.000").
func ParsePrice(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ".", ""))
}

// Validate checks the form and returns the parsed rental. An omitted duration is derived
// from the two dates when both are present.
func (r *RentalRequest) Validate(loc *time.Location) (Rental, error) {
	var errs validator.ValidationErrors
	out := Rental{
		RentalCode:         strings.TrimSpace(r.RentalID),
		EquipmentName:      strings.TrimSpace(r.EquipmentName),
		RentalStatus:       Status(r.RentalStatus),
		CustomerName:       strings.TrimSpace(r.CustomerName),
		EquipmentCondition: Condition(r.EquipmentCondition),
		Description:        r.Description,
	}

	if out.EquipmentName == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "equipmentName",
			Message: "equipmentName is required",
		})
	}

	if !validator.IsInSlice(r.RentalStatus, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "rentalStatus",
			Message: "rentalStatus must be one of Available, Rented, Maintenance",
		})
	}
	if out.RentalStatus == StatusRented && out.CustomerName == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "customerName",
			Message: "customerName is required for a rented item",
		})
	}

	if !validator.IsInSlice(r.EquipmentCondition, ConditionValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "equipmentCondition",
			Message: "equipmentCondition must be one of New, Good, Fair, Poor",
		})
	}

	if validator.IsEmpty(r.RentalPrice) {
		errs = append(errs, validator.ValidationError{
			Field:   "rentalPrice",
			Message: "rentalPrice is required",
		})
	} else if price, err := ParsePrice(r.RentalPrice); err != nil || price.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "rentalPrice",
			Message: "rentalPrice must be a non-negative number",
		})
	} else {
		out.RentalPrice = price
	}

	var rentalOK, returnOK bool
	if !validator.IsEmpty(r.RentalDate) {
		d, err := calendar.ParseDate(r.RentalDate, loc)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "rentalDate",
				Message: "rentalDate must be in YYYY-MM-DD format",
			})
		} else {
			out.RentalDate, rentalOK = d, true
		}
	}
	if !validator.IsEmpty(r.ReturnDate) {
		d, err := calendar.ParseDate(r.ReturnDate, loc)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "returnDate",
				Message: "returnDate must be in YYYY-MM-DD format",
			})
		} else {
			out.ReturnDate, returnOK = d, true
		}
	}
	if rentalOK && returnOK && out.ReturnDate.Before(out.RentalDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "returnDate",
			Message: "returnDate must not be before rentalDate",
		})
	}

	switch {
	case !validator.IsEmpty(r.RentalDuration):
		n, err := strconv.Atoi(strings.TrimSpace(r.RentalDuration))
		if err != nil || n < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "rentalDuration",
				Message: "rentalDuration must be a non-negative number of days",
			})
		}
		out.RentalDuration = n
	case rentalOK && returnOK:
		out.RentalDuration = daysBetween(out.RentalDate, out.ReturnDate)
	}

	if verr := validator.ValidateImage("rentalImage", r.FileHeader, false); verr != nil {
		errs = append(errs, *verr)
	}

	if len(errs) > 0 {
		return Rental{}, errs
	}
	return out, nil
}

func daysBetween(from, to calendar.Date) int {
	n := int(to.Time(time.UTC).Sub(from.Time(time.UTC)).Hours() / 24)
	return max(n, 0)
}

type RentalFilter struct {
	// Search matches equipment or customer name, case-insensitive.
	Search *string `json:"search,omitempty"`
	Status *string `json:"rentalStatus,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RentalFilter) Validate() error {
	errs := pagination.Normalize(&f.Page, &f.Limit, 5)

	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "rentalStatus",
			Message: "rentalStatus must be one of Available, Rented, Maintenance",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RentalResponse struct {
	ID                 string          `json:"id"`
	RentalID           string          `json:"rentalId"`
	EquipmentName      string          `json:"equipmentName"`
	RentalStatus       string          `json:"rentalStatus"`
	CustomerName       string          `json:"customerName"`
	RentalDuration     int             `json:"rentalDuration"`
	RentalPrice        decimal.Decimal `json:"rentalPrice"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	EquipmentCondition string          `json:"equipmentCondition"`
	Description        string          `json:"description"`
	RentalImage        *string         `json:"rentalImage,omitempty"`
	RentalDate         *string         `json:"rentalDate"`
	ReturnDate         *string         `json:"returnDate"`
	CreatedAt          string          `json:"createdAt"`
	UpdatedAt          string          `json:"updatedAt"`
}

// NewRentalResponse builds the response; imageURL turns a stored path into a public URL.
func NewRentalResponse(r Rental, imageURL func(string) string) RentalResponse {
	resp := RentalResponse{
		ID:                 r.ID,
		RentalID:           r.RentalCode,
		EquipmentName:      r.EquipmentName,
		RentalStatus:       string(r.RentalStatus),
		CustomerName:       r.CustomerName,
		RentalDuration:     r.RentalDuration,
		RentalPrice:        r.RentalPrice,
		TotalPrice:         r.TotalPrice(),
		EquipmentCondition: string(r.EquipmentCondition),
		Description:        r.Description,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          r.UpdatedAt.Format(time.RFC3339),
	}
	if r.RentalImage != nil && imageURL != nil {
		u := imageURL(*r.RentalImage)
		resp.RentalImage = &u
	}
	if !r.RentalDate.IsZero() {
		s := r.RentalDate.String()
		resp.RentalDate = &s
	}
	if !r.ReturnDate.IsZero() {
		s := r.ReturnDate.String()
		resp.ReturnDate = &s
	}
	return resp
}

type ListRentalResponse struct {
	TotalCount int64            `json:"totalCount"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
	Showing    string           `json:"showing"`
	Rentals    []RentalResponse `json:"rentals"`
}
