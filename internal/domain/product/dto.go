package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/willykudo/pionix/internal/pkg/pagination"
	"github.com/willykudo/pionix/internal/pkg/validator"
)

type CreateProductRequest struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	MinStock  int             `json:"minStock"`
}

func (r *CreateProductRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if verr := validateCategory(r.Category); verr != nil {
		errs = append(errs, *verr)
	}
	if r.Price.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "price",
			Message: "price must not be negative",
		})
	}
	if r.Quantity < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "quantity",
			Message: "quantity must not be negative",
		})
	}
	if r.MinStock < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "minStock",
			Message: "minStock must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProductRequest struct {
	ID       string           `json:"-"`
	Name     *string          `json:"name,omitempty"`
	Category *string          `json:"category,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Quantity *int             `json:"quantity,omitempty"`
	MinStock *int             `json:"minStock,omitempty"`
}

func (r *UpdateProductRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Category != nil {
		if verr := validateCategory(*r.Category); verr != nil {
			errs = append(errs, *verr)
		}
	}
	if r.Price != nil && r.Price.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "price",
			Message: "price must not be negative",
		})
	}
	if r.Quantity != nil && *r.Quantity < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "quantity",
			Message: "quantity must not be negative",
		})
	}
	if r.MinStock != nil && *r.MinStock < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "minStock",
			Message: "minStock must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the set fields onto p.
func (r *UpdateProductRequest) Apply(p *Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Quantity != nil {
		p.Quantity = *r.Quantity
	}
	if r.MinStock != nil {
		p.MinStock = *r.MinStock
	}
}

func validateCategory(category string) *validator.ValidationError {
	if validator.IsEmpty(category) {
		return &validator.ValidationError{Field: "category", Message: "category is required"}
	}
	if !validator.IsInSlice(category, Categories) {
		return &validator.ValidationError{Field: "category", Message: "category is not a known product category"}
	}
	return nil
}

type ProductFilter struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	LowStock *bool   `json:"lowStock,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ProductFilter) Validate() error {
	errs := pagination.Normalize(&f.Page, &f.Limit, 5)

	if f.Category != nil && *f.Category != "" && !validator.IsInSlice(*f.Category, Categories) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category is not a known product category",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProductResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	MinStock  int             `json:"minStock"`
	LowStock  bool            `json:"lowStock"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

func NewProductResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		ProductID: p.ProductCode,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Quantity:  p.Quantity,
		MinStock:  p.MinStock,
		LowStock:  p.IsLowStock(),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

type ListProductResponse struct {
	TotalCount int64             `json:"totalCount"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
	Showing    string            `json:"showing"`
	Products   []ProductResponse `json:"products"`
}
