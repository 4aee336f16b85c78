package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/willykudo/pionix/internal/domain/product"
	"github.com/willykudo/pionix/internal/domain/rental"
)

type ProductRepo struct {
	mu       sync.Mutex
	products []product.Product
	seq      int
}

func NewProductRepo(products ...product.Product) *ProductRepo {
	return &ProductRepo{products: append([]product.Product(nil), products...)}
}

func (r *ProductRepo) List(ctx context.Context, f product.ProductFilter) ([]product.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []product.Product
	for _, p := range r.products {
		if f.Name != nil && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(*f.Name)) {
			continue
		}
		if f.Category != nil && *f.Category != "" && p.Category != *f.Category {
			continue
		}
		if f.LowStock != nil && p.IsLowStock() != *f.LowStock {
			continue
		}
		matched = append(matched, p)
	}
	return page(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func (r *ProductRepo) ListAll(ctx context.Context) ([]product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]product.Product{}, r.products...), nil
}

func (r *ProductRepo) ListLowStock(ctx context.Context) ([]product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]product.Product, 0)
	for _, p := range r.products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return product.Product{}, product.ErrProductNotFound
}

func (r *ProductRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ProductCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *ProductRepo) Create(ctx context.Context, p product.Product) (product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = fmt.Sprintf("product-%d", r.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.products = append(r.products, p)
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = p
			return nil
		}
	}
	return product.ErrProductNotFound
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return product.ErrProductNotFound
}

type RentalRepo struct {
	mu      sync.Mutex
	rentals []rental.Rental
	seq     int
}

func NewRentalRepo(rentals ...rental.Rental) *RentalRepo {
	return &RentalRepo{rentals: append([]rental.Rental(nil), rentals...)}
}

func (r *RentalRepo) List(ctx context.Context, f rental.RentalFilter) ([]rental.Rental, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []rental.Rental
	for _, x := range r.rentals {
		if f.Status != nil && *f.Status != "" && string(x.RentalStatus) != *f.Status {
			continue
		}
		if f.Search != nil && *f.Search != "" {
			q := strings.ToLower(*f.Search)
			if !strings.Contains(strings.ToLower(x.EquipmentName), q) && !strings.Contains(strings.ToLower(x.CustomerName), q) {
				continue
			}
		}
		matched = append(matched, x)
	}
	return page(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func (r *RentalRepo) GetByID(ctx context.Context, id string) (rental.Rental, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.rentals {
		if x.ID == id {
			return x, nil
		}
	}
	return rental.Rental{}, rental.ErrRentalNotFound
}

func (r *RentalRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.rentals {
		if x.RentalCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *RentalRepo) Create(ctx context.Context, x rental.Rental) (rental.Rental, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	x.ID = fmt.Sprintf("rental-%d", r.seq)
	x.CreatedAt = time.Now()
	x.UpdatedAt = x.CreatedAt
	r.rentals = append(r.rentals, x)
	return x, nil
}

func (r *RentalRepo) Update(ctx context.Context, x rental.Rental) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rentals {
		if r.rentals[i].ID == x.ID {
			r.rentals[i] = x
			return nil
		}
	}
	return rental.ErrRentalNotFound
}

func (r *RentalRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rentals {
		if r.rentals[i].ID == id {
			r.rentals = append(r.rentals[:i], r.rentals[i+1:]...)
			return nil
		}
	}
	return rental.ErrRentalNotFound
}
