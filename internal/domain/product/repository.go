package product

import "context"

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	ListAll(ctx context.Context) ([]Product, error)
	ListLowStock(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
}
