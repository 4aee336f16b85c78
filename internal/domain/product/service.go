package product

import "context"

type ProductService interface {
	List(ctx context.Context, filter ProductFilter) (ListProductResponse, error)
	Get(ctx context.Context, id string) (ProductResponse, error)
	Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	Update(ctx context.Context, req UpdateProductRequest) (ProductResponse, error)
	Delete(ctx context.Context, id string) error

	// LowStock lists products whose quantity is below their minimum stock.
	LowStock(ctx context.Context) ([]ProductResponse, error)
}
