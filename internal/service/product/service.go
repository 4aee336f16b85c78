package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/willykudo/pionix/internal/domain/product"
	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/pkg/pagination"
)

type ProductServiceImpl struct {
	product.ProductRepository
}

func NewProductService(productRepository product.ProductRepository) product.ProductService {
	return &ProductServiceImpl{ProductRepository: productRepository}
}

func (s *ProductServiceImpl) List(ctx context.Context, filter product.ProductFilter) (product.ListProductResponse, error) {
	if err := filter.Validate(); err != nil {
		return product.ListProductResponse{}, err
	}

	products, total, err := s.ProductRepository.List(ctx, filter)
	if err != nil {
		return product.ListProductResponse{}, fmt.Errorf("failed to list products: %w", err)
	}

	resp := product.ListProductResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: pagination.TotalPages(total, filter.Limit),
		Showing:    pagination.Showing(filter.Page, filter.Limit, total),
		Products:   make([]product.ProductResponse, 0, len(products)),
	}
	for _, p := range products {
		resp.Products = append(resp.Products, product.NewProductResponse(p))
	}
	return resp, nil
}

func (s *ProductServiceImpl) Get(ctx context.Context, id string) (product.ProductResponse, error) {
	p, err := s.ProductRepository.GetByID(ctx, id)
	if err != nil {
		return product.ProductResponse{}, err
	}
	return product.NewProductResponse(p), nil
}

// Create stores a new product. A blank product ID gets a generated one.
func (s *ProductServiceImpl) Create(ctx context.Context, req product.CreateProductRequest) (product.ProductResponse, error) {
	if err := requireManager(ctx); err != nil {
		return product.ProductResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return product.ProductResponse{}, err
	}

	code := strings.TrimSpace(req.ProductID)
	if code == "" {
		code = uuid.NewString()
	} else {
		exists, err := s.ProductRepository.ExistsByCode(ctx, code)
		if err != nil {
			return product.ProductResponse{}, fmt.Errorf("failed to check product ID: %w", err)
		}
		if exists {
			return product.ProductResponse{}, product.ErrProductCodeExists
		}
	}

	created, err := s.ProductRepository.Create(ctx, product.Product{
		ProductCode: code,
		Name:        strings.TrimSpace(req.Name),
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		MinStock:    req.MinStock,
	})
	if err != nil {
		return product.ProductResponse{}, err
	}
	return product.NewProductResponse(created), nil
}

func (s *ProductServiceImpl) Update(ctx context.Context, req product.UpdateProductRequest) (product.ProductResponse, error) {
	if err := requireManager(ctx); err != nil {
		return product.ProductResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return product.ProductResponse{}, err
	}

	p, err := s.ProductRepository.GetByID(ctx, req.ID)
	if err != nil {
		return product.ProductResponse{}, err
	}
	req.Apply(&p)

	if err := s.ProductRepository.Update(ctx, p); err != nil {
		return product.ProductResponse{}, err
	}
	return product.NewProductResponse(p), nil
}

func (s *ProductServiceImpl) Delete(ctx context.Context, id string) error {
	if err := requireManager(ctx); err != nil {
		return err
	}
	return s.ProductRepository.Delete(ctx, id)
}

func (s *ProductServiceImpl) LowStock(ctx context.Context) ([]product.ProductResponse, error) {
	products, err := s.ProductRepository.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}

	resp := make([]product.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, product.NewProductResponse(p))
	}
	return resp, nil
}

func requireManager(ctx context.Context) error {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return err
	}
	if !session.Can(user.PermissionProductManage) {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}
