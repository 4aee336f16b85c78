package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/willykudo/pionix/internal/domain/product"
	"github.com/willykudo/pionix/internal/pkg/database"
	"github.com/willykudo/pionix/internal/pkg/pagination"
)

const productColumns = `id, product_code, name, category, price, quantity, min_stock, created_at, updated_at`

type productRepository struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) product.ProductRepository {
	return &productRepository{db: db}
}

func scanProduct(row pgx.Row) (product.Product, error) {
	var p product.Product
	err := row.Scan(&p.ID, &p.ProductCode, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.MinStock, &p.CreatedAt, &p.UpdatedAt)
	if isNoRows(err) {
		return product.Product{}, product.ErrProductNotFound
	}
	return p, err
}

func collectProducts(rows pgx.Rows) ([]product.Product, error) {
	defer rows.Close()
	out := make([]product.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// List implements product.ProductRepository.
func (r *productRepository) List(ctx context.Context, filter product.ProductFilter) ([]product.Product, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "1=1"
	args := []any{}
	argIdx := 1

	if filter.Name != nil && *filter.Name != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Name+"%")
		argIdx++
	}
	if filter.Category != nil && *filter.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.LowStock != nil {
		if *filter.LowStock {
			where += " AND quantity < min_stock"
		} else {
			where += " AND quantity >= min_stock"
		}
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, productColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListAll implements product.ProductRepository.
func (r *productRepository) ListAll(ctx context.Context) ([]product.Product, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return collectProducts(rows)
}

// ListLowStock implements product.ProductRepository.
func (r *productRepository) ListLowStock(ctx context.Context) ([]product.Product, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE quantity < min_stock ORDER BY quantity, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}
	return collectProducts(rows)
}

// GetByID implements product.ProductRepository.
func (r *productRepository) GetByID(ctx context.Context, id string) (product.Product, error) {
	q := GetQuerier(ctx, r.db)
	return scanProduct(q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

// ExistsByCode implements product.ProductRepository.
func (r *productRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE product_code = $1)`, code).Scan(&exists)
	return exists, err
}

// Create implements product.ProductRepository.
func (r *productRepository) Create(ctx context.Context, p product.Product) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO products (product_code, name, category, price, quantity, min_stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns

	created, err := scanProduct(q.QueryRow(ctx, query, p.ProductCode, p.Name, p.Category, p.Price, p.Quantity, p.MinStock))
	if err != nil {
		if isUniqueViolation(err, "products_product_code_key") {
			return product.Product{}, product.ErrProductCodeExists
		}
		return product.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return created, nil
}

// Update implements product.ProductRepository.
func (r *productRepository) Update(ctx context.Context, p product.Product) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE products
		SET name = $1, category = $2, price = $3, quantity = $4, min_stock = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := q.Exec(ctx, query, p.Name, p.Category, p.Price, p.Quantity, p.MinStock, p.ID)
	if err != nil {
		if isNoRows(err) {
			return product.ErrProductNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// Delete implements product.ProductRepository.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return product.ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}
