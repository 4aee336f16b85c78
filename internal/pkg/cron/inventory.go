package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/willykudo/pionix/internal/domain/product"
)

type InventoryJobs struct {
	productRepo product.ProductRepository
}

func NewInventoryJobs(productRepo product.ProductRepository) *InventoryJobs {
	return &InventoryJobs{productRepo: productRepo}
}

func (j *InventoryJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_low_stock", 6*time.Hour, j.ReportLowStock)
}

func (j *InventoryJobs) ReportLowStock(ctx context.Context) error {
	products, err := j.productRepo.ListLowStock(ctx)
	if err != nil {
		return fmt.Errorf("failed to list low stock products: %w", err)
	}

	for _, p := range products {
		slog.Warn("Cron: product below minimum stock",
			"product_id", p.ProductCode,
			"name", p.Name,
			"quantity", p.Quantity,
			"min_stock", p.MinStock)
	}
	return nil
}
