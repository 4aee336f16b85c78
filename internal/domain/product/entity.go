package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categories is the fixed list of hardware store categories.
var Categories = []string{
	"Material Konstruksi",
	"Peralatan Listrik",
	"Cat dan Pelapis",
	"Pipa dan Plumbing",
	"Peralatan Tangan",
	"Peralatan Mesin",
	"Kunci dan Keamanan",
	"Atap dan Genteng",
	"Lantai dan Keramik",
	"Besi dan Baja",
	"Kayu dan Triplek",
	"Alat Pengukur",
}

type Product struct {
	ID          string
	ProductCode string
	Name        string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	MinStock    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock reports whether the quantity has dropped below the minimum.
func (p Product) IsLowStock() bool {
	return p.Quantity < p.MinStock
}

// StockValue is price times quantity.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
