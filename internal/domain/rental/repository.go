package rental

import "context"

type RentalRepository interface {
	List(ctx context.Context, filter RentalFilter) ([]Rental, int64, error)
	GetByID(ctx context.Context, id string) (Rental, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, r Rental) (Rental, error)
	Update(ctx context.Context, r Rental) error
	Delete(ctx context.Context, id string) error
}
