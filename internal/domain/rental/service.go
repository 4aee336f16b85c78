package rental

import "context"

type RentalService interface {
	List(ctx context.Context, filter RentalFilter) (ListRentalResponse, error)
	Get(ctx context.Context, id string) (RentalResponse, error)
	Create(ctx context.Context, req RentalRequest) (RentalResponse, error)
	Update(ctx context.Context, req RentalRequest) (RentalResponse, error)
	Delete(ctx context.Context, id string) error
}
