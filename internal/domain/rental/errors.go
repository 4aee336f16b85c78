package rental

import "errors"

var (
	ErrRentalNotFound   = errors.New("rental not found")
	ErrRentalCodeExists = errors.New("rental ID already exists")
)
