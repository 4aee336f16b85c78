package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductCodeExists = errors.New("product ID already exists")
)
