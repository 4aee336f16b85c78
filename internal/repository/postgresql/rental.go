package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/willykudo/pionix/internal/domain/rental"
	"github.com/willykudo/pionix/internal/pkg/database"
	"github.com/willykudo/pionix/internal/pkg/pagination"
)

const rentalColumns = `
	id, rental_code, equipment_name, rental_status, customer_name, rental_duration,
	rental_price, equipment_condition, description, rental_image, rental_date, return_date,
	created_at, updated_at`

type rentalRepository struct {
	db *database.DB
}

func NewRentalRepository(db *database.DB) rental.RentalRepository {
	return &rentalRepository{db: db}
}

func scanRental(row pgx.Row) (rental.Rental, error) {
	var x rental.Rental
	var rentalDate, returnDate pgtype.Date
	err := row.Scan(
		&x.ID, &x.RentalCode, &x.EquipmentName, &x.RentalStatus, &x.CustomerName, &x.RentalDuration,
		&x.RentalPrice, &x.EquipmentCondition, &x.Description, &x.RentalImage, &rentalDate, &returnDate,
		&x.CreatedAt, &x.UpdatedAt,
	)
	if isNoRows(err) {
		return rental.Rental{}, rental.ErrRentalNotFound
	}
	if err != nil {
		return rental.Rental{}, err
	}
	x.RentalDate, x.ReturnDate = fromPgDate(rentalDate), fromPgDate(returnDate)
	return x, nil
}

// List implements rental.RentalRepository.
func (r *rentalRepository) List(ctx context.Context, filter rental.RentalFilter) ([]rental.Rental, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "1=1"
	args := []any{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND (equipment_name ILIKE $%d OR customer_name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND rental_status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM rentals WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rentals: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM rentals
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, rentalColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query rentals: %w", err)
	}
	defer rows.Close()

	rentals := make([]rental.Rental, 0, filter.Limit)
	for rows.Next() {
		x, err := scanRental(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan rental: %w", err)
		}
		rentals = append(rentals, x)
	}
	return rentals, total, rows.Err()
}

// GetByID implements rental.RentalRepository.
func (r *rentalRepository) GetByID(ctx context.Context, id string) (rental.Rental, error) {
	q := GetQuerier(ctx, r.db)
	return scanRental(q.QueryRow(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id))
}

// ExistsByCode implements rental.RentalRepository.
func (r *rentalRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM rentals WHERE rental_code = $1)`, code).Scan(&exists)
	return exists, err
}

// Create implements rental.RentalRepository.
func (r *rentalRepository) Create(ctx context.Context, x rental.Rental) (rental.Rental, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO rentals (
			rental_code, equipment_name, rental_status, customer_name, rental_duration,
			rental_price, equipment_condition, description, rental_image, rental_date, return_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + rentalColumns

	created, err := scanRental(q.QueryRow(ctx, query,
		x.RentalCode, x.EquipmentName, string(x.RentalStatus), x.CustomerName, x.RentalDuration,
		x.RentalPrice, string(x.EquipmentCondition), x.Description, x.RentalImage,
		pgDate(x.RentalDate), pgDate(x.ReturnDate),
	))
	if err != nil {
		if isUniqueViolation(err, "rentals_rental_code_key") {
			return rental.Rental{}, rental.ErrRentalCodeExists
		}
		return rental.Rental{}, fmt.Errorf("failed to insert rental: %w", err)
	}
	return created, nil
}

// Update implements rental.RentalRepository.
func (r *rentalRepository) Update(ctx context.Context, x rental.Rental) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE rentals
		SET rental_code = $1, equipment_name = $2, rental_status = $3, customer_name = $4,
			rental_duration = $5, rental_price = $6, equipment_condition = $7, description = $8,
			rental_image = $9, rental_date = $10, return_date = $11, updated_at = NOW()
		WHERE id = $12
	`
	tag, err := q.Exec(ctx, query,
		x.RentalCode, x.EquipmentName, string(x.RentalStatus), x.CustomerName,
		x.RentalDuration, x.RentalPrice, string(x.EquipmentCondition), x.Description,
		x.RentalImage, pgDate(x.RentalDate), pgDate(x.ReturnDate), x.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "rentals_rental_code_key") {
			return rental.ErrRentalCodeExists
		}
		if isNoRows(err) {
			return rental.ErrRentalNotFound
		}
		return fmt.Errorf("failed to update rental: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return rental.ErrRentalNotFound
	}
	return nil
}

// Delete implements rental.RentalRepository.
func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		if isNoRows(err) {
			return rental.ErrRentalNotFound
		}
		return fmt.Errorf("failed to delete rental: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return rental.ErrRentalNotFound
	}
	return nil
}
