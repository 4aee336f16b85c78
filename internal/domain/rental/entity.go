package rental

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/willykudo/pionix/internal/pkg/calendar"
)

type Status string

const (
	StatusAvailable   Status = "Available"
	StatusRented      Status = "Rented"
	StatusMaintenance Status = "Maintenance"
)

var StatusValues = []string{string(StatusAvailable), string(StatusRented), string(StatusMaintenance)}

type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionGood Condition = "Good"
	ConditionFair Condition = "Fair"
	ConditionPoor Condition = "Poor"
)

var ConditionValues = []string{string(ConditionNew), string(ConditionGood), string(ConditionFair), string(ConditionPoor)}

type Rental struct {
	ID                 string
	RentalCode         string
	EquipmentName      string
	RentalStatus       Status
	CustomerName       string
	RentalDuration     int
	RentalPrice        decimal.Decimal
	EquipmentCondition Condition
	Description        string
	RentalImage        *string
	RentalDate         calendar.Date
	ReturnDate         calendar.Date
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TotalPrice is the daily price times the rental duration.
func (r Rental) TotalPrice() decimal.Decimal {
	return r.RentalPrice.Mul(decimal.NewFromInt(int64(r.RentalDuration)))
}
