package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ValidateVoucherRequest struct {
	Code         string           `json:"code"`
	RestaurantID *int64           `json:"restaurant_id,omitempty"`
	OrderAmount  *decimal.Decimal `json:"order_amount,omitempty"`
	AsOf         *time.Time       `json:"as_of,omitempty"`
}

type ApplyVoucherRequest struct {
	Code         string           `json:"code" binding:"required"`
	RestaurantID *int64           `json:"restaurant_id,omitempty"`
	BookingID    *int64           `json:"booking_id,omitempty"`
	OrderAmount  *decimal.Decimal `json:"order_amount,omitempty"`
}

type AssignVoucherRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}
