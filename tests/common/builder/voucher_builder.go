//go:build unit || e2e

package builder

import (
	"time"

	"voucher-engine/internal/domain/voucher"

	"github.com/shopspring/decimal"
)

func Ptr[T any](v T) *T {
	return &v
}

type VoucherBuilder struct {
	ID               int64
	Code             string
	Description      *string
	DiscountType     voucher.DiscountType
	DiscountValue    decimal.Decimal
	MaxDiscount      *decimal.Decimal
	MinOrderAmount   *decimal.Decimal
	RestaurantID     *int64
	StartDate        *time.Time
	EndDate          *time.Time
	GlobalUsageLimit *int32
	PerCustomerLimit *int32
	AssignedOnly     bool
	Status           voucher.Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewVoucherBuilder() *VoucherBuilder {
	now := time.Now()
	return &VoucherBuilder{
		ID:            1,
		Code:          "WELCOME10",
		Description:   Ptr("10% off your booking"),
		DiscountType:  voucher.DiscountPercent,
		DiscountValue: decimal.NewFromInt(10),
		Status:        voucher.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *VoucherBuilder) With(mutate func(*VoucherBuilder)) *VoucherBuilder {
	mutate(b)
	return b
}

func (b *VoucherBuilder) BuildParams() voucher.Params {
	return voucher.Params{
		ID:               b.ID,
		Code:             b.Code,
		Description:      b.Description,
		DiscountType:     b.DiscountType,
		DiscountValue:    b.DiscountValue,
		MaxDiscount:      b.MaxDiscount,
		MinOrderAmount:   b.MinOrderAmount,
		RestaurantID:     b.RestaurantID,
		StartDate:        b.StartDate,
		EndDate:          b.EndDate,
		GlobalUsageLimit: b.GlobalUsageLimit,
		PerCustomerLimit: b.PerCustomerLimit,
		AssignedOnly:     b.AssignedOnly,
		Status:           b.Status,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func (b *VoucherBuilder) BuildDomain() (*voucher.Voucher, error) {
	return voucher.New(b.BuildParams())
}
