package voucher

import (
	"time"

	"voucher-engine/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDateWindow = errs.New("start date must not be after end date")
	ErrInvalidUsageLimit = errs.New("usage limits must be at least 1")
)

// Voucher is the discount definition. Optional fields are nil when the
// voucher carries no such constraint: a nil restaurantID applies everywhere,
// nil window dates never expire, nil limits are unbounded.
type Voucher struct {
	id               int64
	code             Code
	description      *string
	discountType     DiscountType
	discountValue    decimal.Decimal
	maxDiscount      *decimal.Decimal
	minOrderAmount   *decimal.Decimal
	restaurantID     *int64
	startDate        *time.Time
	endDate          *time.Time
	globalUsageLimit *int32
	perCustomerLimit *int32
	assignedOnly     bool
	status           Status
	createdAt        time.Time
	updatedAt        time.Time
}

type Params struct {
	ID               int64
	Code             string
	Description      *string
	DiscountType     DiscountType
	DiscountValue    decimal.Decimal
	MaxDiscount      *decimal.Decimal
	MinOrderAmount   *decimal.Decimal
	RestaurantID     *int64
	StartDate        *time.Time
	EndDate          *time.Time
	GlobalUsageLimit *int32
	PerCustomerLimit *int32
	AssignedOnly     bool
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func New(p Params) (*Voucher, error) {
	code, err := NewCode(p.Code)
	if err != nil {
		return nil, err
	}

	if _, err := ParseDiscountType(string(p.DiscountType)); err != nil {
		return nil, err
	}
	if p.DiscountValue.Sign() < 0 {
		return nil, ErrInvalidDiscountValue
	}
	if p.DiscountType == DiscountPercent && p.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return nil, ErrInvalidPercentValue
	}

	if _, err := ParseStatus(string(p.Status)); err != nil {
		return nil, err
	}

	if p.StartDate != nil && p.EndDate != nil && dateOnly(*p.StartDate).After(dateOnly(*p.EndDate)) {
		return nil, ErrInvalidDateWindow
	}

	if (p.GlobalUsageLimit != nil && *p.GlobalUsageLimit < 1) ||
		(p.PerCustomerLimit != nil && *p.PerCustomerLimit < 1) {
		return nil, ErrInvalidUsageLimit
	}

	return &Voucher{
		id:               p.ID,
		code:             code,
		description:      p.Description,
		discountType:     p.DiscountType,
		discountValue:    p.DiscountValue,
		maxDiscount:      p.MaxDiscount,
		minOrderAmount:   p.MinOrderAmount,
		restaurantID:     p.RestaurantID,
		startDate:        p.StartDate,
		endDate:          p.EndDate,
		globalUsageLimit: p.GlobalUsageLimit,
		perCustomerLimit: p.PerCustomerLimit,
		assignedOnly:     p.AssignedOnly,
		status:           p.Status,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}, nil
}

// Window bounds are inclusive calendar days.
func (v *Voucher) StartsAfter(asOf time.Time) bool {
	return v.startDate != nil && dateOnly(asOf).Before(dateOnly(*v.startDate))
}

func (v *Voucher) EndedBefore(asOf time.Time) bool {
	return v.endDate != nil && dateOnly(asOf).After(dateOnly(*v.endDate))
}

func (v *Voucher) WithinWindow(asOf time.Time) bool {
	return !v.StartsAfter(asOf) && !v.EndedBefore(asOf)
}

// AppliesTo reports whether the voucher may be used at the given restaurant.
// An unscoped voucher applies everywhere.
func (v *Voucher) AppliesTo(restaurantID *int64) bool {
	if v.restaurantID == nil {
		return true
	}
	return restaurantID != nil && *restaurantID == *v.restaurantID
}

func (v *Voucher) ID() int64                        { return v.id }
func (v *Voucher) Code() Code                       { return v.code }
func (v *Voucher) Description() *string             { return v.description }
func (v *Voucher) DiscountType() DiscountType       { return v.discountType }
func (v *Voucher) DiscountValue() decimal.Decimal   { return v.discountValue }
func (v *Voucher) MaxDiscount() *decimal.Decimal    { return v.maxDiscount }
func (v *Voucher) MinOrderAmount() *decimal.Decimal { return v.minOrderAmount }
func (v *Voucher) RestaurantID() *int64             { return v.restaurantID }
func (v *Voucher) StartDate() *time.Time            { return v.startDate }
func (v *Voucher) EndDate() *time.Time              { return v.endDate }
func (v *Voucher) GlobalUsageLimit() *int32         { return v.globalUsageLimit }
func (v *Voucher) PerCustomerLimit() *int32         { return v.perCustomerLimit }
func (v *Voucher) AssignedOnly() bool               { return v.assignedOnly }
func (v *Voucher) Status() Status                   { return v.status }
func (v *Voucher) CreatedAt() time.Time             { return v.createdAt }
func (v *Voucher) UpdatedAt() time.Time             { return v.updatedAt }

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
