package voucher

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReasonCode identifies why a validation or redemption attempt was rejected.
// Expected business-rule failures travel as data, never as errors, so the
// caller can map them to user-facing messages.
type ReasonCode string

const (
	ReasonEmptyCode               ReasonCode = "EMPTY_CODE"
	ReasonNotFound                ReasonCode = "NOT_FOUND"
	ReasonInactive                ReasonCode = "INACTIVE"
	ReasonNotStarted              ReasonCode = "NOT_STARTED"
	ReasonExpired                 ReasonCode = "EXPIRED"
	ReasonRestaurantScopeMismatch ReasonCode = "RESTAURANT_SCOPE_MISMATCH"
	ReasonMinOrderNotMet          ReasonCode = "MIN_ORDER_NOT_MET"
	ReasonGlobalLimitReached      ReasonCode = "GLOBAL_LIMIT_REACHED"
	ReasonPerCustomerLimitReached ReasonCode = "PER_CUSTOMER_LIMIT_REACHED"
	ReasonNotAssigned             ReasonCode = "NOT_ASSIGNED"
	ReasonLimitReached            ReasonCode = "LIMIT_REACHED"
	ReasonNoDiscountApplicable    ReasonCode = "NO_DISCOUNT_APPLICABLE"
	ReasonApplicationError        ReasonCode = "APPLICATION_ERROR"
)

// Verdict is the outcome of the stateless eligibility checks.
type Verdict struct {
	Valid    bool
	Reason   ReasonCode
	Discount decimal.Decimal
}

func rejected(reason ReasonCode) Verdict {
	return Verdict{Reason: reason}
}

// Evaluate runs the eligibility checks in a fixed order, short-circuiting on
// the first failure so rejection reasons are reproducible. It is read-only
// and does not consider usage ceilings; those need the redemption lock.
//
// Order: status, window start, window end, restaurant scope, minimum order.
// On success the computed discount is included in the verdict.
func Evaluate(v *Voucher, restaurantID *int64, orderAmount *decimal.Decimal, asOf time.Time) Verdict {
	if v.status != StatusActive {
		return rejected(ReasonInactive)
	}
	if v.StartsAfter(asOf) {
		return rejected(ReasonNotStarted)
	}
	if v.EndedBefore(asOf) {
		return rejected(ReasonExpired)
	}
	if !v.AppliesTo(restaurantID) {
		return rejected(ReasonRestaurantScopeMismatch)
	}
	if v.minOrderAmount != nil && orderAmount != nil && orderAmount.LessThan(*v.minOrderAmount) {
		return rejected(ReasonMinOrderNotMet)
	}

	return Verdict{
		Valid:    true,
		Discount: ComputeDiscount(v, orderAmount),
	}
}
