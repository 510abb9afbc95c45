package voucher

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// ComputeDiscount returns the monetary discount the voucher yields for the
// given order amount. The result is always within [0, orderAmount]. A nil
// voucher or nil/negative order amount yields zero. Pure, safe to call
// outside any transaction.
func ComputeDiscount(v *Voucher, orderAmount *decimal.Decimal) decimal.Decimal {
	if v == nil || orderAmount == nil || orderAmount.Sign() < 0 {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch v.discountType {
	case DiscountPercent:
		discount = orderAmount.Mul(v.discountValue).Div(oneHundred)
	case DiscountFixed:
		discount = decimal.Min(v.discountValue, *orderAmount)
	default:
		return decimal.Zero
	}

	if v.maxDiscount != nil {
		discount = decimal.Min(discount, *v.maxDiscount)
	}

	discount = decimal.Min(discount, *orderAmount)
	return decimal.Max(discount, decimal.Zero)
}
