package response

import (
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/queries"

	"github.com/shopspring/decimal"
)

type ApplyVoucherResponse struct {
	Applied      bool            `json:"applied"`
	Reason       string          `json:"reason,omitempty"`
	Discount     decimal.Decimal `json:"discount"`
	FinalAmount  decimal.Decimal `json:"final_amount"`
	VoucherID    *int64          `json:"voucher_id,omitempty"`
	RedemptionID *int64          `json:"redemption_id,omitempty"`
}

func FromApplyResult(r commands.ApplyResult) ApplyVoucherResponse {
	return ApplyVoucherResponse{
		Applied:      r.Applied,
		Reason:       string(r.Reason),
		Discount:     r.Discount,
		FinalAmount:  r.FinalAmount,
		VoucherID:    r.VoucherID,
		RedemptionID: r.RedemptionID,
	}
}

type AssignVoucherResponse struct {
	Created bool `json:"created"`
}

type LifecycleSweepResponse struct {
	Updated int64 `json:"updated"`
}

type CustomerVouchersResponse struct {
	Vouchers []*queries.CustomerVoucherView `json:"vouchers"`
}
