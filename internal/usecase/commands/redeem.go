package commands

import (
	"context"
	"log/slog"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/pkg/clock"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrVoucherNotFound   = errs.New("voucher not found")
	ErrInvalidTransition = errs.New("invalid status transition")
)

// ApplyRequest is a redemption attempt against a booking.
type ApplyRequest struct {
	Code         string
	CustomerID   uuid.UUID
	RestaurantID *int64
	BookingID    *int64
	OrderAmount  *decimal.Decimal
}

// ApplyResult reports the outcome as data. Rejections are ordinary results,
// not errors; Reason is empty iff Applied is true.
type ApplyResult struct {
	Applied      bool
	Reason       voucher.ReasonCode
	Discount     decimal.Decimal
	FinalAmount  decimal.Decimal
	VoucherID    *int64
	RedemptionID *int64
}

type VoucherCommands interface {
	// Redeem validates and consumes the voucher atomically. Storage faults
	// surface as an APPLICATION_ERROR result after the transaction rolls
	// back; nothing is persisted on any failure path.
	Redeem(ctx context.Context, req ApplyRequest) ApplyResult

	Assign(ctx context.Context, voucherID int64, customerID uuid.UUID) (bool, error)
	Revoke(ctx context.Context, voucherID int64, customerID uuid.UUID) error

	Pause(ctx context.Context, voucherID int64) error
	Resume(ctx context.Context, voucherID int64) error
	ActivateScheduled(ctx context.Context) (int64, error)
	ExpireOverdue(ctx context.Context) (int64, error)
}

type voucherCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewVoucherCommands(uow shared.UnitOfWork, clk clock.Clock) VoucherCommands {
	return &voucherCommandsImpl{uow: uow, clock: clk}
}

func (c *voucherCommandsImpl) Redeem(ctx context.Context, req ApplyRequest) ApplyResult {
	now := c.clock.Now()
	var result ApplyResult

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The row lock serializes every concurrent attempt on this code, so
		// the usage counts below are stable until commit.
		v, err := tx.Vouchers().FindByCodeForUpdate(ctx, req.Code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				result = rejected(voucher.ReasonNotFound)
				return nil
			}
			return err
		}

		verdict := voucher.Evaluate(v, req.RestaurantID, req.OrderAmount, now)
		if !verdict.Valid {
			result = rejected(verdict.Reason)
			return nil
		}

		if limit := v.GlobalUsageLimit(); limit != nil {
			count, err := tx.Redemptions().CountByVoucher(ctx, v.ID())
			if err != nil {
				return err
			}
			if count >= int64(*limit) {
				result = rejected(voucher.ReasonGlobalLimitReached)
				return nil
			}
		}

		useAssignment, reason, err := c.checkCustomerUsage(ctx, tx, v, req.CustomerID)
		if err != nil {
			return err
		}
		if reason != "" {
			result = rejected(reason)
			return nil
		}

		if !verdict.Discount.IsPositive() {
			result = rejected(voucher.ReasonNoDiscountApplicable)
			return nil
		}

		orderAmount := *req.OrderAmount
		finalAmount := orderAmount.Sub(verdict.Discount)

		redemptionID, err := tx.Redemptions().Create(ctx, shared.RedemptionRecord{
			VoucherID:       v.ID(),
			CustomerID:      req.CustomerID,
			BookingID:       req.BookingID,
			DiscountApplied: verdict.Discount,
			OrderAmount:     orderAmount,
			FinalAmount:     finalAmount,
		}, now)
		if err != nil {
			return err
		}

		if useAssignment {
			if err := tx.Assignments().IncrementUsage(ctx, req.CustomerID, v.ID(), now); err != nil {
				return err
			}
		}

		voucherID := v.ID()
		result = ApplyResult{
			Applied:      true,
			Discount:     verdict.Discount,
			FinalAmount:  finalAmount,
			VoucherID:    &voucherID,
			RedemptionID: &redemptionID,
		}
		return nil
	})
	if err != nil {
		slog.Error("voucher redemption failed",
			"code", req.Code,
			"customer_id", req.CustomerID,
			"error", err.Error())
		return rejected(voucher.ReasonApplicationError)
	}

	return result
}

// checkCustomerUsage enforces the per-customer side of the limits. The
// redemption-record count applies to every voucher; the assignment counter is
// an additional gate for assigned-only vouchers. Counting the audit trail
// first keeps the ceiling intact across revoke and re-assign, which resets
// the assignment counter but never erases redemption records.
func (c *voucherCommandsImpl) checkCustomerUsage(ctx context.Context, tx shared.Tx, v *voucher.Voucher, customerID uuid.UUID) (useAssignment bool, reason voucher.ReasonCode, err error) {
	if limit := v.PerCustomerLimit(); limit != nil {
		count, err := tx.Redemptions().CountByVoucherAndCustomer(ctx, v.ID(), customerID)
		if err != nil {
			return false, "", err
		}
		if count >= int64(*limit) {
			return false, voucher.ReasonPerCustomerLimitReached, nil
		}
	}

	if v.AssignedOnly() {
		a, err := tx.Assignments().FindForUpdate(ctx, customerID, v.ID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return false, voucher.ReasonNotAssigned, nil
			}
			return false, "", err
		}
		if !a.CanUseMore(v.PerCustomerLimit()) {
			return false, voucher.ReasonLimitReached, nil
		}
		return true, "", nil
	}

	return false, "", nil
}

func rejected(reason voucher.ReasonCode) ApplyResult {
	return ApplyResult{Applied: false, Reason: reason, Discount: decimal.Zero}
}
