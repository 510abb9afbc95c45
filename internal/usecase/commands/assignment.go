package commands

import (
	"context"

	"voucher-engine/internal/infra"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// Assign grants the voucher to the customer. Re-assigning is a no-op and
// reports created=false; the existing usage counter is never reset.
func (c *voucherCommandsImpl) Assign(ctx context.Context, voucherID int64, customerID uuid.UUID) (created bool, err error) {
	now := c.clock.Now()

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Vouchers().FindByIDForUpdate(ctx, voucherID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrVoucherNotFound)
			}
			return err
		}

		inserted, err := tx.Assignments().Insert(ctx, customerID, voucherID, now)
		if err != nil {
			return err
		}
		created = inserted
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// Revoke removes the grant. Redemption records survive; revoking is not a
// refund. Revoking a voucher that was never assigned succeeds silently.
func (c *voucherCommandsImpl) Revoke(ctx context.Context, voucherID int64, customerID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Vouchers().FindByIDForUpdate(ctx, voucherID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrVoucherNotFound)
			}
			return err
		}
		return tx.Assignments().Delete(ctx, customerID, voucherID)
	})
}
