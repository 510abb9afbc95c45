package commands

import (
	"context"
	"log/slog"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/pkg/errs"
	"voucher-engine/internal/usecase/shared"
)

// Pause suspends an active voucher. Paused vouchers fail validation with
// INACTIVE but keep their window, so Resume restores them untouched.
func (c *voucherCommandsImpl) Pause(ctx context.Context, voucherID int64) error {
	return c.transition(ctx, voucherID, voucher.StatusInactive)
}

func (c *voucherCommandsImpl) Resume(ctx context.Context, voucherID int64) error {
	return c.transition(ctx, voucherID, voucher.StatusActive)
}

func (c *voucherCommandsImpl) transition(ctx context.Context, voucherID int64, to voucher.Status) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		v, err := tx.Vouchers().FindByIDForUpdate(ctx, voucherID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrVoucherNotFound)
			}
			return err
		}

		if !v.Status().CanTransitionTo(to) {
			return errs.Mark(
				errs.New("cannot transition voucher from "+string(v.Status())+" to "+string(to)),
				ErrInvalidTransition,
			)
		}

		return tx.Vouchers().UpdateStatus(ctx, voucherID, to)
	})
}

// ActivateScheduled is the periodic sweep that brings SCHEDULED vouchers
// whose start date has arrived into service. Safe to run repeatedly.
func (c *voucherCommandsImpl) ActivateScheduled(ctx context.Context) (int64, error) {
	now := c.clock.Now()
	var activated int64

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Vouchers().ActivateScheduled(ctx, now)
		if err != nil {
			return err
		}
		activated = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	if activated > 0 {
		slog.Info("activated scheduled vouchers", "count", activated)
	}
	return activated, nil
}

// ExpireOverdue is the counterpart sweep that retires ACTIVE vouchers past
// their end date. Safe to run repeatedly.
func (c *voucherCommandsImpl) ExpireOverdue(ctx context.Context) (int64, error) {
	now := c.clock.Now()
	var expired int64

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Vouchers().ExpireOverdue(ctx, now)
		if err != nil {
			return err
		}
		expired = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		slog.Info("expired overdue vouchers", "count", expired)
	}
	return expired, nil
}
