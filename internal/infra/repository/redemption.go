package repository

import (
	"context"
	"time"

	"voucher-engine/internal/infra"
	"voucher-engine/internal/infra/db"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// RedemptionRepository writes and counts the append-only audit trail. Counts
// are only meaningful under the voucher row lock; callers run them inside
// the redemption transaction.
type RedemptionRepository struct {
	db db.DBTX
}

func NewRedemptionRepository(dbtx db.DBTX) *RedemptionRepository {
	return &RedemptionRepository{db: dbtx}
}

func (r *RedemptionRepository) CountByVoucher(ctx context.Context, voucherID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM voucher_redemptions WHERE voucher_id = $1`,
		voucherID,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count redemptions by voucher", err)
	}
	return count, nil
}

func (r *RedemptionRepository) CountByVoucherAndCustomer(ctx context.Context, voucherID int64, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM voucher_redemptions WHERE voucher_id = $1 AND customer_id = $2`,
		voucherID, customerID,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count redemptions by voucher and customer", err)
	}
	return count, nil
}

func (r *RedemptionRepository) Create(ctx context.Context, rec shared.RedemptionRecord, createdAt time.Time) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO voucher_redemptions
		 (voucher_id, customer_id, booking_id, discount_applied, order_amount, final_amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING redemption_id`,
		rec.VoucherID, rec.CustomerID, rec.BookingID,
		rec.DiscountApplied, rec.OrderAmount, rec.FinalAmount, createdAt,
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create redemption record", err)
	}
	return id, nil
}
