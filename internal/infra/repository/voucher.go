package repository

import (
	"context"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/infra/db"
	"voucher-engine/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const voucherColumns = `voucher_id, code, description, discount_type, discount_value, max_discount,
	min_order_amount, restaurant_id, start_date, end_date, global_usage_limit, per_customer_limit,
	assigned_only, status, created_at, updated_at`

type VoucherRepository struct {
	db db.DBTX
}

func NewVoucherRepository(dbtx db.DBTX) *VoucherRepository {
	return &VoucherRepository{db: dbtx}
}

// FindByCodeForUpdate takes the exclusive row lock that serializes all
// concurrent redemption attempts against this voucher.
func (r *VoucherRepository) FindByCodeForUpdate(ctx context.Context, code string) (*voucher.Voucher, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+voucherColumns+` FROM vouchers WHERE lower(code) = lower($1) FOR UPDATE`,
		code,
	)

	v, err := scanVoucher(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher by code for update", err)
	}
	return v, nil
}

func (r *VoucherRepository) FindByIDForUpdate(ctx context.Context, id int64) (*voucher.Voucher, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+voucherColumns+` FROM vouchers WHERE voucher_id = $1 FOR UPDATE`,
		id,
	)

	v, err := scanVoucher(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher by ID for update", err)
	}
	return v, nil
}

func (r *VoucherRepository) UpdateStatus(ctx context.Context, id int64, status voucher.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE vouchers SET status = $2, updated_at = now() WHERE voucher_id = $1`,
		id, string(status),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update voucher status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	return nil
}

// ActivateScheduled flips every SCHEDULED voucher whose start date has
// arrived (or that has none) to ACTIVE. Idempotent.
func (r *VoucherRepository) ActivateScheduled(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE vouchers SET status = 'ACTIVE', updated_at = now()
		 WHERE status = 'SCHEDULED' AND (start_date IS NULL OR start_date <= $1::date)`,
		asOf,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to activate scheduled vouchers", err)
	}
	return tag.RowsAffected(), nil
}

// ExpireOverdue flips every ACTIVE voucher whose end date has passed to
// EXPIRED. Idempotent.
func (r *VoucherRepository) ExpireOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE vouchers SET status = 'EXPIRED', updated_at = now()
		 WHERE status = 'ACTIVE' AND end_date IS NOT NULL AND end_date < $1::date`,
		asOf,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire overdue vouchers", err)
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVoucher(row rowScanner) (*voucher.Voucher, error) {
	var (
		id            int64
		code          string
		description   pgtype.Text
		discountType  string
		discountValue decimal.Decimal
		maxDiscount   decimal.NullDecimal
		minOrder      decimal.NullDecimal
		restaurantID  pgtype.Int8
		startDate     pgtype.Date
		endDate       pgtype.Date
		globalLimit   pgtype.Int4
		perCustomer   pgtype.Int4
		assignedOnly  bool
		status        string
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	if err := row.Scan(
		&id, &code, &description, &discountType, &discountValue, &maxDiscount,
		&minOrder, &restaurantID, &startDate, &endDate, &globalLimit, &perCustomer,
		&assignedOnly, &status, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	return voucher.New(voucher.Params{
		ID:               id,
		Code:             code,
		Description:      pgconv.StringPtrFromPgtype(description),
		DiscountType:     voucher.DiscountType(discountType),
		DiscountValue:    discountValue,
		MaxDiscount:      pgconv.DecimalPtrFromNullDecimal(maxDiscount),
		MinOrderAmount:   pgconv.DecimalPtrFromNullDecimal(minOrder),
		RestaurantID:     pgconv.Int64PtrFromPgtype(restaurantID),
		StartDate:        pgconv.DatePtrFromPgtype(startDate),
		EndDate:          pgconv.DatePtrFromPgtype(endDate),
		GlobalUsageLimit: pgconv.Int32PtrFromPgtype(globalLimit),
		PerCustomerLimit: pgconv.Int32PtrFromPgtype(perCustomer),
		AssignedOnly:     assignedOnly,
		Status:           voucher.Status(status),
		CreatedAt:        pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:        pgconv.TimeFromPgtype(updatedAt),
	})
}
