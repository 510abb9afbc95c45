package readstore

import (
	"context"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/infra/db"
	"voucher-engine/internal/pkg/pgconv"
	"voucher-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const voucherColumns = `voucher_id, code, description, discount_type, discount_value, max_discount,
	min_order_amount, restaurant_id, start_date, end_date, global_usage_limit, per_customer_limit,
	assigned_only, status, created_at, updated_at`

// VoucherReadStore serves the lock-free read side: dry-run validation and
// customer listings.
type VoucherReadStore struct {
	db db.DBTX
}

func NewVoucherReadStore(dbtx db.DBTX) *VoucherReadStore {
	return &VoucherReadStore{db: dbtx}
}

func (r *VoucherReadStore) FindByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+voucherColumns+` FROM vouchers WHERE lower(code) = lower($1)`,
		code,
	)

	v, err := scanVoucherRow(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher by code", err)
	}
	return v, nil
}

func (r *VoucherReadStore) ListAssignedActive(ctx context.Context, customerID uuid.UUID) ([]*queries.AssignedVoucherRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT v.voucher_id, v.code, v.description, v.discount_type, v.discount_value, v.max_discount,
			v.min_order_amount, v.restaurant_id, v.start_date, v.end_date, v.global_usage_limit,
			v.per_customer_limit, v.assigned_only, v.status, v.created_at, v.updated_at,
			cv.times_used, cv.assigned_at, cv.last_used_at
		 FROM customer_vouchers cv
		 JOIN vouchers v ON v.voucher_id = cv.voucher_id
		 WHERE cv.customer_id = $1 AND v.status = 'ACTIVE'
		 ORDER BY cv.assigned_at DESC`,
		customerID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list assigned vouchers", err)
	}
	defer rows.Close()

	var result []*queries.AssignedVoucherRow
	for rows.Next() {
		var (
			timesUsed  int32
			assignedAt pgtype.Timestamptz
			lastUsedAt pgtype.Timestamptz
		)
		v, err := scanVoucherRow(rows, &timesUsed, &assignedAt, &lastUsedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan assigned voucher", err)
		}
		result = append(result, &queries.AssignedVoucherRow{
			Voucher:    v,
			TimesUsed:  timesUsed,
			AssignedAt: pgconv.TimeFromPgtype(assignedAt),
			LastUsedAt: pgconv.TimePtrFromPgtype(lastUsedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list assigned vouchers", err)
	}
	return result, nil
}

func (r *VoucherReadStore) ListGlobalActive(ctx context.Context) ([]*voucher.Voucher, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+voucherColumns+` FROM vouchers
		 WHERE assigned_only = FALSE AND status = 'ACTIVE'
		 ORDER BY voucher_id`,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list global vouchers", err)
	}
	defer rows.Close()

	var result []*voucher.Voucher
	for rows.Next() {
		v, err := scanVoucherRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan global voucher", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list global vouchers", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanVoucherRow reads the voucher columns plus any trailing extras the
// query joined in.
func scanVoucherRow(row rowScanner, extra ...any) (*voucher.Voucher, error) {
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

	dest := []any{
		&id, &code, &description, &discountType, &discountValue, &maxDiscount,
		&minOrder, &restaurantID, &startDate, &endDate, &globalLimit, &perCustomer,
		&assignedOnly, &status, &createdAt, &updatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
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
