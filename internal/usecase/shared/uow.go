package shared

import (
	"context"
	"time"

	"voucher-engine/internal/domain/assignment"
	"voucher-engine/internal/domain/voucher"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitOfWork scopes repository work to a single database transaction.
// Within retries on serialization failures, so the callback must be
// side-effect free outside the repositories it is given.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Vouchers() VoucherRepository
	Assignments() AssignmentRepository
	Redemptions() RedemptionRepository
}

// VoucherRepository is the transactional write-side view of vouchers. The
// ForUpdate lookups take the exclusive row lock that serializes concurrent
// redemption attempts for a single voucher.
type VoucherRepository interface {
	FindByCodeForUpdate(ctx context.Context, code string) (*voucher.Voucher, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*voucher.Voucher, error)
	UpdateStatus(ctx context.Context, id int64, status voucher.Status) error
	ActivateScheduled(ctx context.Context, asOf time.Time) (int64, error)
	ExpireOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type AssignmentRepository interface {
	FindForUpdate(ctx context.Context, customerID uuid.UUID, voucherID int64) (*assignment.Assignment, error)
	// Insert is idempotent per (customer, voucher): an existing row is left
	// untouched and inserted reports false.
	Insert(ctx context.Context, customerID uuid.UUID, voucherID int64, assignedAt time.Time) (inserted bool, err error)
	Delete(ctx context.Context, customerID uuid.UUID, voucherID int64) error
	IncrementUsage(ctx context.Context, customerID uuid.UUID, voucherID int64, usedAt time.Time) error
}

// RedemptionRecord is the append-only proof of a completed discount usage.
type RedemptionRecord struct {
	VoucherID       int64
	CustomerID      uuid.UUID
	BookingID       *int64
	DiscountApplied decimal.Decimal
	OrderAmount     decimal.Decimal
	FinalAmount     decimal.Decimal
}

// RedemptionRepository deliberately exposes no update or delete: the audit
// trail is immutable once written.
type RedemptionRepository interface {
	CountByVoucher(ctx context.Context, voucherID int64) (int64, error)
	CountByVoucherAndCustomer(ctx context.Context, voucherID int64, customerID uuid.UUID) (int64, error)
	Create(ctx context.Context, rec RedemptionRecord, createdAt time.Time) (int64, error)
}
