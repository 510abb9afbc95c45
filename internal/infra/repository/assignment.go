package repository

import (
	"context"
	"time"

	"voucher-engine/internal/domain/assignment"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/infra/db"
	"voucher-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AssignmentRepository struct {
	db db.DBTX
}

func NewAssignmentRepository(dbtx db.DBTX) *AssignmentRepository {
	return &AssignmentRepository{db: dbtx}
}

func (r *AssignmentRepository) FindForUpdate(ctx context.Context, customerID uuid.UUID, voucherID int64) (*assignment.Assignment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT customer_voucher_id, customer_id, voucher_id, times_used, assigned_at, last_used_at
		 FROM customer_vouchers
		 WHERE customer_id = $1 AND voucher_id = $2
		 FOR UPDATE`,
		customerID, voucherID,
	)

	var (
		id         int64
		custID     uuid.UUID
		vID        int64
		timesUsed  int32
		assignedAt pgtype.Timestamptz
		lastUsedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &custID, &vID, &timesUsed, &assignedAt, &lastUsedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("assignment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find assignment for update", err)
	}

	return assignment.New(id, custID, vID, timesUsed, pgconv.TimeFromPgtype(assignedAt), pgconv.TimePtrFromPgtype(lastUsedAt)), nil
}

func (r *AssignmentRepository) Insert(ctx context.Context, customerID uuid.UUID, voucherID int64, assignedAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO customer_vouchers (customer_id, voucher_id, times_used, assigned_at)
		 VALUES ($1, $2, 0, $3)
		 ON CONFLICT (customer_id, voucher_id) DO NOTHING`,
		customerID, voucherID, assignedAt,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert assignment", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes the assignment row outright. Redemption records are never
// touched; the audit trail outlives the grant.
func (r *AssignmentRepository) Delete(ctx context.Context, customerID uuid.UUID, voucherID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM customer_vouchers WHERE customer_id = $1 AND voucher_id = $2`,
		customerID, voucherID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to delete assignment", err)
	}
	return nil
}

func (r *AssignmentRepository) IncrementUsage(ctx context.Context, customerID uuid.UUID, voucherID int64, usedAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE customer_vouchers
		 SET times_used = times_used + 1, last_used_at = $3
		 WHERE customer_id = $1 AND voucher_id = $2`,
		customerID, voucherID, usedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to increment assignment usage", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("assignment not found", nil, infra.KindNotFound)
	}
	return nil
}
