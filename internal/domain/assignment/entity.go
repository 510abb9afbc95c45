package assignment

import (
	"time"

	"github.com/google/uuid"
)

// Assignment tracks a voucher explicitly granted to a customer. The
// times-used counter only moves for assigned-only vouchers; redemptions of
// public vouchers are counted from the audit trail instead.
type Assignment struct {
	id         int64
	customerID uuid.UUID
	voucherID  int64
	timesUsed  int32
	assignedAt time.Time
	lastUsedAt *time.Time
}

func New(id int64, customerID uuid.UUID, voucherID int64, timesUsed int32, assignedAt time.Time, lastUsedAt *time.Time) *Assignment {
	if timesUsed < 0 {
		timesUsed = 0
	}
	return &Assignment{
		id:         id,
		customerID: customerID,
		voucherID:  voucherID,
		timesUsed:  timesUsed,
		assignedAt: assignedAt,
		lastUsedAt: lastUsedAt,
	}
}

// RemainingUses returns how many redemptions are left under the given
// per-customer limit. bounded is false when no limit applies.
func (a *Assignment) RemainingUses(perCustomerLimit *int32) (remaining int32, bounded bool) {
	if perCustomerLimit == nil {
		return 0, false
	}
	remaining = *perCustomerLimit - a.timesUsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

func (a *Assignment) CanUseMore(perCustomerLimit *int32) bool {
	remaining, bounded := a.RemainingUses(perCustomerLimit)
	return !bounded || remaining > 0
}

func (a *Assignment) ID() int64              { return a.id }
func (a *Assignment) CustomerID() uuid.UUID  { return a.customerID }
func (a *Assignment) VoucherID() int64       { return a.voucherID }
func (a *Assignment) TimesUsed() int32       { return a.timesUsed }
func (a *Assignment) AssignedAt() time.Time  { return a.assignedAt }
func (a *Assignment) LastUsedAt() *time.Time { return a.lastUsedAt }
