//go:build unit

package commands_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"voucher-engine/internal/domain/assignment"
	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeUoW is an in-memory stand-in for the Postgres unit of work. A single
// mutex plays the role of the voucher row lock, and the callback runs against
// a copy of the state so a returned error rolls everything back.
type fakeUoW struct {
	mu    sync.Mutex
	state *memState
}

type assignKey struct {
	customerID uuid.UUID
	voucherID  int64
}

type assignRow struct {
	id         int64
	timesUsed  int32
	assignedAt time.Time
	lastUsedAt *time.Time
}

type redemptionRow struct {
	id  int64
	rec shared.RedemptionRecord
}

type memState struct {
	vouchers         map[int64]voucher.Params
	assignments      map[assignKey]assignRow
	redemptions      []redemptionRow
	nextRedemptionID int64
	nextAssignmentID int64
}

func newFakeUoW(vouchers ...voucher.Params) *fakeUoW {
	s := &memState{
		vouchers:         make(map[int64]voucher.Params),
		assignments:      make(map[assignKey]assignRow),
		nextRedemptionID: 1,
		nextAssignmentID: 1,
	}
	for _, p := range vouchers {
		s.vouchers[p.ID] = p
	}
	return &fakeUoW{state: s}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	work := u.state.clone()
	if err := fn(ctx, &fakeTx{s: work}); err != nil {
		return err
	}
	u.state = work
	return nil
}

func (s *memState) clone() *memState {
	c := &memState{
		vouchers:         make(map[int64]voucher.Params, len(s.vouchers)),
		assignments:      make(map[assignKey]assignRow, len(s.assignments)),
		redemptions:      append([]redemptionRow(nil), s.redemptions...),
		nextRedemptionID: s.nextRedemptionID,
		nextAssignmentID: s.nextAssignmentID,
	}
	for id, p := range s.vouchers {
		c.vouchers[id] = p
	}
	for k, v := range s.assignments {
		c.assignments[k] = v
	}
	return c
}

func (u *fakeUoW) voucherStatus(id int64) voucher.Status {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.vouchers[id].Status
}

func (u *fakeUoW) redemptionCount(voucherID int64) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, r := range u.state.redemptions {
		if r.rec.VoucherID == voucherID {
			n++
		}
	}
	return n
}

func (u *fakeUoW) assignmentRow(customerID uuid.UUID, voucherID int64) (assignRow, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	row, ok := u.state.assignments[assignKey{customerID, voucherID}]
	return row, ok
}

type fakeTx struct {
	s *memState
}

func (t *fakeTx) Vouchers() shared.VoucherRepository       { return &fakeVoucherRepo{s: t.s} }
func (t *fakeTx) Assignments() shared.AssignmentRepository { return &fakeAssignmentRepo{s: t.s} }
func (t *fakeTx) Redemptions() shared.RedemptionRepository { return &fakeRedemptionRepo{s: t.s} }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type fakeVoucherRepo struct {
	s *memState
}

func (r *fakeVoucherRepo) FindByCodeForUpdate(_ context.Context, code string) (*voucher.Voucher, error) {
	for _, p := range r.s.vouchers {
		if strings.EqualFold(p.Code, strings.TrimSpace(code)) {
			return voucher.New(p)
		}
	}
	return nil, notFound("voucher not found")
}

func (r *fakeVoucherRepo) FindByIDForUpdate(_ context.Context, id int64) (*voucher.Voucher, error) {
	p, ok := r.s.vouchers[id]
	if !ok {
		return nil, notFound("voucher not found")
	}
	return voucher.New(p)
}

func (r *fakeVoucherRepo) UpdateStatus(_ context.Context, id int64, status voucher.Status) error {
	p, ok := r.s.vouchers[id]
	if !ok {
		return notFound("voucher not found")
	}
	p.Status = status
	r.s.vouchers[id] = p
	return nil
}

func (r *fakeVoucherRepo) ActivateScheduled(_ context.Context, asOf time.Time) (int64, error) {
	var n int64
	for id, p := range r.s.vouchers {
		if p.Status != voucher.StatusScheduled {
			continue
		}
		if p.StartDate != nil && dateOnly(*p.StartDate).After(dateOnly(asOf)) {
			continue
		}
		p.Status = voucher.StatusActive
		r.s.vouchers[id] = p
		n++
	}
	return n, nil
}

func (r *fakeVoucherRepo) ExpireOverdue(_ context.Context, asOf time.Time) (int64, error) {
	var n int64
	for id, p := range r.s.vouchers {
		if p.Status != voucher.StatusActive {
			continue
		}
		if p.EndDate == nil || !dateOnly(*p.EndDate).Before(dateOnly(asOf)) {
			continue
		}
		p.Status = voucher.StatusExpired
		r.s.vouchers[id] = p
		n++
	}
	return n, nil
}

type fakeAssignmentRepo struct {
	s *memState
}

func (r *fakeAssignmentRepo) FindForUpdate(_ context.Context, customerID uuid.UUID, voucherID int64) (*assignment.Assignment, error) {
	row, ok := r.s.assignments[assignKey{customerID, voucherID}]
	if !ok {
		return nil, notFound("assignment not found")
	}
	return assignment.New(row.id, customerID, voucherID, row.timesUsed, row.assignedAt, row.lastUsedAt), nil
}

func (r *fakeAssignmentRepo) Insert(_ context.Context, customerID uuid.UUID, voucherID int64, assignedAt time.Time) (bool, error) {
	key := assignKey{customerID, voucherID}
	if _, ok := r.s.assignments[key]; ok {
		return false, nil
	}
	r.s.assignments[key] = assignRow{id: r.s.nextAssignmentID, assignedAt: assignedAt}
	r.s.nextAssignmentID++
	return true, nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, customerID uuid.UUID, voucherID int64) error {
	delete(r.s.assignments, assignKey{customerID, voucherID})
	return nil
}

func (r *fakeAssignmentRepo) IncrementUsage(_ context.Context, customerID uuid.UUID, voucherID int64, usedAt time.Time) error {
	key := assignKey{customerID, voucherID}
	row, ok := r.s.assignments[key]
	if !ok {
		return notFound("assignment not found")
	}
	row.timesUsed++
	row.lastUsedAt = &usedAt
	r.s.assignments[key] = row
	return nil
}

type fakeRedemptionRepo struct {
	s *memState

	failCreate error
}

func (r *fakeRedemptionRepo) CountByVoucher(_ context.Context, voucherID int64) (int64, error) {
	var n int64
	for _, row := range r.s.redemptions {
		if row.rec.VoucherID == voucherID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRedemptionRepo) CountByVoucherAndCustomer(_ context.Context, voucherID int64, customerID uuid.UUID) (int64, error) {
	var n int64
	for _, row := range r.s.redemptions {
		if row.rec.VoucherID == voucherID && row.rec.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRedemptionRepo) Create(_ context.Context, rec shared.RedemptionRecord, _ time.Time) (int64, error) {
	if r.failCreate != nil {
		return 0, r.failCreate
	}
	id := r.s.nextRedemptionID
	r.s.nextRedemptionID++
	r.s.redemptions = append(r.s.redemptions, redemptionRow{id: id, rec: rec})
	return id, nil
}

// brokenTx wraps a fakeTx but fails redemption writes, for exercising the
// rollback path.
type brokenUoW struct {
	inner *fakeUoW
	err   error
}

func (u *brokenUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.inner.mu.Lock()
	defer u.inner.mu.Unlock()

	work := u.inner.state.clone()
	tx := &brokenTx{fakeTx: fakeTx{s: work}, err: u.err}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	u.inner.state = work
	return nil
}

type brokenTx struct {
	fakeTx
	err error
}

func (t *brokenTx) Redemptions() shared.RedemptionRepository {
	return &fakeRedemptionRepo{s: t.s, failCreate: t.err}
}
