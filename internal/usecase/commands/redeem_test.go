//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/pkg/clock"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/shared"
	"voucher-engine/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func voucherParams(mutate func(*builder.VoucherBuilder)) voucher.Params {
	b := builder.NewVoucherBuilder()
	if mutate != nil {
		mutate(b)
	}
	return b.BuildParams()
}

func applyRequest(customerID uuid.UUID, amount int64) commands.ApplyRequest {
	return commands.ApplyRequest{
		Code:        "WELCOME10",
		CustomerID:  customerID,
		OrderAmount: builder.Ptr(dec(amount)),
	}
}

func TestRedeem_Success(t *testing.T) {
	uow := newFakeUoW(voucherParams(func(b *builder.VoucherBuilder) {
		b.DiscountValue = dec(10)
		b.MaxDiscount = builder.Ptr(dec(50000))
	}))
	cmds := commands.NewVoucherCommands(uow, clock.NewMockClock(testNow))

	customerID := uuid.New()
	result := cmds.Redeem(context.Background(), applyRequest(customerID, 200000))

	require.True(t, result.Applied)
	require.NotNil(t, result.RedemptionID)

	want := commands.ApplyResult{
		Applied:      true,
		Discount:     dec(20000),
		FinalAmount:  dec(180000),
		VoucherID:    builder.Ptr(int64(1)),
		RedemptionID: result.RedemptionID,
	}
	if diff := cmp.Diff(want, result, decimalComparer); diff != "" {
		t.Errorf("unexpected apply result (-want +got):\n%s", diff)
	}

	assert.Equal(t, 1, uow.redemptionCount(1))
}

func TestRedeem_CaseInsensitiveCode(t *testing.T) {
	uow := newFakeUoW(voucherParams(nil))
	cmds := commands.NewVoucherCommands(uow, clock.NewMockClock(testNow))

	req := applyRequest(uuid.New(), 100000)
	req.Code = "welcome10"
	result := cmds.Redeem(context.Background(), req)

	assert.True(t, result.Applied)
}

func TestRedeem_Rejections(t *testing.T) {
	customerID := uuid.New()

	cases := []struct {
		name       string
		mutate     func(*builder.VoucherBuilder)
		req        commands.ApplyRequest
		wantReason voucher.ReasonCode
	}{
		{
			name: "unknown code",
			req: commands.ApplyRequest{
				Code:        "NOSUCHCODE",
				CustomerID:  customerID,
				OrderAmount: builder.Ptr(dec(100000)),
			},
			wantReason: voucher.ReasonNotFound,
		},
		{
			name: "blank code",
			req: commands.ApplyRequest{
				Code:        "   ",
				CustomerID:  customerID,
				OrderAmount: builder.Ptr(dec(100000)),
			},
			wantReason: voucher.ReasonNotFound,
		},
		{
			name:       "paused voucher",
			mutate:     func(b *builder.VoucherBuilder) { b.Status = voucher.StatusInactive },
			req:        applyRequest(customerID, 100000),
			wantReason: voucher.ReasonInactive,
		},
		{
			name: "not started yet",
			mutate: func(b *builder.VoucherBuilder) {
				b.StartDate = builder.Ptr(testNow.AddDate(0, 0, 3))
			},
			req:        applyRequest(customerID, 100000),
			wantReason: voucher.ReasonNotStarted,
		},
		{
			name: "window passed",
			mutate: func(b *builder.VoucherBuilder) {
				b.EndDate = builder.Ptr(testNow.AddDate(0, 0, -3))
			},
			req:        applyRequest(customerID, 100000),
			wantReason: voucher.ReasonExpired,
		},
		{
			name: "wrong restaurant",
			mutate: func(b *builder.VoucherBuilder) {
				b.RestaurantID = builder.Ptr(int64(42))
			},
			req: commands.ApplyRequest{
				Code:         "WELCOME10",
				CustomerID:   customerID,
				RestaurantID: builder.Ptr(int64(7)),
				OrderAmount:  builder.Ptr(dec(100000)),
			},
			wantReason: voucher.ReasonRestaurantScopeMismatch,
		},
		{
			name: "order below minimum",
			mutate: func(b *builder.VoucherBuilder) {
				b.MinOrderAmount = builder.Ptr(dec(150000))
			},
			req:        applyRequest(customerID, 100000),
			wantReason: voucher.ReasonMinOrderNotMet,
		},
		{
			name:       "missing order amount yields no discount",
			req:        commands.ApplyRequest{Code: "WELCOME10", CustomerID: customerID},
			wantReason: voucher.ReasonNoDiscountApplicable,
		},
		{
			name:       "zero order amount yields no discount",
			req:        applyRequest(customerID, 0),
			wantReason: voucher.ReasonNoDiscountApplicable,
		},
		{
			name:       "assigned-only voucher without a grant",
			mutate:     func(b *builder.VoucherBuilder) { b.AssignedOnly = true },
			req:        applyRequest(customerID, 100000),
			wantReason: voucher.ReasonNotAssigned,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uow := newFakeUoW(voucherParams(tc.mutate))
			cmds := commands.NewVoucherCommands(uow, clock.NewMockClock(testNow))

			result := cmds.Redeem(context.Background(), tc.req)

			assert.False(t, result.Applied)
			assert.Equal(t, tc.wantReason, result.Reason)
			assert.True(t, result.Discount.IsZero())
			assert.Nil(t, result.RedemptionID)
			assert.Equal(t, 0, uow.redemptionCount(1), "rejection must not persist a redemption")
		})
	}
}

func TestRedeem_GlobalLimit(t *testing.T) {
	uow := newFakeUoW(voucherParams(func(b *builder.VoucherBuilder) {
		b.GlobalUsageLimit = builder.Ptr(int32(1))
	}))
	cmds := commands.NewVoucherCommands(uow, clock.NewMockClock(testNow))

	first := cmds.Redeem(context.Background(), applyRequest(uuid.New(), 100000))
	require.True(t, first.Applied)

	second := cmds.Redeem(context.Background(), applyRequest(uuid.New(), 100000))
	assert.False(t, second.Applied)
	assert.Equal(t, voucher.ReasonGlobalLimitReached, second.Reason)
	assert.Equal(t, 1, uow.redemptionCount(1))
}

func TestRedeem_PerCustomerLimit_PublicVoucher(t *testing.T) {
	uow := newFakeUoW(voucherParams(func(b *builder.VoucherBuilder) {
		b.PerCustomerLimit = builder.Ptr(int32(1))
	}))
	cmds := commands.NewVoucherCommands(uow, clock.NewMockClock(testNow))

	customerID := uuid.New()
	first := cmds.Redeem(context.Background(), applyRequest(customerID, 100000))
	require.True(t, first.Applied)

	second := cmds.Redeem(context.Background(), applyRequest(customerID, 100000))
	assert.False(t, second.Applied)
	assert.Equal(t, voucher.ReasonPerCustomerLimitReached, second.Reason)

	// Another customer is unaffected
	other := cmds.Redeem(context.Background(), applyRequest(uuid.New(), 100000))
	assert.True(t, other.Applied)
}

func TestRedeem_AssignedOnly(t *testing.T) {
	params := voucherParams(func(b *builder.VoucherBuilder) {
		b.AssignedOnly = true
		b.PerCustomerLimit = builder.Ptr(int32(2))
	})
	customerID := uuid.New()

	newCmds := func() (*fakeUoW, commands.VoucherCommands) {
		uow := newFakeUoW(params)
		cmds := commands.NewVoucherCommands(uow, clock.NewMockClock(testNow))
		_, err := cmds.Assign(context.Background(), params.ID, customerID)
		require.NoError(t, err)
		return uow, cmds
	}

	t.Run("burns the assignment counter", func(t *testing.T) {
		uow, cmds := newCmds()

		result := cmds.Redeem(context.Background(), applyRequest(customerID, 100000))
		require.True(t, result.Applied)

		row, ok := uow.assignmentRow(customerID, params.ID)
		require.True(t, ok)
		assert.Equal(t, int32(1), row.timesUsed)
		require.NotNil(t, row.lastUsedAt)
		assert.Equal(t, testNow, *row.lastUsedAt)
	})

	t.Run("rejects once the per-customer ceiling is hit", func(t *testing.T) {
		_, cmds := newCmds()

		for i := 0; i < 2; i++ {
			result := cmds.Redeem(context.Background(), applyRequest(customerID, 100000))
			require.True(t, result.Applied)
		}

		result := cmds.Redeem(context.Background(), applyRequest(customerID, 100000))
		assert.False(t, result.Applied)
		assert.Equal(t, voucher.ReasonPerCustomerLimitReached, result.Reason)
	})

	t.Run("rejects when the counter is ahead of the redemption records", func(t *testing.T) {
		uow := newFakeUoW(params)
		cmds := commands.NewVoucherCommands(uow, clock.NewMockClock(testNow))

		// Seed a grant whose counter already sits at the limit without any
		// matching redemption rows, as after a data import.
		err := uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			if _, err := tx.Assignments().Insert(ctx, customerID, params.ID, testNow); err != nil {
				return err
			}
			for i := 0; i < 2; i++ {
				if err := tx.Assignments().IncrementUsage(ctx, customerID, params.ID, testNow); err != nil {
					return err
				}
			}
			return nil
		})
		require.NoError(t, err)

		result := cmds.Redeem(context.Background(), applyRequest(customerID, 100000))
		assert.False(t, result.Applied)
		assert.Equal(t, voucher.ReasonLimitReached, result.Reason)
	})

	t.Run("other customers stay unassigned", func(t *testing.T) {
		_, cmds := newCmds()

		result := cmds.Redeem(context.Background(), applyRequest(uuid.New(), 100000))
		assert.False(t, result.Applied)
		assert.Equal(t, voucher.ReasonNotAssigned, result.Reason)
	})
}

func TestRedeem_ReassignKeepsPerCustomerCeiling(t *testing.T) {
	params := voucherParams(func(b *builder.VoucherBuilder) {
		b.AssignedOnly = true
		b.PerCustomerLimit = builder.Ptr(int32(1))
	})
	uow := newFakeUoW(params)
	cmds := commands.NewVoucherCommands(uow, clock.NewMockClock(testNow))
	customerID := uuid.New()

	_, err := cmds.Assign(context.Background(), params.ID, customerID)
	require.NoError(t, err)

	first := cmds.Redeem(context.Background(), applyRequest(customerID, 100000))
	require.True(t, first.Applied)

	// Revoking and re-granting resets the assignment counter, but the
	// redemption records keep counting toward the ceiling.
	require.NoError(t, cmds.Revoke(context.Background(), params.ID, customerID))
	_, err = cmds.Assign(context.Background(), params.ID, customerID)
	require.NoError(t, err)

	row, ok := uow.assignmentRow(customerID, params.ID)
	require.True(t, ok)
	require.Equal(t, int32(0), row.timesUsed)

	second := cmds.Redeem(context.Background(), applyRequest(customerID, 100000))
	assert.False(t, second.Applied)
	assert.Equal(t, voucher.ReasonPerCustomerLimitReached, second.Reason)
	assert.Equal(t, 1, uow.redemptionCount(params.ID))
}

func TestRedeem_StorageFailure(t *testing.T) {
	inner := newFakeUoW(voucherParams(nil))
	uow := &brokenUoW{inner: inner, err: errors.New("connection reset")}
	cmds := commands.NewVoucherCommands(uow, clock.NewMockClock(testNow))

	result := cmds.Redeem(context.Background(), applyRequest(uuid.New(), 100000))

	assert.False(t, result.Applied)
	assert.Equal(t, voucher.ReasonApplicationError, result.Reason)
	assert.Equal(t, 0, inner.redemptionCount(1), "failed transaction must roll back")
}

func TestRedeem_ConcurrentAttemptsHonorGlobalLimit(t *testing.T) {
	const attempts = 50
	const limit = 5

	uow := newFakeUoW(voucherParams(func(b *builder.VoucherBuilder) {
		b.GlobalUsageLimit = builder.Ptr(int32(limit))
	}))
	cmds := commands.NewVoucherCommands(uow, clock.NewMockClock(testNow))

	results := make([]commands.ApplyResult, attempts)
	var g errgroup.Group
	for i := 0; i < attempts; i++ {
		g.Go(func() error {
			results[i] = cmds.Redeem(context.Background(), applyRequest(uuid.New(), 100000))
			return nil
		})
	}
	require.NoError(t, g.Wait())

	applied := 0
	for _, r := range results {
		if r.Applied {
			applied++
		} else {
			assert.Equal(t, voucher.ReasonGlobalLimitReached, r.Reason)
		}
	}
	assert.Equal(t, limit, applied)
	assert.Equal(t, limit, uow.redemptionCount(1))
}
