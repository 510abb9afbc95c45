//go:build unit

package voucher_test

import (
	"testing"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.VoucherBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewVoucherBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			v, err := b.BuildDomain()
			if tc.errIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, v)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, v)
		})
	}
}

func TestVoucher(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		v, err := builder.NewVoucherBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, v)

		assert.Equal(t, int64(1), v.ID())
		assert.Equal(t, "WELCOME10", v.Code().String())
		assert.Equal(t, voucher.DiscountPercent, v.DiscountType())
		assert.Equal(t, voucher.StatusActive, v.Status())
		assert.False(t, v.AssignedOnly())
	})

	t.Run("code normalization", func(t *testing.T) {
		v, err := builder.NewVoucherBuilder().
			With(func(b *builder.VoucherBuilder) { b.Code = "  summer-24  " }).
			BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "SUMMER-24", v.Code().String())
	})

	t.Run("code validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "too short",
				mutate: func(b *builder.VoucherBuilder) { b.Code = "AB" },
				errIs:  voucher.ErrInvalidCode,
			},
			{
				name:   "empty",
				mutate: func(b *builder.VoucherBuilder) { b.Code = "" },
				errIs:  voucher.ErrInvalidCode,
			},
			{
				name:   "illegal characters",
				mutate: func(b *builder.VoucherBuilder) { b.Code = "CODE WITH SPACES" },
				errIs:  voucher.ErrInvalidCode,
			},
			{
				name:   "underscore and dash allowed",
				mutate: func(b *builder.VoucherBuilder) { b.Code = "BLACK_FRIDAY-24" },
			},
		})
	})

	t.Run("discount validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "unknown type",
				mutate: func(b *builder.VoucherBuilder) { b.DiscountType = "BOGOF" },
				errIs:  voucher.ErrInvalidDiscountType,
			},
			{
				name:   "negative value",
				mutate: func(b *builder.VoucherBuilder) { b.DiscountValue = decimal.NewFromInt(-5) },
				errIs:  voucher.ErrInvalidDiscountValue,
			},
			{
				name:   "percent above 100",
				mutate: func(b *builder.VoucherBuilder) { b.DiscountValue = decimal.NewFromInt(120) },
				errIs:  voucher.ErrInvalidPercentValue,
			},
			{
				name: "fixed value above 100 is fine",
				mutate: func(b *builder.VoucherBuilder) {
					b.DiscountType = voucher.DiscountFixed
					b.DiscountValue = decimal.NewFromInt(50000)
				},
			},
		})
	})

	t.Run("window and limit validation", func(t *testing.T) {
		start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		runCases(t, []testCase{
			{
				name: "start after end",
				mutate: func(b *builder.VoucherBuilder) {
					b.StartDate = &start
					b.EndDate = &end
				},
				errIs: voucher.ErrInvalidDateWindow,
			},
			{
				name: "same day window",
				mutate: func(b *builder.VoucherBuilder) {
					b.StartDate = &start
					b.EndDate = &start
				},
			},
			{
				name:   "zero global limit",
				mutate: func(b *builder.VoucherBuilder) { b.GlobalUsageLimit = builder.Ptr(int32(0)) },
				errIs:  voucher.ErrInvalidUsageLimit,
			},
			{
				name:   "zero per-customer limit",
				mutate: func(b *builder.VoucherBuilder) { b.PerCustomerLimit = builder.Ptr(int32(0)) },
				errIs:  voucher.ErrInvalidUsageLimit,
			},
		})
	})
}

func TestVoucher_Window(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	v, err := builder.NewVoucherBuilder().
		With(func(b *builder.VoucherBuilder) {
			b.StartDate = &start
			b.EndDate = &end
		}).
		BuildDomain()
	require.NoError(t, err)

	t.Run("bounds are inclusive calendar days", func(t *testing.T) {
		// Late evening on the start day is still within the window
		assert.True(t, v.WithinWindow(time.Date(2026, 6, 1, 23, 59, 0, 0, time.UTC)))
		assert.True(t, v.WithinWindow(time.Date(2026, 6, 30, 0, 0, 1, 0, time.UTC)))
		assert.False(t, v.StartsAfter(start))
		assert.False(t, v.EndedBefore(end))
	})

	t.Run("outside the window", func(t *testing.T) {
		assert.True(t, v.StartsAfter(time.Date(2026, 5, 31, 23, 59, 0, 0, time.UTC)))
		assert.True(t, v.EndedBefore(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("open-ended voucher never expires", func(t *testing.T) {
		open, err := builder.NewVoucherBuilder().BuildDomain()
		require.NoError(t, err)
		assert.True(t, open.WithinWindow(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, open.WithinWindow(time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)))
	})
}

func TestVoucher_AppliesTo(t *testing.T) {
	scoped, err := builder.NewVoucherBuilder().
		With(func(b *builder.VoucherBuilder) { b.RestaurantID = builder.Ptr(int64(42)) }).
		BuildDomain()
	require.NoError(t, err)

	assert.True(t, scoped.AppliesTo(builder.Ptr(int64(42))))
	assert.False(t, scoped.AppliesTo(builder.Ptr(int64(43))))
	assert.False(t, scoped.AppliesTo(nil))

	unscoped, err := builder.NewVoucherBuilder().BuildDomain()
	require.NoError(t, err)
	assert.True(t, unscoped.AppliesTo(nil))
	assert.True(t, unscoped.AppliesTo(builder.Ptr(int64(7))))
}

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, voucher.StatusScheduled.CanTransitionTo(voucher.StatusActive))
	assert.True(t, voucher.StatusActive.CanTransitionTo(voucher.StatusInactive))
	assert.True(t, voucher.StatusActive.CanTransitionTo(voucher.StatusExpired))
	assert.True(t, voucher.StatusInactive.CanTransitionTo(voucher.StatusActive))

	assert.False(t, voucher.StatusScheduled.CanTransitionTo(voucher.StatusInactive))
	assert.False(t, voucher.StatusExpired.CanTransitionTo(voucher.StatusActive))
	assert.False(t, voucher.StatusExpired.CanTransitionTo(voucher.StatusInactive))
}
