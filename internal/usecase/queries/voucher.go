package queries

import (
	"context"
	"strings"
	"time"

	"voucher-engine/internal/domain/voucher"
	"voucher-engine/internal/infra"
	"voucher-engine/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)
type ValidationView struct {
	Valid    bool               `json:"valid"`
	Reason   voucher.ReasonCode `json:"reason,omitempty"`
	Discount decimal.Decimal    `json:"discount"`
	Voucher  *VoucherRef        `json:"voucher,omitempty"`
}

type VoucherRef struct {
	ID          int64   `json:"id"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
}

type CustomerVoucherView struct {
	VoucherID     int64           `json:"voucher_id"`
	Code          string          `json:"code"`
	Description   *string         `json:"description,omitempty"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	Assigned      bool            `json:"assigned"`
	TimesUsed     int32           `json:"times_used"`
	RemainingUses *int32          `json:"remaining_uses,omitempty"`
	AssignedAt    *time.Time      `json:"assigned_at,omitempty"`
	LastUsedAt    *time.Time      `json:"last_used_at,omitempty"`
}

// ValidationRequest is a dry-run check; nothing is locked or consumed and
// usage ceilings are not inspected.
type ValidationRequest struct {
	Code         string
	RestaurantID *int64
	OrderAmount  *decimal.Decimal
	AsOf         *time.Time
}

type AssignedVoucherRow struct {
	Voucher    *voucher.Voucher
	TimesUsed  int32
	AssignedAt time.Time
	LastUsedAt *time.Time
}

type VoucherQueries interface {
	Validate(ctx context.Context, req ValidationRequest) (*ValidationView, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*CustomerVoucherView, error)
}

type VoucherViewRepo interface {
	FindByCode(ctx context.Context, code string) (*voucher.Voucher, error)
	ListAssignedActive(ctx context.Context, customerID uuid.UUID) ([]*AssignedVoucherRow, error)
	ListGlobalActive(ctx context.Context) ([]*voucher.Voucher, error)
}

type voucherQueriesImpl struct {
	repo  VoucherViewRepo
	clock clock.Clock
}

func NewVoucherQueries(repo VoucherViewRepo, clk clock.Clock) VoucherQueries {
	return &voucherQueriesImpl{repo: repo, clock: clk}
}

func (q *voucherQueriesImpl) Validate(ctx context.Context, req ValidationRequest) (*ValidationView, error) {
	if strings.TrimSpace(req.Code) == "" {
		return invalidView(voucher.ReasonEmptyCode), nil
	}

	v, err := q.repo.FindByCode(ctx, req.Code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return invalidView(voucher.ReasonNotFound), nil
		}
		return nil, err
	}

	asOf := q.clock.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	verdict := voucher.Evaluate(v, req.RestaurantID, req.OrderAmount, asOf)
	view := &ValidationView{
		Valid:    verdict.Valid,
		Reason:   verdict.Reason,
		Discount: verdict.Discount,
		Voucher: &VoucherRef{
			ID:          v.ID(),
			Code:        string(v.Code()),
			Description: v.Description(),
		},
	}
	return view, nil
}

// ListForCustomer merges the customer's explicit grants with the public
// active vouchers. A voucher that is both assigned and public appears once,
// with the assignment's usage figures.
func (q *voucherQueriesImpl) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*CustomerVoucherView, error) {
	assigned, err := q.repo.ListAssignedActive(ctx, customerID)
	if err != nil {
		return nil, err
	}
	global, err := q.repo.ListGlobalActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*CustomerVoucherView, 0, len(assigned)+len(global))
	seen := make(map[int64]struct{}, len(assigned))

	for _, row := range assigned {
		seen[row.Voucher.ID()] = struct{}{}
		views = append(views, assignedView(row))
	}
	for _, v := range global {
		if _, ok := seen[v.ID()]; ok {
			continue
		}
		views = append(views, globalView(v))
	}
	return views, nil
}

func assignedView(row *AssignedVoucherRow) *CustomerVoucherView {
	v := row.Voucher
	view := &CustomerVoucherView{
		VoucherID:     v.ID(),
		Code:          string(v.Code()),
		Description:   v.Description(),
		DiscountType:  string(v.DiscountType()),
		DiscountValue: v.DiscountValue(),
		Assigned:      true,
		TimesUsed:     row.TimesUsed,
		AssignedAt:    &row.AssignedAt,
		LastUsedAt:    row.LastUsedAt,
	}
	if limit := v.PerCustomerLimit(); limit != nil {
		remaining := *limit - row.TimesUsed
		if remaining < 0 {
			remaining = 0
		}
		view.RemainingUses = &remaining
	}
	return view
}

func globalView(v *voucher.Voucher) *CustomerVoucherView {
	view := &CustomerVoucherView{
		VoucherID:     v.ID(),
		Code:          string(v.Code()),
		Description:   v.Description(),
		DiscountType:  string(v.DiscountType()),
		DiscountValue: v.DiscountValue(),
	}
	if limit := v.PerCustomerLimit(); limit != nil {
		remaining := *limit
		view.RemainingUses = &remaining
	}
	return view
}

func invalidView(reason voucher.ReasonCode) *ValidationView {
	return &ValidationView{Valid: false, Reason: reason, Discount: decimal.Zero}
}
