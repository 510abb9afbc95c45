package voucher

import (
	"regexp"
	"strings"

	"voucher-engine/internal/pkg/errs"
)

var (
	ErrInvalidCode          = errs.New("invalid voucher code format")
	ErrInvalidDiscountType  = errs.New("unknown discount type")
	ErrInvalidDiscountValue = errs.New("discount value cannot be negative")
	ErrInvalidPercentValue  = errs.New("percentage discount must be between 0 and 100")
	ErrInvalidStatus        = errs.New("unknown voucher status")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,50}$`)

// Code is the customer-facing identifier. Lookups are case-insensitive, so
// the canonical form is upper-cased.
type Code string

func NewCode(code string) (Code, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

// DiscountType discriminates how discountValue is interpreted.
type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

func ParseDiscountType(s string) (DiscountType, error) {
	switch DiscountType(s) {
	case DiscountPercent, DiscountFixed:
		return DiscountType(s), nil
	default:
		return "", ErrInvalidDiscountType
	}
}

// Status is the lifecycle state. EXPIRED is terminal.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusExpired   Status = "EXPIRED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusActive, StatusInactive, StatusExpired:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

var transitions = map[Status][]Status{
	StatusScheduled: {StatusActive},
	StatusActive:    {StatusInactive, StatusExpired},
	StatusInactive:  {StatusActive},
	StatusExpired:   {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
