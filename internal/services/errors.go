package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error variables shared across the ledger services.
var (
	// ErrInvalidArgument covers nil required references, non-positive amounts
	// and amounts above an operation limit. Never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientBalance is the sentinel wrapped by
	// InsufficientBalanceError, so callers can match with errors.Is.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// InsufficientBalanceError reports a rejected debit together with the amounts
// the caller needs for display.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance. Available: %s DH, Requested: %s DH",
		e.Available.StringFixed(2), e.Requested.StringFixed(2))
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// invalidArgumentf wraps ErrInvalidArgument with a reason callers can show.
func invalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
