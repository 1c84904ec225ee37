package bank

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is
	ErrValidation = errors.New("invalid amount")

	// ErrInsufficientFunds matches every *InsufficientFundsError via errors.Is
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ValidationError reports a rejected caller-supplied amount.
// It is always returned before any state change or journal entry.
type ValidationError struct {
	Field  string
	Value  decimal.Decimal
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Field, e.Value.String(), e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InsufficientFundsError reports a withdrawal larger than the current balance.
// The attempt has already been recorded in the journal when it is returned.
type InsufficientFundsError struct {
	Balance decimal.Decimal
	Amount  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("balance is %s; cannot withdraw %s", FormatAmount(e.Balance), FormatAmount(e.Amount))
}

// Is lets errors.Is(err, ErrInsufficientFunds) match
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
