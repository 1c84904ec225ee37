// Package bank contains the Account entity. Every state transition of an
// account is written to a journal, including rejected withdrawals.
package bank

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gleicon/bankjournal/internal/journal"
)

// Account holds a non-negative balance under an opaque identifier.
// The journal is borrowed, never owned.
type Account struct {
	mu      sync.Mutex
	number  string
	balance decimal.Decimal
	journal *journal.Journal
	log     logrus.FieldLogger
}

// Option configures an Account at construction
type Option func(*Account)

// WithJournal binds the account to j instead of the shared journal
func WithJournal(j *journal.Journal) Option {
	return func(a *Account) {
		a.journal = j
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Account) {
		a.log = log
	}
}

// NewAccount opens an account with the given initial balance.
// A negative balance is rejected before anything is journaled.
func NewAccount(number string, initial decimal.Decimal, opts ...Option) (*Account, error) {
	if initial.IsNegative() {
		return nil, &ValidationError{Field: "initial balance", Value: initial, Reason: "must not be negative"}
	}

	a := &Account{
		number:  number,
		balance: initial,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.journal == nil {
		a.journal = journal.Shared()
	}

	a.journal.Write(fmt.Sprintf("Account %s opened with balance %s", a.number, FormatAmount(a.balance)))
	a.log.WithFields(logrus.Fields{
		"account": a.number,
		"balance": a.balance.String(),
	}).Debug("Account opened")

	return a, nil
}

// Open opens an account with a zero balance
func Open(number string, opts ...Option) (*Account, error) {
	return NewAccount(number, decimal.Zero, opts...)
}

// Number returns the account identifier
func (a *Account) Number() string {
	return a.number
}

// Balance returns the current balance
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Deposit adds a positive amount to the balance
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.balance = a.balance.Add(amount)
	a.journal.Write(fmt.Sprintf("Account %s: +%s → new balance %s",
		a.number, FormatAmount(amount), FormatAmount(a.balance)))
	a.log.WithFields(logrus.Fields{
		"account": a.number,
		"amount":  amount.String(),
		"balance": a.balance.String(),
	}).Debug("Deposit applied")

	return nil
}

// Withdraw removes a positive amount from the balance. A withdrawal larger than
// the balance is journaled as FAILED and returns *InsufficientFundsError.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if amount.GreaterThan(a.balance) {
		a.journal.Write(fmt.Sprintf("Account %s: FAILED withdrawal %s (balance %s)",
			a.number, FormatAmount(amount), FormatAmount(a.balance)))
		a.log.WithFields(logrus.Fields{
			"account": a.number,
			"amount":  amount.String(),
			"balance": a.balance.String(),
		}).Debug("Withdrawal rejected")
		return &InsufficientFundsError{Balance: a.balance, Amount: amount}
	}

	a.balance = a.balance.Sub(amount)
	a.journal.Write(fmt.Sprintf("Account %s: -%s → new balance %s",
		a.number, FormatAmount(amount), FormatAmount(a.balance)))
	a.log.WithFields(logrus.Fields{
		"account": a.number,
		"amount":  amount.String(),
		"balance": a.balance.String(),
	}).Debug("Withdrawal applied")

	return nil
}

// validateAmount rejects non-positive transaction amounts
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &ValidationError{Field: "amount", Value: amount, Reason: "must be positive"}
	}
	return nil
}
