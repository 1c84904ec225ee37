// Package scenario opens the accounts declared in a config and applies its
// operations in order, handling rejected withdrawals the way a teller would.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gleicon/bankjournal/internal/bank"
	"github.com/gleicon/bankjournal/internal/config"
	"github.com/gleicon/bankjournal/internal/journal"
)

// Result summarizes a completed run
type Result struct {
	Applied  int
	Rejected int
	Balances map[string]decimal.Decimal
}

// Runner applies a scenario against a journal
type Runner struct {
	journal *journal.Journal
	out     io.Writer
	log     logrus.FieldLogger
}

// NewRunner creates a runner. Rejection warnings are printed to out.
func NewRunner(j *journal.Journal, out io.Writer, log logrus.FieldLogger) *Runner {
	if j == nil {
		j = journal.Shared()
	}
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{
		journal: j,
		out:     out,
		log:     log,
	}
}

// Run opens every account and applies every operation. Insufficient funds are
// reported and skipped; validation errors abort the run.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	accounts := make(map[string]*bank.Account, len(cfg.Accounts))
	for _, ac := range cfg.Accounts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		acc, err := bank.NewAccount(ac.Number, ac.Initial(),
			bank.WithJournal(r.journal), bank.WithLogger(r.log))
		if err != nil {
			return nil, fmt.Errorf("failed to open account %s: %w", ac.Number, err)
		}
		accounts[ac.Number] = acc
	}

	result := &Result{}
	for i, op := range cfg.Operations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		acc, exists := accounts[op.Account]
		if !exists {
			return nil, fmt.Errorf("operation %d: unknown account %q", i+1, op.Account)
		}

		var err error
		switch op.Type {
		case config.OpDeposit:
			err = acc.Deposit(op.Value())
		case config.OpWithdraw:
			err = acc.Withdraw(op.Value())
		default:
			return nil, fmt.Errorf("operation %d: unknown type %q", i+1, op.Type)
		}

		var insufficient *bank.InsufficientFundsError
		switch {
		case err == nil:
			result.Applied++
		case errors.As(err, &insufficient):
			result.Rejected++
			fmt.Fprintf(r.out, "WARNING: %v\n", insufficient)
			r.log.WithFields(logrus.Fields{
				"account":   op.Account,
				"operation": i + 1,
			}).Info("Withdrawal rejected for insufficient funds")
		default:
			return nil, fmt.Errorf("operation %d on %s: %w", i+1, op.Account, err)
		}
	}

	result.Balances = make(map[string]decimal.Decimal, len(accounts))
	for number, acc := range accounts {
		result.Balances[number] = acc.Balance()
	}
	return result, nil
}

// PrintHistory writes the banner followed by the journal in the given format
func PrintHistory(w io.Writer, j *journal.Journal, banner string, format journal.Format) error {
	if banner != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", banner); err != nil {
			return err
		}
	}
	return journal.Export(w, j, format)
}
