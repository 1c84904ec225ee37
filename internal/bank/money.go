package bank

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencySuffix is appended to every amount shown in the journal
const CurrencySuffix = "₴"

// FormatAmount renders an amount with two decimal digits and the currency suffix.
// This is display only; stored balances keep full precision.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2) + CurrencySuffix
}

// ParseAmount parses a decimal amount such as "1000" or "12.50"
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// NewAccountNumber returns a fresh opaque account identifier
func NewAccountNumber() string {
	return "ACC-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
