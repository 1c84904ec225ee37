package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/gleicon/bankjournal/internal/bank"
	"github.com/gleicon/bankjournal/internal/journal"
)

// Operation types accepted in a scenario
const (
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
)

// DefaultBanner is printed above the final history dump
const DefaultBanner = "─── HISTORY ───"

// Config represents a scenario: accounts to open and operations to apply
type Config struct {
	Log        LogConfig         `yaml:"log"`
	History    HistoryConfig     `yaml:"history"`
	Accounts   []AccountConfig   `yaml:"accounts"`
	Operations []OperationConfig `yaml:"operations"`
}

// LogConfig controls diagnostics logging
type LogConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"text"`
}

// HistoryConfig controls the history dump printed after a run
type HistoryConfig struct {
	Banner string `yaml:"banner"`
	Format string `yaml:"format" default:"text"`
}

// AccountConfig declares an account opened before any operation runs
type AccountConfig struct {
	Number         string `yaml:"number"`
	InitialBalance string `yaml:"initial_balance,omitempty"`

	initial decimal.Decimal
}

// OperationConfig is one deposit or withdrawal
type OperationConfig struct {
	Account string `yaml:"account"`
	Type    string `yaml:"type"`
	Amount  string `yaml:"amount"`

	amount decimal.Decimal
}

// Initial returns the parsed initial balance. Valid after Validate.
func (a AccountConfig) Initial() decimal.Decimal {
	return a.initial
}

// Value returns the parsed amount. Valid after Validate.
func (o OperationConfig) Value() decimal.Decimal {
	return o.amount
}

// Default returns the built-in demo scenario
func Default() *Config {
	cfg := &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		History: HistoryConfig{
			Banner: DefaultBanner,
			Format: string(journal.FormatText),
		},
		Accounts: []AccountConfig{
			{Number: "UA123456789", InitialBalance: "1000"},
		},
		Operations: []OperationConfig{
			{Account: "UA123456789", Type: OpDeposit, Amount: "250"},
			{Account: "UA123456789", Type: OpWithdraw, Amount: "1500"},
			{Account: "UA123456789", Type: OpWithdraw, Amount: "200"},
		},
	}
	// The built-in scenario is known to be valid
	_ = cfg.Validate()
	return cfg
}

// Load loads a scenario from a file. A missing file yields the built-in demo.
func Load(configFile string) (*Config, error) {
	config := &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		History: HistoryConfig{
			Banner: DefaultBanner,
			Format: string(journal.FormatText),
		},
	}

	if configFile == "" {
		return Default(), nil
	}
	if _, err := os.Stat(configFile); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate performs configuration validation and fills in derived values.
// Amount signs are left to the accounts themselves.
func (c *Config) Validate() error {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case "":
		c.Log.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.Log.Format)
	}

	format, err := journal.ParseFormat(c.History.Format)
	if err != nil {
		return err
	}
	c.History.Format = string(format)

	if len(c.Accounts) == 0 {
		return fmt.Errorf("at least one account is required")
	}

	numbers := make(map[string]int)
	for i, acc := range c.Accounts {
		number := strings.TrimSpace(acc.Number)
		if number == "" {
			// Auto-assign an identifier when none is given
			number = bank.NewAccountNumber()
		}
		c.Accounts[i].Number = number

		if prev, exists := numbers[number]; exists {
			return fmt.Errorf("account %s is declared twice (entries %d and %d)", number, prev+1, i+1)
		}
		numbers[number] = i

		initial := decimal.Zero
		if strings.TrimSpace(acc.InitialBalance) != "" {
			initial, err = bank.ParseAmount(acc.InitialBalance)
			if err != nil {
				return fmt.Errorf("account %s: invalid initial balance %q", number, acc.InitialBalance)
			}
		}
		c.Accounts[i].initial = initial
	}

	for i, op := range c.Operations {
		if _, exists := numbers[op.Account]; !exists {
			return fmt.Errorf("operation %d: unknown account %q", i+1, op.Account)
		}

		opType := strings.ToLower(strings.TrimSpace(op.Type))
		if opType != OpDeposit && opType != OpWithdraw {
			return fmt.Errorf("operation %d: unknown type %q (want deposit or withdraw)", i+1, op.Type)
		}
		c.Operations[i].Type = opType

		amount, err := bank.ParseAmount(op.Amount)
		if err != nil {
			return fmt.Errorf("operation %d: invalid amount %q", i+1, op.Amount)
		}
		c.Operations[i].amount = amount
	}

	return nil
}

// WriteConfig writes a configuration to a file
func WriteConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := `# bankjournal scenario
# Accounts are opened in order, then operations are applied in order.

`

	fullContent := header + string(data)
	if err := os.WriteFile(filename, []byte(fullContent), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// CreateSample writes the built-in demo scenario to filename
func CreateSample(filename string) error {
	return WriteConfig(Default(), filename)
}
