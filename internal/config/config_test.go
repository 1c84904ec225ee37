package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestConfig_LoadFromFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
history:
  format: yaml
accounts:
  - number: UA1
    initial_balance: "10.50"
  - number: UA2
operations:
  - account: UA1
    type: Deposit
    amount: "5"
  - account: UA2
    type: withdraw
    amount: "1"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "yaml", cfg.History.Format)
	assert.Equal(t, DefaultBanner, cfg.History.Banner)
	require.Len(t, cfg.Accounts, 2)
	assert.True(t, cfg.Accounts[0].Initial().Equal(decimal.RequireFromString("10.5")))
	assert.True(t, cfg.Accounts[1].Initial().IsZero())
	require.Len(t, cfg.Operations, 2)
	assert.Equal(t, OpDeposit, cfg.Operations[0].Type)
	assert.True(t, cfg.Operations[0].Value().Equal(decimal.NewFromInt(5)))
}

func TestConfig_MissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Accounts, 1)
	assert.Equal(t, "UA123456789", cfg.Accounts[0].Number)
	assert.True(t, cfg.Accounts[0].Initial().Equal(decimal.NewFromInt(1000)))
	require.Len(t, cfg.Operations, 3)
	assert.True(t, cfg.Operations[1].Value().Equal(decimal.NewFromInt(1500)))
}

func TestConfig_GeneratesMissingAccountNumber(t *testing.T) {
	cfg := &Config{Accounts: []AccountConfig{{InitialBalance: "1"}}}
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.Accounts[0].Number)
}

func TestConfig_ValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no accounts", Config{}},
		{"bad log level", Config{Log: LogConfig{Level: "loud"}, Accounts: []AccountConfig{{Number: "A"}}}},
		{"bad log format", Config{Log: LogConfig{Format: "xml"}, Accounts: []AccountConfig{{Number: "A"}}}},
		{"bad history format", Config{History: HistoryConfig{Format: "csv"}, Accounts: []AccountConfig{{Number: "A"}}}},
		{"duplicate account", Config{Accounts: []AccountConfig{{Number: "A"}, {Number: "A"}}}},
		{"bad balance", Config{Accounts: []AccountConfig{{Number: "A", InitialBalance: "lots"}}}},
		{"unknown account", Config{
			Accounts:   []AccountConfig{{Number: "A"}},
			Operations: []OperationConfig{{Account: "B", Type: OpDeposit, Amount: "1"}},
		}},
		{"unknown type", Config{
			Accounts:   []AccountConfig{{Number: "A"}},
			Operations: []OperationConfig{{Account: "A", Type: "transfer", Amount: "1"}},
		}},
		{"bad amount", Config{
			Accounts:   []AccountConfig{{Number: "A"}},
			Operations: []OperationConfig{{Account: "A", Type: OpDeposit, Amount: ""}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_NegativeAmountsPassValidation(t *testing.T) {
	cfg := &Config{
		Accounts:   []AccountConfig{{Number: "A", InitialBalance: "-1"}},
		Operations: []OperationConfig{{Account: "A", Type: OpWithdraw, Amount: "-5"}},
	}
	assert.NoError(t, cfg.Validate())
}

func TestConfig_WriteAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, CreateSample(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# bankjournal scenario")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
