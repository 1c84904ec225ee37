package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gleicon/bankjournal/internal/config"
	"github.com/gleicon/bankjournal/internal/journal"
	"github.com/gleicon/bankjournal/internal/scenario"
	"github.com/gleicon/bankjournal/pkg/logger"
)

var (
	configFile string
	log        *logrus.Logger
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if strings.Contains(err.Error(), "config") {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Try: bankjournal init\n")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bankjournal",
	Short: "Bank accounts that journal every state transition",
	Long: `bankjournal opens accounts, applies deposits and withdrawals, and records
every transition in a single process-wide journal.

Basic workflow:
  bankjournal demo      # Run the built-in scenario
  bankjournal init      # Write a sample scenario file
  bankjournal run       # Run a scenario file
  bankjournal validate  # Check a scenario file`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in scenario and print the history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenario(cmd.Context(), config.Default())
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario file and print the history",
	Long: `Run a scenario:
- run                         # Uses ./bankjournal.yaml, or the demo if absent
- run --config scenario.yaml  # Uses the given file`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runScenario(cmd.Context(), cfg)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a scenario file",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a sample scenario file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scenario file path")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging")
	rootCmd.PersistentFlags().String("log-format", "", "diagnostics format (text|json)")
	rootCmd.PersistentFlags().String("history-format", "", "history dump format (text|json|yaml)")

	initCmd.Flags().Bool("force", false, "overwrite existing file")

	viper.BindPFlags(rootCmd.PersistentFlags())
	viper.BindPFlags(initCmd.Flags())

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
}

func initConfig() {
	viper.SetEnvPrefix("BANKJOURNAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	log = logger.New(viper.GetBool("debug"), viper.GetString("log-format"))
}

// loadConfig resolves the scenario path and loads it
func loadConfig() (*config.Config, error) {
	path := configFile
	if path == "" {
		path = viper.GetString("config")
	}
	if path == "" {
		path = "bankjournal.yaml"
	}
	log.WithField("path", path).Debug("Loading scenario")
	return config.Load(path)
}

func runScenario(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Flags override the scenario's own logging settings
	if !viper.IsSet("log-format") && cfg.Log.Format != "" {
		log = logger.New(viper.GetBool("debug"), cfg.Log.Format)
	}
	if !viper.GetBool("debug") {
		if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
			log.SetLevel(level)
		}
	}

	historyFormat := cfg.History.Format
	if f := viper.GetString("history-format"); f != "" {
		historyFormat = f
	}
	format, err := journal.ParseFormat(historyFormat)
	if err != nil {
		return err
	}

	shared := journal.Shared()
	runner := scenario.NewRunner(shared, os.Stdout, log)

	result, err := runner.Run(ctx, cfg)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"applied":  result.Applied,
		"rejected": result.Rejected,
	}).Debug("Scenario complete")

	return scenario.PrintHistory(os.Stdout, shared, cfg.History.Banner, format)
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Println("Validating scenario...")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		return err
	}

	fmt.Printf("OK: %d accounts, %d operations\n", len(cfg.Accounts), len(cfg.Operations))
	fmt.Println("Scenario is valid!")
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "bankjournal.yaml"
	if len(args) > 0 {
		target = args[0]
	}

	if _, err := os.Stat(target); err == nil && !viper.GetBool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", target)
	}

	if err := config.CreateSample(target); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", target)
	return nil
}
