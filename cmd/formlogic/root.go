package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/formlogic/internal/cli"
	"github.com/aretw0/formlogic/internal/config"
	"github.com/aretw0/formlogic/pkg/constraint"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "formlogic",
	Short: "formlogic evaluates form constraints and polls remote operations",
	Long: `formlogic evaluates declarative constraint trees against data, checks form
definitions and polls commands or status keys until an operation completes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		logger, err = cli.CreateLogger(cfg.LogLevel)
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./formlogic.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadData returns nil when no data file was given, so callers can tell
// "no data" from "empty data".
func loadData(cmd *cobra.Command) (constraint.Map, bool, error) {
	path, _ := cmd.Flags().GetString("data")
	if path == "" {
		return nil, false, nil
	}
	data, err := cli.LoadData(path)
	return data, true, err
}
