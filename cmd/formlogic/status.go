package main

import (
	"github.com/aretw0/formlogic/internal/adapters/file"
	"github.com/aretw0/formlogic/internal/cli"
	"github.com/aretw0/formlogic/pkg/adapters/redis"
	"github.com/aretw0/formlogic/pkg/poll"
	"github.com/aretw0/formlogic/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Publish and await operation statuses",
	Long: `Operation statuses are stored in Redis when redis.addr is configured and in
the status_dir directory otherwise.`,
}

var statusBeginCmd = &cobra.Command{
	Use:   "begin <id>",
	Short: "Claim an operation, failing if it is already running",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStatusStore()
		if err != nil {
			return err
		}
		defer closeStore()

		message, _ := cmd.Flags().GetString("message")
		return store.Begin(cmd.Context(), args[0], message)
	},
}

var statusAwaitCmd = &cobra.Command{
	Use:   "await <id>",
	Short: "Wait until the operation reaches done or error",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStatusStore()
		if err != nil {
			return err
		}
		defer closeStore()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		opts := append(cfg.PollOptions(), poll.WithName("status"), poll.WithLogger(logger))
		opts = append(opts, pollFlagOptions(cmd)...)
		if err := cli.AwaitStatus(sigCtx, cmd.OutOrStdout(), store, args[0], opts...); err != nil && !cli.IsInterrupted(err) {
			return err
		}
		return nil
	},
}

var statusSetCmd = &cobra.Command{
	Use:   "set <id> <running|done|error>",
	Short: "Publish the status of an operation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStatusStore()
		if err != nil {
			return err
		}
		defer closeStore()

		report := poll.StatusReport{Status: poll.Status(args[1])}
		report.Message, _ = cmd.Flags().GetString("message")
		report.Progress, _ = cmd.Flags().GetFloat64("progress")
		return cli.PublishStatus(cmd.Context(), store, args[0], report)
	},
}

func openStatusStore() (ports.StatusStore, func(), error) {
	if cfg.Redis.Addr == "" {
		return file.New(cfg.StatusDir), func() {}, nil
	}
	client := backend.NewClient(&backend.Options{Addr: cfg.Redis.Addr})
	store := redis.NewFromClient(client,
		redis.WithPrefix(cfg.Redis.Prefix),
		redis.WithTTL(cfg.Redis.TTL),
	)
	return store, func() { _ = client.Close() }, nil
}

func init() {
	addPollFlags(statusAwaitCmd)
	statusSetCmd.Flags().String("message", "", "Status message")
	statusSetCmd.Flags().Float64("progress", 0, "Progress between 0 and 1")
	statusBeginCmd.Flags().String("message", "", "Status message")
	statusCmd.AddCommand(statusBeginCmd, statusAwaitCmd, statusSetCmd)
	rootCmd.AddCommand(statusCmd)
}
