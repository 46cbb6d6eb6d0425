package main

import (
	"github.com/aretw0/formlogic/internal/cli"
	"github.com/aretw0/formlogic/pkg/adapters/process"
	"github.com/aretw0/formlogic/pkg/poll"
	"github.com/spf13/cobra"
)

var pollCmd = &cobra.Command{
	Use:   "poll [flags] [-- <command> [args...]]",
	Short: "Poll a command until it reports completion",
	Long: `Runs a command (or a probe registered in the probes file) once per attempt.
JSON output is decoded; other output is available as "value". Polling continues
while --while (a constraint file) or --while-expr (an expr-lang expression) holds.`,
	Example: `  formlogic poll --while-expr 'status == "running"' --interval 2s -- ./status.sh
  formlogic poll --probe cluster-health --max-attempts 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.PollOptions{Logger: logger}
		opts.Probe, _ = cmd.Flags().GetString("probe")
		opts.WhileExpr, _ = cmd.Flags().GetString("while-expr")
		opts.All, _ = cmd.Flags().GetBool("all")
		opts.Metrics, _ = cmd.Flags().GetBool("metrics")
		opts.BaseDir, _ = cmd.Flags().GetString("dir")

		if len(args) > 0 {
			opts.Command, opts.Args = args[0], args[1:]
		}
		if opts.Probe != "" {
			probes, err := process.LoadProbes(cfg.ProbesFile)
			if err != nil {
				return err
			}
			opts.Probes = probes
		}
		if path, _ := cmd.Flags().GetString("while"); path != "" {
			node, err := cli.LoadConstraint(path)
			if err != nil {
				return err
			}
			opts.While = node
		}

		opts.PollOptions = append(cfg.PollOptions(), pollFlagOptions(cmd)...)

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		if err := cli.Poll(sigCtx, cmd.OutOrStdout(), opts); err != nil && !cli.IsInterrupted(err) {
			return err
		}
		return nil
	},
}

// pollFlagOptions turns explicitly set flags into options overriding the config.
func pollFlagOptions(cmd *cobra.Command) []poll.Option {
	var opts []poll.Option
	if cmd.Flags().Changed("interval") {
		d, _ := cmd.Flags().GetDuration("interval")
		opts = append(opts, poll.WithInterval(d))
	}
	if cmd.Flags().Changed("max-attempts") {
		n, _ := cmd.Flags().GetInt("max-attempts")
		opts = append(opts, poll.WithMaxAttempts(n))
	}
	if cmd.Flags().Changed("message") {
		msg, _ := cmd.Flags().GetString("message")
		opts = append(opts, poll.WithErrorMessage(msg))
	}
	return opts
}

func addPollFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("interval", poll.DefaultInterval, "Delay between attempts")
	cmd.Flags().Int("max-attempts", poll.Unlimited, "Maximum number of attempts (0 = unlimited)")
	cmd.Flags().String("message", poll.DefaultErrorMessage, "Error message when attempts are exceeded")
}

func init() {
	pollCmd.Flags().String("probe", "", "Registered probe to run instead of a command")
	pollCmd.Flags().String("while", "", "Constraint file; keep polling while it holds")
	pollCmd.Flags().String("while-expr", "", "expr-lang expression; keep polling while it is true")
	pollCmd.Flags().Bool("all", false, "Print every result, not only the last")
	pollCmd.Flags().Bool("metrics", false, "Print poll metrics after finishing")
	pollCmd.Flags().String("dir", "", "Working directory for the command")
	addPollFlags(pollCmd)
	rootCmd.AddCommand(pollCmd)
}
