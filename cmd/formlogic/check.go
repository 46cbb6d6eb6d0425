package main

import (
	"context"
	"fmt"

	"github.com/aretw0/formlogic/internal/cli"
	"github.com/aretw0/formlogic/pkg/form"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <form>",
	Short: "Validate data against a form definition",
	Long: `Resolves every field of the form for the --data object, prints the field states and
reports validation errors. Exits with status 1 when the data is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataPath, _ := cmd.Flags().GetString("data")

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			sigCtx := cli.NewSignalContext(context.Background())
			defer sigCtx.Cancel()
			fmt.Fprintf(cmd.OutOrStdout(), ">>> Watching '%s'.\n", args[0])
			return cli.CheckWatch(sigCtx, cmd.OutOrStdout(), cli.WatchOptions{
				FormPath: args[0],
				DataPath: dataPath,
				Logger:   logger,
			})
		}

		f, err := cli.LoadForm(args[0], form.WithLogger(logger))
		if err != nil {
			return err
		}
		data, err := cli.LoadData(dataPath)
		if err != nil {
			return err
		}
		return cli.Check(cmd.OutOrStdout(), f, data)
	},
}

func init() {
	checkCmd.Flags().String("data", "", "Data file (YAML or JSON)")
	checkCmd.Flags().Bool("watch", false, "Re-check whenever the form or data file changes")
	rootCmd.AddCommand(checkCmd)
}
