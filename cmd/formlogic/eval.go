package main

import (
	"github.com/aretw0/formlogic/internal/cli"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <constraint>",
	Short: "Evaluate a constraint against data",
	Long:  `Reads a constraint tree (YAML or JSON, "-" for stdin) and prints its value for the --data object as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		node, err := cli.LoadConstraint(args[0])
		if err != nil {
			return err
		}
		data, _, err := loadData(cmd)
		if err != nil {
			return err
		}
		return cli.Eval(cmd.OutOrStdout(), node, data)
	},
}

var depsCmd = &cobra.Command{
	Use:   "deps <constraint>",
	Short: "List the properties a constraint reads",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		node, err := cli.LoadConstraint(args[0])
		if err != nil {
			return err
		}
		return cli.Deps(cmd.OutOrStdout(), node)
	},
}

func init() {
	evalCmd.Flags().String("data", "", "Data file (YAML or JSON)")
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(depsCmd)
}
