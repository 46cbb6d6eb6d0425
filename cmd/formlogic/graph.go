package main

import (
	"github.com/aretw0/formlogic/internal/cli"
	"github.com/aretw0/formlogic/internal/presentation/tui"
	"github.com/aretw0/formlogic/pkg/constraint"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <constraint>",
	Short: "Export the constraint tree visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the constraint tree. With --data, nodes are coloured by their outcome.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		node, err := cli.LoadConstraint(args[0])
		if err != nil {
			return err
		}
		data, ok, err := loadData(cmd)
		if err != nil {
			return err
		}
		var overlay constraint.Data
		if ok {
			overlay = data
		}
		return cli.Graph(cmd.OutOrStdout(), node, overlay)
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <constraint>",
	Short: "Explain how a constraint evaluates against data",
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

		var render func(string) (string, error)
		if plain, _ := cmd.Flags().GetBool("plain"); !plain {
			if render, err = tui.NewRenderer(cfg.RenderStyle); err != nil {
				return err
			}
		}
		return cli.Explain(cmd.OutOrStdout(), node, data, render)
	},
}

func init() {
	graphCmd.Flags().String("data", "", "Data file used to colour the graph")
	explainCmd.Flags().String("data", "", "Data file (YAML or JSON)")
	explainCmd.Flags().Bool("plain", false, "Print raw markdown")
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(explainCmd)
}
