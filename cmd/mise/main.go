package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mise",
		Short: "Recipe costing: ingredient, gas, labor and utility costs per batch and per portion",
	}

	root.AddCommand(costCmd())
	root.AddCommand(shareCmd())
	root.AddCommand(unitsCmd())
	root.AddCommand(serveCmd())
	return root
}

func costCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cost [recipe.json]",
		Short: "Compute and display the cost breakdown of a recipe file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCost(cmd.OutOrStdout(), args[0])
		},
	}
}

func shareCmd() *cobra.Command {
	var chef string

	cmd := &cobra.Command{
		Use:   "share [recipe.json]",
		Short: "Print the shareable summary of a recipe file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShare(cmd.OutOrStdout(), args[0], chef)
		},
	}

	cmd.Flags().StringVar(&chef, "chef", "", "chef name shown on the card")
	return cmd
}

func unitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List the supported purchase and usage units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runUnits(cmd.OutOrStdout())
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		store      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local HTTP backend for the UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath, addr, store)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.json", "configuration file")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address, overrides the configuration")
	cmd.Flags().StringVar(&store, "store", "", "postgres, sqlite or memory, overrides the configuration")
	return cmd
}
