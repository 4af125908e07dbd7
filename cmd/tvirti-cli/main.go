// README: Operator CLI: offline quotes, evacuator classification and pricing file checks.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "tvirti",
		Short:        "Offline pricing and dispatch helpers for tvirti operators",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(quoteCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(settingsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func quoteCmd() *cobra.Command {
	var opts quoteOptions

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a job against the default tables or a YAML overrides file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.service, "service", "s", "", "service family: CARGO, EVACUATOR or CRANE")
	cmd.Flags().StringVar(&opts.subType, "sub", "", "cargo size or evacuator type")
	cmd.Flags().Float64VarP(&opts.distanceKm, "km", "k", 0, "trip distance in km")
	cmd.Flags().StringVar(&opts.duration, "duration", "", "crane rental duration")
	cmd.Flags().StringVar(&opts.floors, "floors", "", "crane floor range")
	cmd.Flags().StringVar(&opts.settingsPath, "settings", "", "YAML pricing overrides file")
	_ = cmd.MarkFlagRequired("service")
	return cmd
}

func classifyCmd() *cobra.Command {
	var category string
	var wheelLocked, steeringLocked, goesNeutral bool

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Pick the evacuator type for a customer vehicle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			return runClassify(cmd.OutOrStdout(), category, answerFlags{
				wheelLocked:    optional(flags.Changed("wheel-locked"), wheelLocked),
				steeringLocked: optional(flags.Changed("steering-locked"), steeringLocked),
				goesNeutral:    optional(flags.Changed("goes-neutral"), goesNeutral),
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "customer vehicle category")
	cmd.Flags().BoolVar(&wheelLocked, "wheel-locked", false, "a wheel is locked")
	cmd.Flags().BoolVar(&steeringLocked, "steering-locked", false, "the steering is locked")
	cmd.Flags().BoolVar(&goesNeutral, "goes-neutral", false, "the gearbox shifts into neutral")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect pricing overrides files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Check an overrides file without applying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show [file]",
		Short: "Print the effective price tables, optionally with an overrides file applied",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runShow(cmd.OutOrStdout(), path)
		},
	})
	return cmd
}
