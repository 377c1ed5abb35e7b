package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/piwi3910/PlankLay/internal/engine"
	"github.com/piwi3910/PlankLay/internal/project"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare PLAN",
		Short: "Lay out a plan under alternative profiles and strip policies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := project.LoadPlan(args[0], a.config, a.custom)
			if err != nil {
				return err
			}

			results := engine.CompareScenarios(engine.BuildDefaultScenarios(plan), plan)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tBOARDS\tFRESH\tREUSED\tLEFTOVER m²\tEXHAUSTED\tERROR")
			for _, r := range results {
				errText := "-"
				if r.Err != nil {
					errText = r.Err.Error()
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f\t%t\t%s\n",
					r.Scenario.Name, r.BoardsPlaced, r.FreshUsed, r.Reused,
					r.LeftoverArea/1e6, r.Exhausted, errText)
			}
			return tw.Flush()
		},
	}
}
