package main

import (
	"fmt"

	"github.com/piwi3910/PlankLay/internal/model"
	"github.com/spf13/cobra"
)

func newEstimateCmd(a *app) *cobra.Command {
	var (
		profileName  string
		areaM2       float64
		width, depth float64
		wastePct     float64
	)
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate boards and packs to buy for a floor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if profileName == "" {
				profileName = a.config.DefaultProfile
			}
			profile, ok := model.FindSupplyProfile(profileName, a.custom)
			if !ok {
				return fmt.Errorf("%w: unknown profile %q", model.ErrInvalidProfile, profileName)
			}

			area := areaM2 * 1e6
			if width > 0 && depth > 0 {
				area = width * depth
			}
			if area <= 0 {
				return fmt.Errorf("give --area or both --width and --depth")
			}
			if !cmd.Flags().Changed("waste") {
				wastePct = a.config.DefaultWastePct
			}

			est := model.CalculatePurchaseEstimate(area, profile, wastePct)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Floor: %.2f m² with %s (%.0fx%.0f, %d per pack)\n",
				est.FloorAreaM2, profile.Name, profile.DefaultLength, profile.DefaultWidth, profile.Capacity)
			fmt.Fprintf(w, "Boards: %d minimum, %d with %.0f%% waste\n",
				est.BoardsNeededMin, est.BoardsWithWaste, est.WastePercent)
			fmt.Fprintf(w, "Packs: %d\n", est.PacksNeeded)
			if est.EstimatedCost > 0 {
				fmt.Fprintf(w, "Cost: %.2f\n", est.EstimatedCost)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&profileName, "profile", "", profileFlagUsage)
	f.Float64Var(&areaM2, "area", 0, "floor area in m²")
	f.Float64Var(&width, "width", 0, "room width in mm")
	f.Float64Var(&depth, "depth", 0, "room depth in mm")
	f.Float64Var(&wastePct, "waste", 0, "waste percentage (default from config)")
	return cmd
}
