package main

import (
	"fmt"

	"github.com/piwi3910/PlankLay/internal/importer"
	"github.com/piwi3910/PlankLay/internal/model"
	"github.com/piwi3910/PlankLay/internal/project"
	"github.com/spf13/cobra"
)

func newRoomCmd(a *app) *cobra.Command {
	var (
		wall        float64
		profileName string
		orientation string
		offset      float64
		name        string
	)
	cmd := &cobra.Command{
		Use:   "room DXF PLAN",
		Short: "Create a plan from a room outline drawn in a DXF file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("wall") {
				wall = a.config.DefaultWallWidth
			}
			res := importer.ImportRoomDXF(args[0], wall)
			for _, w := range res.Warnings {
				a.logger.Warn("room: import warning", "file", args[0], "msg", w)
			}
			if len(res.Errors) > 0 || res.Room == nil {
				for _, e := range res.Errors {
					a.logger.Error("room: import error", "file", args[0], "msg", e)
				}
				return fmt.Errorf("no room found in %s", args[0])
			}

			if profileName == "" {
				profileName = a.config.DefaultProfile
			}
			profile, ok := model.FindSupplyProfile(profileName, a.custom)
			if !ok {
				return fmt.Errorf("%w: unknown profile %q", model.ErrInvalidProfile, profileName)
			}
			if name == "" {
				name = args[0]
			}

			plan := model.NewPlan(name, profile)
			plan.Room = res.Room
			plan.Regions = append(plan.Regions, res.Room.Region("floor", model.Orientation(orientation), offset))
			a.config.ApplyToSettings(&plan.Settings)
			if err := plan.Validate(); err != nil {
				return err
			}
			if err := project.SavePlan(args[1], plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Room %.0fx%.0f (walls %.0f) saved to %s\n",
				res.Room.Width, res.Room.Depth, res.Room.WallThickness, args[1])
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&wall, "wall", 0, "wall thickness in mm when the drawing has a single outline (default from config)")
	f.StringVar(&profileName, "profile", "", profileFlagUsage)
	f.StringVar(&orientation, "orientation", string(model.Horizontal), "row direction: horizontal or vertical")
	f.Float64Var(&offset, "offset", 0, "first row offset in mm")
	f.StringVar(&name, "name", "", "plan name (default: the DXF file name)")
	return cmd
}
