package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/PlankLay/internal/importer"
	"github.com/piwi3910/PlankLay/internal/model"
	"github.com/piwi3910/PlankLay/internal/project"
	"github.com/spf13/cobra"
)

// profileFlagUsage is the help text of every --profile flag.
var profileFlagUsage = "supply profile name: a custom profile or one of " +
	strings.Join(model.SupplyProfileNames(), ", ") + " (default from config)"

func newProfilesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage supply profiles",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List built-in and custom supply profiles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tBOARD\tCAPACITY\tSHORTEN\tBUILT-IN")
				all := append(append([]model.SupplyProfile{}, model.SupplyProfiles...), a.custom...)
				for _, p := range all {
					fmt.Fprintf(tw, "%s\t%.0fx%.0f\t%d\t%.0f\t%t\n",
						p.Name, p.DefaultLength, p.DefaultWidth, p.Capacity, p.FirstBoardShortenBy, p.IsBuiltIn)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:   "import FILE",
			Short: "Import custom profiles from a CSV or Excel file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				res := importer.ImportFile(args[0])
				for _, w := range res.Warnings {
					a.logger.Warn("profiles: import warning", "file", args[0], "msg", w)
				}
				for _, e := range res.Errors {
					a.logger.Error("profiles: import error", "file", args[0], "msg", e)
				}
				added := 0
				for _, p := range res.Profiles {
					if err := project.AddCustomProfile(a.profilesPath, p); err != nil {
						a.logger.Error("profiles: skipped", "profile", p.Name, "err", err)
						continue
					}
					added++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d profiles\n", added, len(res.Profiles))
				if added == 0 && len(res.Errors) > 0 {
					return fmt.Errorf("no profiles imported from %s", args[0])
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "export NAME FILE",
			Short: "Write one profile to a JSON file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, ok := model.FindSupplyProfile(args[0], a.custom)
				if !ok {
					return fmt.Errorf("%w: unknown profile %q", model.ErrInvalidProfile, args[0])
				}
				return project.ExportProfile(args[1], p)
			},
		},
		&cobra.Command{
			Use:   "backup FILE",
			Short: "Back up the app config and custom profiles",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return project.ExportAllData(args[0], a.config, a.custom)
			},
		},
		&cobra.Command{
			Use:   "restore FILE",
			Short: "Restore the app config and custom profiles from a backup",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := project.ImportAllData(args[0])
				if err != nil {
					return err
				}
				if err := project.SaveAppConfig(a.configPath, data.Config); err != nil {
					return err
				}
				return project.SaveCustomProfiles(a.profilesPath, data.Profiles)
			},
		},
	)
	return cmd
}
