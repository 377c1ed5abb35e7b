package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/piwi3910/PlankLay/internal/engine"
	"github.com/piwi3910/PlankLay/internal/export"
	"github.com/piwi3910/PlankLay/internal/model"
	"github.com/piwi3910/PlankLay/internal/project"
	"github.com/spf13/cobra"
)

const maxRecentPlans = 10

type layoutOutputs struct {
	pdf, labels, dxf, xlsx, chart, save string
	keepOffcuts                         bool
}

func newLayoutCmd(a *app) *cobra.Command {
	var out layoutOutputs
	cmd := &cobra.Command{
		Use:   "layout PLAN",
		Short: "Lay out a plan and write the requested outputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			plan, err := project.LoadPlan(path, a.config, a.custom)
			if err != nil {
				return err
			}

			result, runErr := engine.Run(plan, a.logger)
			if runErr != nil && !errors.Is(runErr, engine.ErrRowLimit) {
				return runErr
			}

			printResult(cmd.OutOrStdout(), plan, result)
			if err := a.writeOutputs(out, plan, result); err != nil {
				return err
			}
			if out.keepOffcuts {
				n, err := a.keepOffcuts(result)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Kept %d offcut profiles\n", n)
			}

			a.config.AddRecentPlan(path, maxRecentPlans)
			if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
				a.logger.Warn("layout: could not update recent plans", "err", err)
			}
			return runErr
		},
	}
	f := cmd.Flags()
	f.StringVar(&out.pdf, "pdf", "", "write the layout drawing to this PDF")
	f.StringVar(&out.labels, "labels", "", "write QR board labels to this PDF")
	f.StringVar(&out.dxf, "dxf", "", "write the layout to this DXF")
	f.StringVar(&out.xlsx, "xlsx", "", "write the cut list to this workbook")
	f.StringVar(&out.chart, "chart", "", "write the usage chart to this HTML file")
	f.StringVar(&out.save, "save", "", "save the resolved plan (.yaml or .json)")
	f.BoolVar(&out.keepOffcuts, "keep-offcuts", false, "save usable offcuts as custom supply profiles")
	return cmd
}

// outputPath places relative output names in the configured output dir.
func (a *app) outputPath(name string) string {
	if filepath.IsAbs(name) || a.config.OutputDir == "" {
		return name
	}
	return filepath.Join(a.config.OutputDir, name)
}

func (a *app) writeOutputs(out layoutOutputs, plan model.Plan, result model.PlanResult) error {
	writers := []struct {
		name  string
		write func(string) error
	}{
		{out.pdf, func(p string) error { return export.ExportPDF(p, plan, result) }},
		{out.labels, func(p string) error { return export.ExportLabels(p, result) }},
		{out.dxf, func(p string) error { return export.ExportDXF(p, plan, result) }},
		{out.xlsx, func(p string) error { return export.ExportCutList(p, plan, result) }},
		{out.chart, func(p string) error { return export.ExportChart(p, plan, result) }},
		{out.save, func(p string) error { return project.SavePlan(p, plan) }},
	}
	for _, w := range writers {
		if w.name == "" {
			continue
		}
		path := a.outputPath(w.name)
		if err := w.write(path); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		a.logger.Info("layout: wrote output", "path", path)
	}
	return nil
}

// keepOffcuts stores the usable offcuts of result as custom profiles.
// Offcuts of the same size share one profile.
func (a *app) keepOffcuts(result model.PlanResult) (int, error) {
	var profiles []model.SupplyProfile
	index := map[string]int{}
	for _, o := range model.CollectOffcuts(result) {
		if !o.Usable() {
			continue
		}
		p := o.ToSupplyProfile()
		if i, ok := index[p.Name]; ok {
			profiles[i].Capacity++
			continue
		}
		index[p.Name] = len(profiles)
		profiles = append(profiles, p)
	}

	for _, p := range profiles {
		if err := project.AddCustomProfile(a.profilesPath, p); err != nil {
			return 0, fmt.Errorf("failed to keep offcut: %w", err)
		}
		a.logger.Info("layout: kept offcut", "profile", p.Name, "boards", p.Capacity)
	}
	return len(profiles), nil
}

func printResult(w io.Writer, plan model.Plan, result model.PlanResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Plan:\t%s (%s)\n", plan.Name, plan.Profile.Name)
	fmt.Fprintln(tw, "REGION\tROWS\tBOARDS\tCOVERED m²\tSTRIPS\tEXHAUSTED")
	for _, l := range result.Layouts {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%d\t%t\n",
			l.Region, l.Rows, len(l.Placements), l.CoveredArea()/1e6, len(l.Discarded), l.Exhausted)
	}
	tw.Flush()

	edges := model.CalculateEdgeSummary(result.Placements())
	offcuts := model.CollectOffcuts(result)
	fmt.Fprintf(w, "Fresh boards used: %d, offcuts reused: %d, fresh left: %d\n",
		result.FreshUsed, result.Reused, result.Remaining)
	fmt.Fprintf(w, "Cross cuts: %d, rip cuts: %d, untouched boards: %d\n",
		edges.CrossCuts, edges.RipCuts, edges.Untouched)
	fmt.Fprintf(w, "Offcuts: %d (%.2f m²)\n", len(offcuts), model.TotalOffcutArea(offcuts)/1e6)
	if result.Exhausted {
		fmt.Fprintln(w, "WARNING: ran out of boards before the floor was covered")
	}
}
