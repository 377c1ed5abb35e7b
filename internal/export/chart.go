package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/PlankLay/internal/model"
)

// UsageChart builds a bar chart comparing boards placed, offcuts reused and
// strips discarded per region.
func UsageChart(plan model.Plan, result model.PlanResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    plan.Name,
		Subtitle: fmt.Sprintf("%s: %d fresh boards used, %d offcuts reused", plan.Profile.Name, result.FreshUsed, result.Reused),
	}))

	var regions []string
	var placed, reused, cut, discarded []opts.BarData
	for _, l := range result.Layouts {
		regions = append(regions, l.Region)
		var fromStack, sawn int
		for _, p := range l.Placements {
			if p.Board == nil {
				continue
			}
			if p.Board.Generation > 0 {
				fromStack++
			}
			if p.Board.FactoryEdges() < len(model.Edges) {
				sawn++
			}
		}
		placed = append(placed, opts.BarData{Value: len(l.Placements)})
		reused = append(reused, opts.BarData{Value: fromStack})
		cut = append(cut, opts.BarData{Value: sawn})
		discarded = append(discarded, opts.BarData{Value: len(l.Discarded)})
	}

	bar.SetXAxis(regions).
		AddSeries("Placed", placed).
		AddSeries("Offcuts laid", reused).
		AddSeries("Sawn", cut).
		AddSeries("Strips discarded", discarded)
	return bar
}

// RenderUsageChart writes the usage chart as a standalone HTML page.
func RenderUsageChart(w io.Writer, plan model.Plan, result model.PlanResult) error {
	if len(result.Layouts) == 0 {
		return fmt.Errorf("no layouts to chart")
	}
	return UsageChart(plan, result).Render(w)
}

// ExportChart writes the usage chart HTML page to path.
func ExportChart(path string, plan model.Plan, result model.PlanResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderUsageChart(f, plan, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
