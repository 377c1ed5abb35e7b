package export

import (
	"fmt"

	"github.com/piwi3910/PlankLay/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	dxfdrawing "github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerWalls     = "WALLS"
	LayerBoards    = "BOARDS"
	LayerDecorDot  = "DECOR_DOT"
	LayerDecorDash = "DECOR_DASH"
)

// ExportDXF writes the room walls, board outlines and decorative lines of
// all regions to a DXF file. DXF Y grows upwards, so floor Y is negated.
func ExportDXF(path string, plan model.Plan, result model.PlanResult) error {
	if len(result.Layouts) == 0 {
		return fmt.Errorf("no layouts to export")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerWalls, color.White},
		{LayerBoards, color.Yellow},
		{LayerDecorDot, color.Cyan},
		{LayerDecorDash, color.Magenta},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	if plan.Room != nil {
		if err := d.ChangeLayer(LayerWalls); err != nil {
			return err
		}
		if err := dxfRect(d, plan.Room.Outer()); err != nil {
			return err
		}
		if err := dxfRect(d, plan.Room.Floor()); err != nil {
			return err
		}
	}

	for _, layout := range result.Layouts {
		for _, p := range layout.Placements {
			if err := d.ChangeLayer(LayerBoards); err != nil {
				return err
			}
			if err := dxfRect(d, p.Rect); err != nil {
				return err
			}
			for _, l := range DecorLines(p) {
				layer := LayerDecorDash
				if l.Dotted {
					layer = LayerDecorDot
				}
				if err := d.ChangeLayer(layer); err != nil {
					return err
				}
				if err := dxfLine(d, l.Segment.A, l.Segment.B); err != nil {
					return err
				}
			}
		}
	}

	return d.SaveAs(path)
}

func dxfLine(d *dxfdrawing.Drawing, a, b model.Point2D) error {
	_, err := d.Line(a.X, -a.Y, 0, b.X, -b.Y, 0)
	return err
}

func dxfRect(d *dxfdrawing.Drawing, r model.Rect) error {
	corners := []model.Point2D{
		{X: r.Left(), Y: r.Top()},
		{X: r.Right(), Y: r.Top()},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.Left(), Y: r.Bottom()},
	}
	for i := range corners {
		if err := dxfLine(d, corners[i], corners[(i+1)%len(corners)]); err != nil {
			return err
		}
	}
	return nil
}
