// Package export renders plan results: PDF layout drawings, QR board
// labels, DXF drawings, Excel cut lists and HTML charts.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/PlankLay/internal/model"
)

// rowColor represents an RGB fill for the boards of one row.
type rowColor struct {
	R, G, B int
}

// rowColors alternate between rows so neighbouring rows stay distinguishable.
var rowColors = []rowColor{
	{R: 222, G: 184, B: 135}, // burlywood
	{R: 205, G: 160, B: 110},
	{R: 238, G: 203, B: 160},
	{R: 190, G: 145, B: 100},
}

// A4 landscape, mm.
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes the layout drawing of every region followed by a
// summary page to path.
func ExportPDF(path string, plan model.Plan, result model.PlanResult) error {
	pdf, err := buildPDF(plan, result)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF renders the same document as ExportPDF to w.
func WritePDF(w io.Writer, plan model.Plan, result model.PlanResult) error {
	pdf, err := buildPDF(plan, result)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildPDF(plan model.Plan, result model.PlanResult) (*fpdf.Fpdf, error) {
	if len(result.Layouts) == 0 {
		return nil, fmt.Errorf("no layouts to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, layout := range result.Layouts {
		pdf.AddPage()
		renderLayoutPage(pdf, plan, layout)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan, result)
	return pdf, pdf.Error()
}

// drawing maps floor coordinates (mm) onto the page.
type drawing struct {
	scale, offsetX, offsetY float64
	origin                  model.Point2D
}

func (d drawing) x(v float64) float64 { return d.offsetX + (v-d.origin.X)*d.scale }
func (d drawing) y(v float64) float64 { return d.offsetY + (v-d.origin.Y)*d.scale }

// renderLayoutPage draws one region on the current PDF page.
func renderLayoutPage(pdf *fpdf.Fpdf, plan model.Plan, layout model.Layout) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s (%s)", plan.Name, layout.Region, layout.Orientation)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Boards: %d | Rows: %d | Covered: %.2f m² | Discarded strips: %d",
		len(layout.Placements), layout.Rows, layout.CoveredArea()/1e6, len(layout.Discarded))
	if layout.Exhausted {
		stats += " | SUPPLY EXHAUSTED"
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	extent := layout.Bounds()
	if plan.Room != nil {
		extent = extent.Union(plan.Room.Outer())
	}
	if extent.Empty() {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/extent.Width, drawHeight/extent.Height)
	d := drawing{
		scale:   scale,
		offsetX: marginLeft + (drawWidth-extent.Width*scale)/2,
		offsetY: drawAreaTop,
		origin:  model.Point2D{X: extent.X, Y: extent.Y},
	}

	if plan.Room != nil {
		drawRoom(pdf, d, *plan.Room)
	}

	for _, p := range layout.Placements {
		col := rowColors[(p.Row-1+len(rowColors))%len(rowColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(40, 40, 40)
		pdf.SetLineWidth(0.3)
		pdf.Rect(d.x(p.Rect.X), d.y(p.Rect.Y), p.Rect.Width*scale, p.Rect.Height*scale, "FD")

		drawDecor(pdf, d, p)
		drawBoardLabel(pdf, d, p)
	}

	drawDimensionAnnotations(pdf, d, extent)
}

// drawRoom renders the walls as a grey frame around the floor.
func drawRoom(pdf *fpdf.Fpdf, d drawing, room model.Room) {
	outer := room.Outer()
	floor := room.Floor()
	pdf.SetFillColor(170, 170, 170)
	pdf.SetDrawColor(90, 90, 90)
	pdf.SetLineWidth(0.4)
	pdf.Rect(d.x(outer.X), d.y(outer.Y), outer.Width*d.scale, outer.Height*d.scale, "FD")
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(d.x(floor.X), d.y(floor.Y), floor.Width*d.scale, floor.Height*d.scale, "FD")
}

// drawDecor strokes the decorative lines along the factory edges.
func drawDecor(pdf *fpdf.Fpdf, d drawing, p model.PlacedBoard) {
	lines := DecorLines(p)
	if len(lines) == 0 {
		return
	}
	pdf.SetDrawColor(110, 70, 30)
	pdf.SetLineWidth(0.15)
	for _, l := range lines {
		if l.Dotted {
			pdf.SetDashPattern([]float64{0.3, 0.8}, 0)
		} else {
			pdf.SetDashPattern([]float64{2, 1}, 0)
		}
		pdf.Line(d.x(l.Segment.A.X), d.y(l.Segment.A.Y), d.x(l.Segment.B.X), d.y(l.Segment.B.Y))
	}
	pdf.SetDashPattern([]float64{}, 0)
}

// drawBoardLabel prints the board serial when the footprint is large enough.
func drawBoardLabel(pdf *fpdf.Fpdf, d drawing, p model.PlacedBoard) {
	pw := p.Rect.Width * d.scale
	ph := p.Rect.Height * d.scale
	if p.Board == nil || pw < 8 || ph < 4 {
		return
	}
	label := fmt.Sprintf("%d.%d", p.Board.Serial, p.Board.Generation)
	pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
	pdf.SetTextColor(0, 0, 0)
	lw := pdf.GetStringWidth(label)
	if lw > pw-1 {
		return
	}
	pdf.SetXY(d.x(p.Rect.X)+(pw-lw)/2, d.y(p.Rect.Y)+ph/2-2)
	pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
}

// drawDimensionAnnotations adds width and height labels outside the drawing.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, d drawing, extent model.Rect) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	canvasW := extent.Width * d.scale
	canvasH := extent.Height * d.scale

	widthLabel := fmt.Sprintf("%.0f mm", extent.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(d.offsetX+(canvasW-wLabelW)/2, d.offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", extent.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, d.offsetX-3, d.offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(d.offsetX-3-hLabelW/2, d.offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the final page with supply and edge statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.Plan, result model.PlanResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	edges := model.CalculateEdgeSummary(result.Placements())
	offcuts := model.CollectOffcuts(result)

	summaryItems := []struct {
		label string
		value string
	}{
		{"Supply Profile", fmt.Sprintf("%s (%.0f x %.0f mm, %d boards)",
			plan.Profile.Name, plan.Profile.DefaultLength, plan.Profile.DefaultWidth, plan.Profile.Capacity)},
		{"Boards Placed", fmt.Sprintf("%d", result.BoardsPlaced())},
		{"Fresh Boards Used", fmt.Sprintf("%d (%d left)", result.FreshUsed, result.Remaining)},
		{"Offcuts Reused", fmt.Sprintf("%d", result.Reused)},
		{"Covered Area", fmt.Sprintf("%.2f m²", result.CoveredArea()/1e6)},
		{"Cross / Rip Cuts", fmt.Sprintf("%d / %d", edges.CrossCuts, edges.RipCuts)},
		{"Factory / Sawn Edges", fmt.Sprintf("%d / %d", edges.FactoryEdges, edges.SawnEdges)},
		{"Offcuts Left", fmt.Sprintf("%d (%.2f m²)", len(offcuts), model.TotalOffcutArea(offcuts)/1e6)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if result.Exhausted {
		y += 3
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: supply ran out before the floor was covered", "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 8
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Region Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{60, 35, 25, 25, 40, 40}
	headers := []string{"Region", "Orientation", "Rows", "Boards", "Covered", "Discarded"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, l := range result.Layouts {
		xPos = marginLeft
		rowData := []string{
			l.Region,
			string(l.Orientation),
			fmt.Sprintf("%d", l.Rows),
			fmt.Sprintf("%d", len(l.Placements)),
			fmt.Sprintf("%.2f m²", l.CoveredArea()/1e6),
			fmt.Sprintf("%d", len(l.Discarded)),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by PlankLay - floor plank layout planner", "", 0, "C", false, 0, "")
}

// labelFontSize scales board captions to the drawn board size.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
