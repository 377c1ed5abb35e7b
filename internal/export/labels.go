package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/PlankLay/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each board label's QR code.
type LabelInfo struct {
	Region     string  `json:"region"`
	Row        int     `json:"row"`
	Index      int     `json:"index"`
	Serial     int     `json:"serial"`
	Generation int     `json:"generation"`
	Length     float64 `json:"length_mm"`
	Width      float64 `json:"width_mm"`
	X          float64 `json:"x_mm"`
	Y          float64 `json:"y_mm"`
	Sawn       string  `json:"sawn"`
}

// Title returns the short text printed on the label.
func (l LabelInfo) Title() string {
	return fmt.Sprintf("%s R%d/%d", l.Region, l.Row, l.Index)
}

// Label sheet geometry: 3x10 cells of 66.7x25.4 mm on US Letter, the
// Avery 5160 layout.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per placed board, in
// laying order. Each label names the region, row and position of the board
// and its sawn edges so it can be cut and stacked before laying starts.
func ExportLabels(path string, result model.PlanResult) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no boards placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Title(), err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws label n with its top-left corner at x, y.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, n int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", n)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	title := info.Title()
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f mm", info.Length, info.Width)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	origin := fmt.Sprintf("Board %d.%d @ (%.0f, %.0f)", info.Serial, info.Generation, info.X, info.Y)
	pdf.CellFormat(textW, 3, origin, "", 1, "L", false, 0, "")

	if info.Sawn != "-" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Sawn: "+info.Sawn, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from a plan result in
// laying order.
func CollectLabelInfos(result model.PlanResult) []LabelInfo {
	var labels []LabelInfo
	for _, l := range result.Layouts {
		for _, p := range l.Placements {
			if p.Board == nil {
				continue
			}
			labels = append(labels, LabelInfo{
				Region:     l.Region,
				Row:        p.Row,
				Index:      p.Index,
				Serial:     p.Board.Serial,
				Generation: p.Board.Generation,
				Length:     p.Board.Length,
				Width:      p.Board.Width,
				X:          p.Rect.X,
				Y:          p.Rect.Y,
				Sawn:       model.EdgeFlags(*p.Board),
			})
		}
	}
	return labels
}
