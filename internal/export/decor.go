package export

import "github.com/piwi3910/PlankLay/internal/model"

// DecorInset is how far inside a factory edge the decorative line runs (mm).
const DecorInset = 20.0

// DecorLine is a decorative line drawn parallel to one factory edge.
// Head and left edges use a dotted stroke, tail and right edges a dashed one.
type DecorLine struct {
	Edge    model.Edge
	Segment model.Segment
	Dotted  bool
}

// DecorLines returns the decorative lines of a placed board, one per
// factory edge. Boards narrower than twice the inset get none.
func DecorLines(p model.PlacedBoard) []DecorLine {
	r := p.Rect
	if p.Board == nil || r.Width < 2*DecorInset || r.Height < 2*DecorInset {
		return nil
	}
	inner := p
	inner.Rect = model.Rect{
		X:      r.X + DecorInset,
		Y:      r.Y + DecorInset,
		Width:  r.Width - 2*DecorInset,
		Height: r.Height - 2*DecorInset,
	}

	var lines []DecorLine
	for _, e := range model.Edges {
		if p.Board.IsCut(e) {
			continue
		}
		lines = append(lines, DecorLine{
			Edge:    e,
			Segment: inner.EdgeSegment(e),
			Dotted:  e == model.EdgeHead || e == model.EdgeLeft,
		})
	}
	return lines
}
