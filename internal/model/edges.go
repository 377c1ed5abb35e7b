package model

// EdgeSummary counts factory-milled and sawn edges across placements.
// Factory edges get a decorative line when drawn; sawn edges do not.
type EdgeSummary struct {
	Boards          int     `json:"boards"`
	FactoryEdges    int     `json:"factory_edges"`
	SawnEdges       int     `json:"sawn_edges"`
	FactoryLengthMM float64 `json:"factory_length_mm"` // Total length of factory edges
	SawnLengthMM    float64 `json:"sawn_length_mm"`    // Total length of sawn edges
	CrossCuts       int     `json:"cross_cuts"`        // Boards with a sawn head or tail
	RipCuts         int     `json:"rip_cuts"`          // Boards with a sawn left or right edge
	Untouched       int     `json:"untouched"`         // Boards laid exactly as delivered
}

// CalculateEdgeSummary walks the placements and sums up edge flags.
func CalculateEdgeSummary(placements []PlacedBoard) EdgeSummary {
	var s EdgeSummary
	for _, p := range placements {
		b := p.Board
		if b == nil {
			continue
		}
		s.Boards++
		for _, e := range Edges {
			length := p.EdgeSegment(e).Length()
			if b.IsCut(e) {
				s.SawnEdges++
				s.SawnLengthMM += length
			} else {
				s.FactoryEdges++
				s.FactoryLengthMM += length
			}
		}
		if b.CutHead || b.CutTail {
			s.CrossCuts++
		}
		if b.CutLeft || b.CutRight {
			s.RipCuts++
		}
		if b.FactoryEdges() == len(Edges) {
			s.Untouched++
		}
	}
	return s
}

// EdgeFlags formats the sawn edges of a board as e.g. "H+T", or "-" when
// the board is uncut.
func EdgeFlags(b Board) string {
	var parts []string
	for _, e := range Edges {
		if b.IsCut(e) {
			parts = append(parts, e.String()[:1])
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "+" + p
	}
	return out
}
