package model

import "fmt"

// Edge identifies one of the four edges of a board.
type Edge int

const (
	EdgeHead  Edge = iota // Start of the length axis
	EdgeTail              // End of the length axis
	EdgeLeft              // Far side of the width axis
	EdgeRight             // Near side of the width axis
)

// Edges lists all board edges in a stable order.
var Edges = []Edge{EdgeHead, EdgeTail, EdgeLeft, EdgeRight}

func (e Edge) String() string {
	switch e {
	case EdgeHead:
		return "Head"
	case EdgeTail:
		return "Tail"
	case EdgeLeft:
		return "Left"
	case EdgeRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Board is one physical plank. Edge flags are true when the edge was
// produced by a saw and false for an untouched factory-milled edge.
//
// A *Board has exactly one owner at a time: the factory, a placement, or
// the reuse stack. Handing it over means the previous owner drops it.
type Board struct {
	Serial     int     `json:"serial"`     // Fresh board number issued by the factory
	Generation int     `json:"generation"` // 0 for fresh boards, +1 per cross cut or rip
	Length     float64 `json:"length"`     // mm
	Width      float64 `json:"width"`      // mm
	CutHead    bool    `json:"cut_head"`
	CutTail    bool    `json:"cut_tail"`
	CutLeft    bool    `json:"cut_left"`
	CutRight   bool    `json:"cut_right"`
}

// NewBoard returns an uncut board with the given dimensions.
func NewBoard(length, width float64) *Board {
	if length <= 0 || width <= 0 {
		panic(fmt.Sprintf("model: board dimensions must be positive, got %.3fx%.3f", length, width))
	}
	return &Board{Length: length, Width: width}
}

// CutFw cross-cuts the board at cutlen. The receiver keeps [0, cutlen) and
// gets a sawn tail; the returned board owns [cutlen, Length) with a sawn head.
// Calling it with cutlen outside (0, Length) is a programming error.
func (b *Board) CutFw(cutlen float64) *Board {
	if cutlen <= 0 || cutlen >= b.Length {
		panic(fmt.Sprintf("model: cross cut at %.3f outside board length %.3f", cutlen, b.Length))
	}
	tail := *b
	tail.Length = b.Length - cutlen
	tail.CutHead = true
	tail.Generation = b.Generation + 1

	b.Length = cutlen
	b.CutTail = true
	return &tail
}

// CutLeftSide rip-cuts a strip of width cutlen off the left side. The
// receiver narrows to Width-cutlen with a sawn left edge; the returned strip
// has width cutlen and a sawn right edge.
// Calling it with cutlen outside (0, Width) is a programming error.
func (b *Board) CutLeftSide(cutlen float64) *Board {
	if cutlen <= 0 || cutlen >= b.Width {
		panic(fmt.Sprintf("model: rip cut of %.3f outside board width %.3f", cutlen, b.Width))
	}
	strip := *b
	strip.Width = cutlen
	strip.CutRight = true
	strip.Generation = b.Generation + 1

	b.Width = b.Width - cutlen
	b.CutLeft = true
	return &strip
}

// IsCut reports whether the given edge is sawn.
func (b Board) IsCut(e Edge) bool {
	switch e {
	case EdgeHead:
		return b.CutHead
	case EdgeTail:
		return b.CutTail
	case EdgeLeft:
		return b.CutLeft
	case EdgeRight:
		return b.CutRight
	default:
		return false
	}
}

// FactoryEdges returns how many edges are still factory-milled.
func (b Board) FactoryEdges() int {
	n := 0
	for _, e := range Edges {
		if !b.IsCut(e) {
			n++
		}
	}
	return n
}

// Area returns the board face area in square mm.
func (b Board) Area() float64 {
	return b.Length * b.Width
}

// String formats the board as "#serial LxW [flags]" for logs.
func (b Board) String() string {
	flags := []byte("----")
	for i, e := range Edges {
		if b.IsCut(e) {
			flags[i] = "HTLR"[i]
		}
	}
	return fmt.Sprintf("#%d.%d %.0fx%.0f [%s]", b.Serial, b.Generation, b.Length, b.Width, flags)
}
