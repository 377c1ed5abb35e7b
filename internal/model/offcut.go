package model

import (
	"fmt"
	"sort"
)

// OffcutKind tells where an unplaced piece came from.
type OffcutKind string

const (
	OffcutLeftover  OffcutKind = "leftover"  // Still on the reuse stack after the plan
	OffcutDiscarded OffcutKind = "discarded" // First-row strip dropped by StripDiscard
)

// Offcut is a piece of board that did not end up on the floor.
type Offcut struct {
	Kind   OffcutKind `json:"kind"`
	Region string     `json:"region"` // Region that produced it, empty for leftovers
	Board  Board      `json:"board"`
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() float64 {
	return o.Board.Area()
}

// Usable reports whether the offcut is big enough to be worth keeping.
func (o Offcut) Usable() bool {
	return o.Board.Length >= MinOffcutLength && o.Board.Width >= MinOffcutWidth
}

// ToSupplyProfile turns an offcut into a single-board profile so it can be
// fed into a later plan. The name depends only on the board size.
func (o Offcut) ToSupplyProfile() SupplyProfile {
	name := fmt.Sprintf("Offcut %.0fx%.0f", o.Board.Length, o.Board.Width)
	return NewSupplyProfile(name, o.Board.Length, o.Board.Width, 1)
}

// MinOffcutLength is the minimum length (in mm) for an offcut to be reusable.
const MinOffcutLength = 200.0

// MinOffcutWidth is the minimum width (in mm) for an offcut to be reusable.
const MinOffcutWidth = 50.0

// CollectOffcuts lists every piece of a plan result that was not laid,
// largest first.
func CollectOffcuts(result PlanResult) []Offcut {
	var offcuts []Offcut
	for _, l := range result.Layouts {
		for _, b := range l.Discarded {
			offcuts = append(offcuts, Offcut{Kind: OffcutDiscarded, Region: l.Region, Board: b})
		}
	}
	for _, b := range result.Leftover {
		offcuts = append(offcuts, Offcut{Kind: OffcutLeftover, Board: b})
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// TotalOffcutArea returns the total area of all offcuts in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
