package model

import "fmt"

// farReach is how far boundary regions extend past the room so that any
// board leaving the floor is caught.
const farReach = 100e3

// Doorway is an opening in the wall that ends the rows. Boards laid in
// front of the opening run through it and stop at Depth past the wall.
type Doorway struct {
	Offset float64 `json:"offset" yaml:"offset"` // Distance along the wall from the room origin (mm)
	Width  float64 `json:"width" yaml:"width"`   // Opening width (mm)
	Depth  float64 `json:"depth" yaml:"depth"`   // Floor past the inner wall face (mm), defaults to the wall thickness
}

// Room is a rectangular floor enclosed by walls. The floor spans
// [0, Width] x [0, Depth].
type Room struct {
	Width         float64  `json:"width" yaml:"width"`
	Depth         float64  `json:"depth" yaml:"depth"`
	WallThickness float64  `json:"wall_thickness" yaml:"wall_thickness"`
	Doorway       *Doorway `json:"doorway,omitempty" yaml:"doorway,omitempty"`
}

// Floor returns the floor rectangle.
func (r Room) Floor() Rect {
	return Rect{Width: r.Width, Height: r.Depth}
}

// Outer returns the rectangle including the walls.
func (r Room) Outer() Rect {
	t := r.WallThickness
	return Rect{X: -t, Y: -t, Width: r.Width + 2*t, Height: r.Depth + 2*t}
}

// Validate checks the room dimensions and doorway placement.
func (r Room) Validate() error {
	if r.Width <= 0 || r.Depth <= 0 {
		return fmt.Errorf("room size must be positive, got %.1fx%.1f", r.Width, r.Depth)
	}
	if r.WallThickness <= 0 {
		return fmt.Errorf("wall thickness must be positive, got %.1f", r.WallThickness)
	}
	if d := r.Doorway; d != nil {
		if d.Width <= 0 {
			return fmt.Errorf("doorway width must be positive, got %.1f", d.Width)
		}
		if d.Offset < 0 {
			return fmt.Errorf("doorway offset must not be negative, got %.1f", d.Offset)
		}
	}
	return nil
}

// Region builds the layout region for covering the floor with rows running
// along the given orientation. Horizontal layouts start at the room origin
// and end rows at the right wall; vertical layouts start at the bottom-left
// corner and end rows at the top wall. A doorway sits in the wall that ends
// the rows.
func (r Room) Region(name string, o Orientation, firstRowOffset float64) Region {
	t := r.WallThickness
	reg := Region{
		Name:           name,
		Orientation:    o,
		FirstRowOffset: firstRowOffset,
	}

	if o == Vertical {
		reg.Start = Point2D{X: 0, Y: r.Depth}
		wall := Rect{X: -t, Y: -t, Width: r.Width + 2*t, Height: t}
		reg.Block = wall
		reg.BlockSide = Rect{X: r.Width, Y: -t, Width: t, Height: r.Depth + 2*t}
		if d := r.Doorway; d != nil {
			depth := r.doorDepth()
			reg.Block = Rect{X: -farReach, Y: -depth - farReach, Width: 2 * farReach, Height: farReach}
			flank := wall
			door := Rect{X: d.Offset, Y: -t, Width: d.Width, Height: t}
			reg.DoorFlank = &flank
			reg.Doorway = &door
		}
		return reg
	}

	reg.Start = Point2D{X: 0, Y: 0}
	wall := Rect{X: r.Width, Y: -t, Width: t, Height: r.Depth + 2*t}
	reg.Block = wall
	reg.BlockSide = Rect{X: -t, Y: r.Depth, Width: r.Width + 2*t, Height: t}
	if d := r.Doorway; d != nil {
		depth := r.doorDepth()
		reg.Block = Rect{X: r.Width + depth, Y: -farReach, Width: farReach, Height: 2 * farReach}
		flank := wall
		door := Rect{X: r.Width, Y: d.Offset, Width: t, Height: d.Width}
		reg.DoorFlank = &flank
		reg.Doorway = &door
	}
	return reg
}

func (r Room) doorDepth() float64 {
	if r.Doorway != nil && r.Doorway.Depth > 0 {
		return r.Doorway.Depth
	}
	return r.WallThickness
}
