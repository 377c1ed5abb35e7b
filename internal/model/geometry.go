package model

import "math"

// Tolerance is the minimum overlap in mm that counts as a real intersection.
// Smaller overlaps are treated as edges touching.
const Tolerance = 0.1

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p shifted by q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Segment is a straight line between two points.
type Segment struct {
	A Point2D `json:"a"`
	B Point2D `json:"b"`
}

// Length returns the euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(s.B.X-s.A.X, s.B.Y-s.A.Y)
}

// Rect is an axis-aligned rectangle. Width and Height are never negative.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// NewRect builds a rectangle from an origin and a size. Negative sizes
// extend the rectangle towards smaller coordinates.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}.Normalize()
}

// Normalize flips negative extents so that Width and Height are positive.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns the rectangle area in square mm.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Intersect returns the overlapping area of r and o. The boolean is false
// when the rectangles only touch or are disjoint.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	left := math.Max(r.Left(), o.Left())
	top := math.Max(r.Top(), o.Top())
	right := math.Min(r.Right(), o.Right())
	bottom := math.Min(r.Bottom(), o.Bottom())
	if right <= left || bottom <= top {
		return Rect{}, false
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}, true
}

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	left := math.Min(r.Left(), o.Left())
	top := math.Min(r.Top(), o.Top())
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Orientation selects the forward axis along which boards are laid end to end.
type Orientation string

const (
	Horizontal Orientation = "horizontal" // Forward +X, rows advance +Y
	Vertical   Orientation = "vertical"   // Forward -Y, rows advance +X
)

// Valid reports whether o is a known orientation.
func (o Orientation) Valid() bool {
	return o == Horizontal || o == Vertical
}

// Forward returns the displacement of one step of the given length along
// the forward axis.
func (o Orientation) Forward(length float64) Point2D {
	if o == Vertical {
		return Point2D{Y: -length}
	}
	return Point2D{X: length}
}

// Side returns the displacement of one row of the given width along the
// side axis.
func (o Orientation) Side(width float64) Point2D {
	if o == Vertical {
		return Point2D{X: width}
	}
	return Point2D{Y: width}
}

// ForwardExtent returns the size of r along the forward axis.
func (o Orientation) ForwardExtent(r Rect) float64 {
	if o == Vertical {
		return r.Height
	}
	return r.Width
}

// SideExtent returns the size of r along the side axis.
func (o Orientation) SideExtent(r Rect) float64 {
	if o == Vertical {
		return r.Width
	}
	return r.Height
}

// Footprint returns the rectangle covered by a board of the given length
// and width laid at anchor. Vertical footprints are transposed and grow
// towards decreasing Y from the anchor.
func Footprint(anchor Point2D, length, width float64, o Orientation) Rect {
	if o == Vertical {
		return Rect{X: anchor.X, Y: anchor.Y - length, Width: width, Height: length}
	}
	return Rect{X: anchor.X, Y: anchor.Y, Width: length, Height: width}
}

// ForwardOverlap returns how far region overlaps fp along the forward axis,
// or 0 when they do not intersect.
func ForwardOverlap(fp, region Rect, o Orientation) float64 {
	irect, ok := fp.Intersect(region)
	if !ok {
		return 0
	}
	return o.ForwardExtent(irect)
}

// SideOverlap returns how far region overlaps fp along the side axis, or 0
// when they do not intersect.
func SideOverlap(fp, region Rect, o Orientation) float64 {
	irect, ok := fp.Intersect(region)
	if !ok {
		return 0
	}
	return o.SideExtent(irect)
}

// FittingLength returns how much of a footprint laid from its forward start
// lies before region along the forward axis.
func FittingLength(fp, region Rect, o Orientation) float64 {
	irect, ok := fp.Intersect(region)
	if !ok {
		return o.ForwardExtent(fp)
	}
	if o == Vertical {
		return fp.Bottom() - irect.Bottom()
	}
	return irect.Left() - fp.Left()
}
