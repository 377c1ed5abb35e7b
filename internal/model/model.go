package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidRegion is returned when a region cannot be laid out as configured.
var ErrInvalidRegion = errors.New("invalid region")

// ErrInvalidSettings is returned for layout settings out of range.
var ErrInvalidSettings = errors.New("invalid layout settings")

// PlacedBoard ties an owned board to the footprint it occupies.
type PlacedBoard struct {
	Rect        Rect        `json:"rect"`
	Orientation Orientation `json:"orientation"`
	Board       *Board      `json:"board"`
	Row         int         `json:"row"`   // 1-based row within the region
	Index       int         `json:"index"` // 1-based board position within the row
}

// NewPlacedBoard computes the footprint of b laid at anchor and takes
// ownership of b.
func NewPlacedBoard(anchor Point2D, b *Board, o Orientation) PlacedBoard {
	return PlacedBoard{
		Rect:        Footprint(anchor, b.Length, b.Width, o),
		Orientation: o,
		Board:       b,
	}
}

// EdgeSegment returns where the given board edge lies on the footprint.
// The head is the forward-start edge, the tail the forward-end edge, the
// right edge is nearest the previous row and the left edge faces the next.
func (p PlacedBoard) EdgeSegment(e Edge) Segment {
	r := p.Rect
	tl := Point2D{X: r.Left(), Y: r.Top()}
	tr := Point2D{X: r.Right(), Y: r.Top()}
	br := Point2D{X: r.Right(), Y: r.Bottom()}
	bl := Point2D{X: r.Left(), Y: r.Bottom()}

	if p.Orientation == Vertical {
		switch e {
		case EdgeHead:
			return Segment{A: bl, B: br}
		case EdgeTail:
			return Segment{A: tl, B: tr}
		case EdgeLeft:
			return Segment{A: tr, B: br}
		default:
			return Segment{A: tl, B: bl}
		}
	}
	switch e {
	case EdgeHead:
		return Segment{A: tl, B: bl}
	case EdgeTail:
		return Segment{A: tr, B: br}
	case EdgeLeft:
		return Segment{A: bl, B: br}
	default:
		return Segment{A: tl, B: tr}
	}
}

// Area returns the covered floor area in square mm.
func (p PlacedBoard) Area() float64 {
	return p.Rect.Area()
}

// OffsetStripPolicy decides what happens to the strip ripped off first-row
// boards when a first-row offset is configured.
type OffsetStripPolicy string

const (
	StripDiscard OffsetStripPolicy = "discard" // Strip is dropped and reported as waste
	StripRelease OffsetStripPolicy = "release" // Strip goes onto the reuse stack
)

// Valid reports whether p is a known policy.
func (p OffsetStripPolicy) Valid() bool {
	return p == StripDiscard || p == StripRelease
}

// LayoutSettings holds the tunables of the row-layout engine.
type LayoutSettings struct {
	MaxRows     int               `json:"max_rows" yaml:"max_rows"`         // Safety bound on rows per region
	StripPolicy OffsetStripPolicy `json:"strip_policy" yaml:"strip_policy"` // Fate of first-row offset strips
}

// DefaultLayoutSettings returns the settings used when a plan does not
// override them.
func DefaultLayoutSettings() LayoutSettings {
	return LayoutSettings{
		MaxRows:     500,
		StripPolicy: StripDiscard,
	}
}

// MaxRowsLimit bounds LayoutSettings.MaxRows. No floor needs more rows,
// and it keeps a single request from laying boards without end.
const MaxRowsLimit = 10000

// Validate checks the settings. Zero values are allowed and mean the
// default.
func (s LayoutSettings) Validate() error {
	if s.MaxRows < 0 || s.MaxRows > MaxRowsLimit {
		return fmt.Errorf("%w: max rows %d must be in [0, %d]", ErrInvalidSettings, s.MaxRows, MaxRowsLimit)
	}
	if s.StripPolicy != "" && !s.StripPolicy.Valid() {
		return fmt.Errorf("%w: unknown strip policy %q", ErrInvalidSettings, s.StripPolicy)
	}
	return nil
}

// WithDefaults fills zero values from DefaultLayoutSettings.
func (s LayoutSettings) WithDefaults() LayoutSettings {
	d := DefaultLayoutSettings()
	if s.MaxRows <= 0 {
		s.MaxRows = d.MaxRows
	}
	if s.StripPolicy == "" {
		s.StripPolicy = d.StripPolicy
	}
	return s
}

// Region describes one area to cover: where the first row starts, which
// region ends a row, which region signals full coverage, and optionally a
// doorway cut into a flanking wall.
type Region struct {
	Name           string      `json:"name" yaml:"name"`
	Orientation    Orientation `json:"orientation" yaml:"orientation"`
	Start          Point2D     `json:"start" yaml:"start"`
	Block          Rect        `json:"block" yaml:"block"`                               // Ends the current row
	BlockSide      Rect        `json:"block_side" yaml:"block_side"`                     // Ends the layout
	Doorway        *Rect       `json:"doorway,omitempty" yaml:"doorway,omitempty"`       // Opening in DoorFlank
	DoorFlank      *Rect       `json:"door_flank,omitempty" yaml:"door_flank,omitempty"` // Wall around Doorway
	FirstRowOffset float64     `json:"first_row_offset" yaml:"first_row_offset"`         // Rip width for first-row boards
}

// HasDoorway reports whether the obstacle-aware blocking test applies.
func (r Region) HasDoorway() bool {
	return r.Doorway != nil && r.DoorFlank != nil
}

// Validate checks the region against the boards it will be laid with.
func (r Region) Validate(profile SupplyProfile) error {
	if !r.Orientation.Valid() {
		return fmt.Errorf("%w %q: unknown orientation %q", ErrInvalidRegion, r.Name, r.Orientation)
	}
	if r.Block.Normalize().Empty() {
		return fmt.Errorf("%w %q: block region is empty", ErrInvalidRegion, r.Name)
	}
	if r.BlockSide.Normalize().Empty() {
		return fmt.Errorf("%w %q: side block region is empty", ErrInvalidRegion, r.Name)
	}
	if (r.Doorway == nil) != (r.DoorFlank == nil) {
		return fmt.Errorf("%w %q: doorway and door flank must be given together", ErrInvalidRegion, r.Name)
	}
	if r.FirstRowOffset < 0 {
		return fmt.Errorf("%w %q: first row offset must not be negative", ErrInvalidRegion, r.Name)
	}
	if r.FirstRowOffset >= profile.DefaultWidth {
		return fmt.Errorf("%w %q: first row offset %.1f must be narrower than boards (%.1f)",
			ErrInvalidRegion, r.Name, r.FirstRowOffset, profile.DefaultWidth)
	}
	return nil
}

// Normalized returns a copy with all rectangles normalized.
func (r Region) Normalized() Region {
	r.Block = r.Block.Normalize()
	r.BlockSide = r.BlockSide.Normalize()
	if r.Doorway != nil {
		d := r.Doorway.Normalize()
		r.Doorway = &d
	}
	if r.DoorFlank != nil {
		f := r.DoorFlank.Normalize()
		r.DoorFlank = &f
	}
	return r
}

// Plan ties a supply profile to the regions laid from it, in order.
type Plan struct {
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name" yaml:"name"`
	Profile  SupplyProfile  `json:"profile" yaml:"profile"`
	Settings LayoutSettings `json:"settings" yaml:"settings"`
	Room     *Room          `json:"room,omitempty" yaml:"room,omitempty"` // Used for drawing only
	Regions  []Region       `json:"regions" yaml:"regions"`
}

func NewPlan(name string, profile SupplyProfile) Plan {
	return Plan{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Profile:  profile,
		Settings: DefaultLayoutSettings(),
		Regions:  []Region{},
	}
}

// Validate checks the profile, the settings and every region.
func (p Plan) Validate() error {
	if err := p.Profile.Validate(); err != nil {
		return err
	}
	if err := p.Settings.Validate(); err != nil {
		return err
	}
	if len(p.Regions) == 0 {
		return fmt.Errorf("%w: plan %q has no regions", ErrInvalidRegion, p.Name)
	}
	for _, r := range p.Regions {
		if err := r.Validate(p.Profile); err != nil {
			return err
		}
	}
	return nil
}

// Layout is the ordered output of laying one region.
type Layout struct {
	Region      string        `json:"region"`
	Orientation Orientation   `json:"orientation"`
	Placements  []PlacedBoard `json:"placements"`
	Rows        int           `json:"rows"`
	Exhausted   bool          `json:"exhausted"` // Supply ran out before the side boundary was reached
	Discarded   []Board       `json:"discarded"` // First-row strips dropped under StripDiscard
}

// CoveredArea returns the floor area covered by the placements.
func (l Layout) CoveredArea() float64 {
	var total float64
	for _, p := range l.Placements {
		total += p.Area()
	}
	return total
}

// Bounds returns the rectangle enclosing every placement.
func (l Layout) Bounds() Rect {
	var r Rect
	for _, p := range l.Placements {
		r = r.Union(p.Rect)
	}
	return r
}

// PlanResult holds the layouts of all regions of a plan and the state of
// the shared supply afterwards.
type PlanResult struct {
	Plan      string   `json:"plan"`
	Profile   string   `json:"profile"`
	Layouts   []Layout `json:"layouts"`
	Leftover  []Board  `json:"leftover"` // Reuse stack contents, top first
	FreshUsed int      `json:"fresh_used"`
	Reused    int      `json:"reused"`
	Remaining int      `json:"remaining"` // Fresh boards never issued
	Exhausted bool     `json:"exhausted"`
}

// BoardsPlaced returns the number of placements across all layouts.
func (pr PlanResult) BoardsPlaced() int {
	total := 0
	for _, l := range pr.Layouts {
		total += len(l.Placements)
	}
	return total
}

// CoveredArea returns the floor area covered across all layouts.
func (pr PlanResult) CoveredArea() float64 {
	var total float64
	for _, l := range pr.Layouts {
		total += l.CoveredArea()
	}
	return total
}

// Placements returns every placement across all layouts in output order.
func (pr PlanResult) Placements() []PlacedBoard {
	var all []PlacedBoard
	for _, l := range pr.Layouts {
		all = append(all, l.Placements...)
	}
	return all
}
