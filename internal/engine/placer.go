package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/piwi3910/PlankLay/internal/model"
)

// ErrRowLimit is returned when a region needs more rows than
// LayoutSettings.MaxRows, which usually means the side boundary can never
// be reached from the start point.
var ErrRowLimit = errors.New("row limit reached")

// Placer lays boards row by row over one region. Within a row boards are
// laid end to end along the forward axis until one crosses the row
// boundary; that board is cross-cut to fit and its offcut is returned to
// the factory. Rows advance along the side axis until the last board of a
// row reaches the side boundary.
type Placer struct {
	factory  *BoardFactory
	region   model.Region
	settings model.LayoutSettings
	logger   *slog.Logger
}

// NewPlacer creates a placer drawing boards from factory. A nil logger
// falls back to slog.Default().
func NewPlacer(factory *BoardFactory, region model.Region, settings model.LayoutSettings, logger *slog.Logger) *Placer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Placer{
		factory:  factory,
		region:   region.Normalized(),
		settings: settings.WithDefaults(),
		logger:   logger,
	}
}

// Place runs the layout to completion. Running out of boards is not an
// error: the placements made so far are returned with Exhausted set.
func (p *Placer) Place() (model.Layout, error) {
	o := p.region.Orientation
	layout := model.Layout{
		Region:      p.region.Name,
		Orientation: o,
		Placements:  []model.PlacedBoard{},
		Discarded:   []model.Board{},
	}

	var heldStrips []*model.Board
	defer func() {
		for _, s := range heldStrips {
			p.factory.Release(s)
		}
	}()

	start := p.region.Start
	for row := 1; ; row++ {
		if row > p.settings.MaxRows {
			return layout, fmt.Errorf("%w: region %q after %d rows", ErrRowLimit, p.region.Name, p.settings.MaxRows)
		}

		firstRow := row == 1
		rowStartIdx := len(layout.Placements)
		cursor := start

		for index := 1; ; index++ {
			b, ok := p.factory.Acquire()
			if !ok {
				p.logger.Warn("placer: ran out of boards",
					"region", p.region.Name, "profile", p.factory.Profile().Name,
					"row", row, "placed", len(layout.Placements))
				layout.Exhausted = true
				if len(layout.Placements) > rowStartIdx {
					layout.Rows = row
				}
				return layout, nil
			}

			fp := model.Footprint(cursor, b.Length, b.Width, o)
			boundary, blocked := p.blocking(fp)
			if blocked {
				fit := model.FittingLength(fp, boundary, o)
				if fit <= model.Tolerance {
					p.logger.Debug("placer: no room left in row, returning board",
						"region", p.region.Name, "row", row, "board", b.String())
					p.factory.Release(b)
					break
				}
				if fit < b.Length {
					p.factory.Release(b.CutFw(fit))
				}
			}

			if firstRow && p.region.FirstRowOffset > 0 {
				if strip := p.ripFirstRow(b); strip != nil {
					switch p.settings.StripPolicy {
					case model.StripRelease:
						heldStrips = append(heldStrips, strip)
					default:
						layout.Discarded = append(layout.Discarded, *strip)
					}
				}
			}

			pb := model.NewPlacedBoard(cursor, b, o)
			pb.Row = row
			pb.Index = index
			p.logger.Debug("placer: board placed",
				"region", p.region.Name, "row", row, "index", index,
				"x", pb.Rect.X, "y", pb.Rect.Y, "w", pb.Rect.Width, "h", pb.Rect.Height,
				"board", b.String())
			layout.Placements = append(layout.Placements, pb)

			if blocked {
				break
			}
			cursor = cursor.Add(o.Forward(b.Length))
		}

		if len(layout.Placements) == rowStartIdx {
			p.logger.Warn("placer: row start already inside row boundary, stopping",
				"region", p.region.Name, "row", row, "x", start.X, "y", start.Y)
			return layout, nil
		}
		layout.Rows = row

		last := layout.Placements[len(layout.Placements)-1]
		if model.SideOverlap(last.Rect, p.region.BlockSide, o) > model.Tolerance {
			p.logger.Info("placer: region covered",
				"region", p.region.Name, "rows", layout.Rows, "boards", len(layout.Placements))
			return layout, nil
		}
		start = start.Add(o.Side(o.SideExtent(last.Rect)))
	}
}

// blocking reports whether a footprint ends the row and which boundary
// stops it. The door flank only stops boards that miss the door opening.
func (p *Placer) blocking(fp model.Rect) (model.Rect, bool) {
	o := p.region.Orientation
	if p.region.HasDoorway() {
		flank := *p.region.DoorFlank
		if model.ForwardOverlap(fp, flank, o) > model.Tolerance &&
			model.ForwardOverlap(fp, *p.region.Doorway, o) <= model.Tolerance {
			return flank, true
		}
	}
	if model.ForwardOverlap(fp, p.region.Block, o) > model.Tolerance {
		return p.region.Block, true
	}
	return model.Rect{}, false
}

// ripFirstRow narrows a first-row board by the configured offset and
// returns the strip, or nil when the board is too narrow to rip.
func (p *Placer) ripFirstRow(b *model.Board) *model.Board {
	offset := p.region.FirstRowOffset
	if b.Width <= offset+model.Tolerance {
		p.logger.Debug("placer: board too narrow for first row offset",
			"region", p.region.Name, "board", b.String(), "offset", offset)
		return nil
	}
	return b.CutLeftSide(offset)
}
