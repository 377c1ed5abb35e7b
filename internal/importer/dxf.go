package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/PlankLay/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// RoomResult holds the outcome of reading a room outline.
type RoomResult struct {
	Room     *model.Room
	Errors   []string
	Warnings []string
}

// segment is one LINE entity, waiting to be chained into an outline.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

type outline []model.Point2D

// ImportRoomDXF reads a room from a DXF drawing. Closed LWPOLYLINEs and
// chains of LINEs are collected; the largest outline is taken as the wall
// face. When a second outline lies inside it, the inner one is the floor
// and the gap between them is the wall thickness. Otherwise the largest
// outline is the floor and wallThickness is used.
func ImportRoomDXF(path string, wallThickness float64) RoomResult {
	result := RoomResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []outline
	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			var o outline
			for _, v := range e.Vertices {
				o = append(o, model.Point2D{X: v[0], Y: v[1]})
			}
			if len(o) >= 3 {
				outlines = append(outlines, o)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Door swings, dimensions and text are not part of the outline
		}
	}
	outlines = append(outlines, chainSegments(segments, 0.01)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return bounds(outlines[i]).Area() > bounds(outlines[j]).Area()
	})

	outer := bounds(outlines[0])
	floor := outer
	thickness := wallThickness
	for _, o := range outlines[1:] {
		inner := bounds(o)
		if inner.Empty() || !contains(outer, inner) {
			continue
		}
		floor = inner
		thickness = math.Min(
			math.Min(inner.Left()-outer.Left(), outer.Right()-inner.Right()),
			math.Min(inner.Top()-outer.Top(), outer.Bottom()-inner.Bottom()),
		)
		break
	}

	if floor.Width < model.Tolerance || floor.Height < model.Tolerance {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Room outline is degenerate (%.2f x %.2f mm)", floor.Width, floor.Height))
		return result
	}
	if thickness <= 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Wall thickness %.1f is not positive, using 1 mm", thickness))
		thickness = 1
	}
	if len(outlines) > 2 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d outlines, using the two largest", len(outlines)))
	}

	result.Room = &model.Room{
		Width:         floor.Width,
		Depth:         floor.Height,
		WallThickness: thickness,
	}
	return result
}

// bounds returns the bounding rectangle of an outline.
func bounds(o outline) model.Rect {
	if len(o) == 0 {
		return model.Rect{}
	}
	minX, minY := o[0].X, o[0].Y
	maxX, maxY := minX, minY
	for _, p := range o[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return model.NewRect(minX, minY, maxX-minX, maxY-minY)
}

// contains reports whether inner lies strictly inside outer, keeping at
// least model.Tolerance clear of every edge.
func contains(outer, inner model.Rect) bool {
	t := model.Tolerance
	core := model.NewRect(outer.X+t, outer.Y+t, outer.Width-2*t, outer.Height-2*t)
	if core.Empty() {
		return false
	}
	return core.Contains(model.Point2D{X: inner.Left(), Y: inner.Top()}) &&
		core.Contains(model.Point2D{X: inner.Right(), Y: inner.Bottom()})
}

// chainSegments joins loose segments end to end and keeps the chains that
// close on themselves.
func chainSegments(segs []segment, tolerance float64) []outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []outline

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := outline{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Only closed chains describe a room
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}

// pointsClose reports whether a and b are within tolerance on both axes.
func pointsClose(a, b model.Point2D, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
