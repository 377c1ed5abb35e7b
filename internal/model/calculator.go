package model

import "math"

// PurchaseEstimate holds the results of a board purchasing calculation.
type PurchaseEstimate struct {
	FloorArea         float64 `json:"floor_area"`          // Area to cover (sq mm)
	FloorAreaM2       float64 `json:"floor_area_m2"`       // Area to cover (sq m)
	BoardArea         float64 `json:"board_area"`          // Area of one fresh board (sq mm)
	BoardsNeededExact float64 `json:"boards_needed_exact"` // Exact fractional number of boards
	BoardsNeededMin   int     `json:"boards_needed_min"`   // Minimum boards (ceiling of exact)
	BoardsWithWaste   int     `json:"boards_with_waste"`   // Recommended boards including waste factor
	PacksNeeded       int     `json:"packs_needed"`        // Packs of profile capacity to buy
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 10 for 10%)
	EstimatedCost     float64 `json:"estimated_cost"`      // Total cost if pricing available
}

// sqmmPerSqm is the number of square millimeters in one square meter.
const sqmmPerSqm = 1e6

// CalculatePurchaseEstimate computes how many boards and packs to buy to
// cover floorArea with boards from profile. The first board of an opened
// pack is counted at its shortened length.
func CalculatePurchaseEstimate(floorArea float64, profile SupplyProfile, wastePercent float64) PurchaseEstimate {
	boardArea := profile.BoardArea()
	if boardArea <= 0 {
		return PurchaseEstimate{
			FloorArea:    floorArea,
			FloorAreaM2:  floorArea / sqmmPerSqm,
			WastePercent: wastePercent,
		}
	}

	// The opened pack loses part of its first board
	lost := profile.FirstBoardShortenBy * profile.DefaultWidth
	exactBoards := (floorArea + lost) / boardArea
	minBoards := int(math.Ceil(exactBoards))

	// Apply waste factor
	wasteFactor := 1.0 + (wastePercent / 100.0)
	boardsWithWaste := int(math.Ceil(exactBoards * wasteFactor))
	if boardsWithWaste < minBoards {
		boardsWithWaste = minBoards
	}

	packs := 0
	if profile.Capacity > 0 {
		packs = int(math.Ceil(float64(boardsWithWaste) / float64(profile.Capacity)))
	}

	return PurchaseEstimate{
		FloorArea:         floorArea,
		FloorAreaM2:       floorArea / sqmmPerSqm,
		BoardArea:         boardArea,
		BoardsNeededExact: exactBoards,
		BoardsNeededMin:   minBoards,
		BoardsWithWaste:   boardsWithWaste,
		PacksNeeded:       packs,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(boardsWithWaste) * profile.PricePerBoard,
	}
}
