package floorplan

import (
	"sort"

	"github.com/LucasMargets11/mirubrodigital-sub002/models"
)

// Mode selects the rendering strategy for the floor.
type Mode string

const (
	ModeGrid     Mode = "grid"
	ModeAbsolute Mode = "absolute"
)

// ResolvedFloor is the outcome of layout resolution: the strategy, the
// nodes to render under it, and the nodes the current mode cannot place.
// Unplaced nodes are never rendered at a default position; they are
// surfaced so the editor can prompt the operator to place them.
type ResolvedFloor struct {
	Mode      Mode               `json:"mode"`
	RenderSet []models.TableNode `json:"render_set"`
	Unplaced  []models.TableNode `json:"unplaced"`
}

// ResolveLayoutStrategy decides between grid and absolute rendering.
//
// Grid wins when the layout declares positive grid bounds and at least one
// table carries a grid placement; tables without one are left out of the
// render set rather than coerced. Otherwise the floor falls back to
// absolute placements, painted in ascending z-index order with table id as
// the tie-break so overlap order is stable across calls. The two-tier
// fallback exists because a floor can be mid-migration from free-form to
// grid layout.
func ResolveLayoutStrategy(nodes []models.TableNode, layout *models.Layout) ResolvedFloor {
	if layout.GridReady() {
		var gridSet, rest []models.TableNode
		for _, n := range nodes {
			if n.Grid != nil {
				gridSet = append(gridSet, n)
			} else {
				rest = append(rest, n)
			}
		}
		if len(gridSet) > 0 {
			return ResolvedFloor{Mode: ModeGrid, RenderSet: gridSet, Unplaced: rest}
		}
	}

	var absSet, rest []models.TableNode
	for _, n := range nodes {
		if n.Absolute != nil {
			absSet = append(absSet, n)
		} else {
			rest = append(rest, n)
		}
	}
	sort.SliceStable(absSet, func(i, j int) bool {
		zi, zj := absSet[i].Absolute.PaintOrder(), absSet[j].Absolute.PaintOrder()
		if zi != zj {
			return zi < zj
		}
		return absSet[i].Table.ID < absSet[j].Table.ID
	})

	return ResolvedFloor{Mode: ModeAbsolute, RenderSet: absSet, Unplaced: rest}
}
