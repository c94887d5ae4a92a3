package floorplan

import (
	"github.com/LucasMargets11/mirubrodigital-sub002/models"
)

// DeriveState computes the operational state of a table. Rule order is
// fixed: a disabled table is always disabled, even if upstream data still
// binds an order to it, and an active order always wins over a pause flag
// (pause only blocks new assignments, it never hides work in progress).
func DeriveState(table models.Table, order *models.ActiveOrder) models.TableState {
	switch {
	case !table.IsEnabled:
		return models.TableStateDisabled
	case order != nil:
		return models.TableStateOccupied
	case table.IsPaused:
		return models.TableStatePaused
	}
	return models.TableStateFree
}

// BuildNode assembles the derived floor view for one table. Placements and
// state are resolved here so a snapshot is always internally consistent.
func BuildNode(table models.Table, order *models.ActiveOrder) models.TableNode {
	return models.TableNode{
		Table:       table,
		Absolute:    table.AbsolutePlacement(),
		Grid:        table.GridPlacement(),
		ActiveOrder: order,
		State:       DeriveState(table, order),
	}
}

// Summarize counts nodes per state for dashboard badges. All four states
// are always present in the result, zero-valued when absent.
func Summarize(nodes []models.TableNode) map[models.TableState]int {
	counts := map[models.TableState]int{
		models.TableStateFree:     0,
		models.TableStateOccupied: 0,
		models.TableStatePaused:   0,
		models.TableStateDisabled: 0,
	}
	for _, n := range nodes {
		counts[n.State]++
	}
	return counts
}
