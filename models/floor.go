package models

import "time"

// TableState is the derived operational state of a table. It is never
// stored; it is recomputed from (is_enabled, is_paused, active order) on
// every snapshot.
type TableState string

const (
	TableStateFree     TableState = "free"
	TableStateOccupied TableState = "occupied"
	TableStatePaused   TableState = "paused"
	TableStateDisabled TableState = "disabled"
)

// TableNode is the read-only derived view the floor renders: a table, its
// resolved placements, its active order and its derived state. Nodes are
// rebuilt wholesale on every snapshot fetch, never patched in place.
type TableNode struct {
	Table       Table              `json:"table"`
	Absolute    *AbsolutePlacement `json:"absolute,omitempty"`
	Grid        *GridPlacement     `json:"grid,omitempty"`
	ActiveOrder *ActiveOrder       `json:"active_order,omitempty"`
	State       TableState         `json:"state"`
}

// FloorSnapshot is one consistent read of the floor: layout plus all
// table nodes at server_time.
type FloorSnapshot struct {
	ServerTime time.Time   `json:"server_time"`
	Layout     *Layout     `json:"layout,omitempty"`
	Tables     []TableNode `json:"tables"`
}

// Configuration is the editable pair of table list and layout. It is
// persisted as a single atomic unit: the whole configuration replaces the
// previous one on save.
type Configuration struct {
	Tables []Table `json:"tables"`
	Layout Layout  `json:"layout"`
}
