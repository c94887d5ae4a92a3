package floorplan

import (
	"fmt"
	"strings"

	"github.com/LucasMargets11/mirubrodigital-sub002/models"
)

// PlacementError reports one invalid table in a configuration, keyed by
// code so the operator can find the offending table on the editor.
type PlacementError struct {
	TableID uint   `json:"table_id,omitempty"`
	Code    string `json:"code"`
	Reason  string `json:"reason"`
}

func (e PlacementError) Error() string {
	return fmt.Sprintf("table %s: %s", e.Code, e.Reason)
}

// ValidationError aggregates all placement errors found in one
// configuration so a save can be rejected with field-level messages
// instead of failing table by table.
type ValidationError struct {
	Errors []PlacementError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, pe := range e.Errors {
		msgs[i] = pe.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// ValidateConfiguration checks a configuration before the atomic save.
// Grid placements must fit the declared grid bounds; a grid placement with
// no usable grid declared is invalid, never silently clamped or dropped.
// Absolute coordinates are not validated here: out-of-range values are
// clipped by the renderer, by contract. Returns nil when the configuration
// is saveable.
func ValidateConfiguration(cfg models.Configuration) *ValidationError {
	var errs []PlacementError
	seenCodes := make(map[string]bool, len(cfg.Tables))

	for _, t := range cfg.Tables {
		if t.Code == "" {
			errs = append(errs, PlacementError{TableID: t.ID, Code: t.Code, Reason: "code is required"})
		} else if seenCodes[strings.ToLower(t.Code)] {
			errs = append(errs, PlacementError{TableID: t.ID, Code: t.Code, Reason: "duplicate table code"})
		}
		seenCodes[strings.ToLower(t.Code)] = true

		grid := t.GridPlacement()
		if grid == nil {
			continue
		}
		if !cfg.Layout.GridReady() {
			errs = append(errs, PlacementError{
				TableID: t.ID, Code: t.Code,
				Reason: "grid placement set but layout declares no grid bounds",
			})
			continue
		}
		cols, rows := *cfg.Layout.GridCols, *cfg.Layout.GridRows
		if grid.X < 1 || grid.Y < 1 || grid.W < 1 || grid.H < 1 {
			errs = append(errs, PlacementError{
				TableID: t.ID, Code: t.Code,
				Reason: "grid cells are 1-based and spans must be positive",
			})
			continue
		}
		if grid.X+grid.W-1 > cols || grid.Y+grid.H-1 > rows {
			errs = append(errs, PlacementError{
				TableID: t.ID, Code: t.Code,
				Reason: fmt.Sprintf("grid extent %dx%d at (%d,%d) exceeds %dx%d grid", grid.W, grid.H, grid.X, grid.Y, cols, rows),
			})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
