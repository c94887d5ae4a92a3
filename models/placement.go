package models

// AbsolutePlacement positions a table on the floor canvas. Coordinates and
// sizes are percentages of the canvas (0-100). Out-of-range values are a
// display concern: the renderer clips them, the engine never rejects them.
type AbsolutePlacement struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	W        float64  `json:"w"`
	H        float64  `json:"h"`
	Rotation *float64 `json:"rotation,omitempty"`
	ZIndex   *int     `json:"z_index,omitempty"`
}

// PaintOrder returns the stacking index used for overlap ordering.
// An unset z-index paints at zero.
func (p AbsolutePlacement) PaintOrder() int {
	if p.ZIndex == nil {
		return 0
	}
	return *p.ZIndex
}

// GridPlacement positions a table on the layout grid. Cells are 1-based,
// spans are at least 1. Valid only against a layout that declares grid
// bounds; extent checks happen at save time.
type GridPlacement struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}
