package models

import "time"

// Table is a physical seating unit owned by the business location.
// Placement columns are nullable: a table may carry an absolute placement,
// a grid placement, both, or neither. Which one is rendered is decided at
// snapshot time by the placement resolver, never at data entry.
type Table struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Code      string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Capacity  *int   `json:"capacity,omitempty"`
	Area      string `gorm:"type:varchar(100)" json:"area,omitempty"`
	// No column defaults here: gorm would drop an explicit false on create.
	IsEnabled bool `gorm:"not null" json:"is_enabled"`
	IsPaused  bool `gorm:"not null" json:"is_paused"`

	// Absolute placement, percentages of the floor canvas.
	AbsX     *float64 `gorm:"column:abs_x" json:"abs_x,omitempty"`
	AbsY     *float64 `gorm:"column:abs_y" json:"abs_y,omitempty"`
	AbsW     *float64 `gorm:"column:abs_w" json:"abs_w,omitempty"`
	AbsH     *float64 `gorm:"column:abs_h" json:"abs_h,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	ZIndex   *int     `json:"z_index,omitempty"`

	// Grid placement, 1-based cells. Spans default to 1 when unset.
	GridX *int `json:"grid_x,omitempty"`
	GridY *int `json:"grid_y,omitempty"`
	GridW *int `json:"grid_w,omitempty"`
	GridH *int `json:"grid_h,omitempty"`

	// LocalKey is an editor-side handle for rows that have no
	// server-issued id yet. Never persisted, never serialized.
	LocalKey string `gorm:"-" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// HasAbsolutePlacement reports whether all four canvas coordinates are set.
func (t Table) HasAbsolutePlacement() bool {
	return t.AbsX != nil && t.AbsY != nil && t.AbsW != nil && t.AbsH != nil
}

// HasGridPlacement reports whether the table has a grid cell assigned.
func (t Table) HasGridPlacement() bool {
	return t.GridX != nil && t.GridY != nil
}

// AbsolutePlacement returns the resolved canvas placement, or nil.
func (t Table) AbsolutePlacement() *AbsolutePlacement {
	if !t.HasAbsolutePlacement() {
		return nil
	}
	return &AbsolutePlacement{
		X:        *t.AbsX,
		Y:        *t.AbsY,
		W:        *t.AbsW,
		H:        *t.AbsH,
		Rotation: t.Rotation,
		ZIndex:   t.ZIndex,
	}
}

// GridPlacement returns the resolved grid placement, or nil.
func (t Table) GridPlacement() *GridPlacement {
	if !t.HasGridPlacement() {
		return nil
	}
	p := &GridPlacement{X: *t.GridX, Y: *t.GridY, W: 1, H: 1}
	if t.GridW != nil {
		p.W = *t.GridW
	}
	if t.GridH != nil {
		p.H = *t.GridH
	}
	return p
}
