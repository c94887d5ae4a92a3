package models

import "time"

// Layout is the floor-level descriptor. There is one row per location; it
// is replaced atomically together with the table set on configuration save.
type Layout struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GridCols  *int      `json:"grid_cols,omitempty"`
	GridRows  *int      `json:"grid_rows,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// GridReady reports whether the layout declares usable grid bounds.
// A nil layout or non-positive bounds disable grid rendering entirely.
func (l *Layout) GridReady() bool {
	if l == nil || l.GridCols == nil || l.GridRows == nil {
		return false
	}
	return *l.GridCols > 0 && *l.GridRows > 0
}
