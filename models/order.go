package models

import (
	"fmt"
	"time"
)

// Order lifecycle statuses. A table shows as occupied while its order is
// in any status short of closed or cancelled.
const (
	OrderStatusOpen      = "open"
	OrderStatusPreparing = "preparing"
	OrderStatusServed    = "served"
	OrderStatusClosed    = "closed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Status      string    `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	TotalAmount float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	TableID     *uint     `gorm:"index" json:"table_id,omitempty"`
	Table       *Table    `gorm:"foreignKey:TableID" json:"table,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// DisplayNumber generates the short number shown on the floor.
func (o *Order) DisplayNumber() string {
	return fmt.Sprintf("ORD-%d", o.ID)
}

// IsActive reports whether the order still binds its table.
func (o *Order) IsActive() bool {
	return o.Status != OrderStatusClosed && o.Status != OrderStatusCancelled
}

// StatusLabel maps an order status to its operator-facing label.
func (o *Order) StatusLabel() string {
	switch o.Status {
	case OrderStatusOpen:
		return "Open"
	case OrderStatusPreparing:
		return "Preparing"
	case OrderStatusServed:
		return "Served"
	case OrderStatusClosed:
		return "Closed"
	case OrderStatusCancelled:
		return "Cancelled"
	}
	return o.Status
}

// ActiveOrder is the read-only snapshot view of an in-progress order bound
// to a table. The floor engine never mutates orders, it only reads them.
type ActiveOrder struct {
	ID          uint      `json:"id"`
	Number      string    `json:"number"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	TotalAmount float64   `json:"total_amount"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActiveView projects the order into its snapshot shape.
func (o *Order) ActiveView() ActiveOrder {
	return ActiveOrder{
		ID:          o.ID,
		Number:      o.DisplayNumber(),
		Status:      o.Status,
		StatusLabel: o.StatusLabel(),
		TotalAmount: o.TotalAmount,
		UpdatedAt:   o.UpdatedAt,
	}
}
