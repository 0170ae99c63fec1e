package model

import "time"

// RoleBottledWater marks the inventory item consumed by customer sales.
const RoleBottledWater = "bottled_water"

type InventoryItem struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	Stock             int    `json:"stock"`
	LowStockThreshold int    `json:"lowStockThreshold"`
	Role              string `json:"role,omitempty"`
}

func (i InventoryItem) IsLowStock() bool {
	return i.Stock <= i.LowStockThreshold
}

// StockAdjustment is an append-only audit entry for every stock change.
type StockAdjustment struct {
	ID             int64     `json:"id"`
	ItemID         int64     `json:"itemId"`
	Date           time.Time `json:"date"`
	QuantityChange int       `json:"quantityChange"`
	StockAfter     int       `json:"stockAfter"`
	Reason         string    `json:"reason"`
	AdjustedBy     string    `json:"adjustedBy"`
}
