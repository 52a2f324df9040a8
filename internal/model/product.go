package model

import "time"

// DefaultLowStockThreshold is applied when a product is created without an
// explicit threshold.
const DefaultLowStockThreshold = 5

// Product represents one inventory item tracked by the system.
type Product struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Code              string    `json:"code" db:"code"`
	Price             float64   `json:"price" db:"price"`
	Quantity          int       `json:"quantity" db:"quantity"`
	LowStockThreshold int       `json:"lowStockThreshold" db:"low_stock_threshold"`
	Category          string    `json:"category" db:"category"`
	ImageURL          string    `json:"imageUrl" db:"image_url"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductInput carries the writable fields of a product as submitted by the
// presentation layer on create and update. ID and timestamps are never
// client-supplied.
type ProductInput struct {
	Name              string  `json:"name"`
	Code              string  `json:"code"`
	Price             float64 `json:"price"`
	Quantity          int     `json:"quantity"`
	LowStockThreshold *int    `json:"lowStockThreshold"`
	Category          string  `json:"category"`
	ImageURL          string  `json:"imageUrl"`
}

// Threshold returns the effective low-stock threshold, falling back to the
// given default when the field was omitted.
func (in ProductInput) Threshold(def int) int {
	if in.LowStockThreshold == nil {
		return def
	}
	return *in.LowStockThreshold
}
