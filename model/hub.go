package model

import "time"

// Hub is a physical pickup/drop-off point. Seeded by an operator
// script, static at runtime.
type Hub struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	ContactPhone string    `json:"contact_phone"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	Geohash      string    `json:"geohash"`
	CreatedAt    time.Time `json:"created_at"`
}
