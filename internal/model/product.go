package model

import "time"

// Product represents a catalogue product. The cart flow treats products as
// read-only; stock is never decremented by any cart or checkout operation.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Price       float64   `json:"price" db:"price"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	Category    string    `json:"category" db:"category"`
	Stock       int       `json:"stock" db:"stock"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
