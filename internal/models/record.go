package models

import "time"

// Record is the shape shared by transactions and budget items: an owned
// ledger row. UserID is always taken from the authenticated identity,
// never from client input.
type Record struct {
	ID          int64     `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecordInput carries the client-settable fields of a Record.
type RecordInput struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}
