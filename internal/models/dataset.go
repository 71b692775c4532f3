package models

import "time"

// Dataset is a registered table kept in the in-memory registry so clients
// can upload once and query repeatedly. ExpiresAt drives the TTL sweep.
type Dataset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Table     Table     `json:"-"`
	RowCount  int       `json:"row_count"`
	Columns   []string  `json:"columns"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
