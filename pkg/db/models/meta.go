package models

import "time"

// Meta carries the identity and audit columns every table row shares.
// Embedding it lets the store stamp ids and timestamps generically.
type Meta struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntityMeta exposes the embedded audit columns to the store.
func (m *Meta) EntityMeta() *Meta {
	return m
}
