package entity

import "time"

// Cursor points at the last item of a page. Pages are totally ordered by
// (created_at DESC, id DESC); the id breaks timestamp ties.
type Cursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}
