package usecase

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"maltlog/internal/entity"
)

// EncodeCursor renders a cursor as an opaque URL-safe token.
func EncodeCursor(c entity.Cursor) string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a token produced by EncodeCursor. Anything else yields
// ErrBadCursor.
func DecodeCursor(token string) (entity.Cursor, error) {
	var c entity.Cursor

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return c, fmt.Errorf("%w: %v", ErrBadCursor, err)
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%w: %v", ErrBadCursor, err)
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		return c, ErrBadCursor
	}
	return c, nil
}
