package usecase

import (
	"testing"
	"time"

	"maltlog/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestCursorRoundTrip(t *testing.T) {
	original := entity.Cursor{
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		ID:        "review-42",
	}

	token := EncodeCursor(original)
	decoded, err := DecodeCursor(token)

	assert.NoError(t, err)
	assert.Equal(t, original.ID, decoded.ID)
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	cases := []string{
		"not base64!!!",
		"aGVsbG8",                  // valid base64, not JSON
		"eyJmb28iOiJiYXIifQ",       // JSON without cursor fields
		EncodeCursor(entity.Cursor{}), // zero-valued cursor
	}

	for _, token := range cases {
		_, err := DecodeCursor(token)
		assert.ErrorIs(t, err, ErrBadCursor, "token %q", token)
	}
}
