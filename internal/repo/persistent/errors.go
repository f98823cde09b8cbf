package persistent

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned instead of the driver's record-not-found error so
// callers don't depend on gorm.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
