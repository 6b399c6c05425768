package game

import (
	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned for any coordinate outside the board
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrInvalidConfiguration is returned when a board cannot be built from
	// the requested dimensions, mine count or mine list
	ErrInvalidConfiguration = errors.New("invalid board configuration")
)

func outOfBounds(row, column int) error {
	return errors.Wrapf(ErrOutOfBounds, "(%d, %d)", row, column)
}

func invalidConfiguration(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfiguration, format, args...)
}
