package seq

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when an index does not name a valid position
	ErrOutOfRange = errors.New("index out of range")

	// ErrUnderflow is returned when reading or removing from an empty stack or queue
	ErrUnderflow = errors.New("container is empty")
)

func outOfRange(index, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, index, size)
}
