package pwm

import (
	"errors"
	"fmt"
)

// ErrOutOfRange matches any RangeError through errors.Is.
var ErrOutOfRange = errors.New("value out of range")

// RangeError reports an input field wider than its hardware bit width. The
// channel and prescaler selectors are 2 and 3-bit wires; native uint8 fields
// no longer enforce those widths, so the step function checks them.
type RangeError struct {
	Field string
	Value int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s out of range: %d (max %d)", e.Field, e.Value, e.Max)
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }
