package rainbowcat

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every *ConfigError.
var ErrInvalidConfig = errors.New("invalid config")

// ConfigError reports a frequency or spread that is not a finite, strictly
// positive number.
type ConfigError struct {
	Field string
	Value float64
}

func (e *ConfigError) Error() string {
	switch {
	case math.IsInf(e.Value, 0):
		return fmt.Sprintf("invalid %s: infinite", e.Field)
	case math.IsNaN(e.Value):
		return fmt.Sprintf("invalid %s: NaN", e.Field)
	default:
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
	}
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Op names the I/O step that failed.
type Op string

const (
	OpRead  Op = "read"
	OpWrite Op = "write"
	OpFlush Op = "flush"
)

// IOError is returned when reading the source or writing the sink fails.
// Processing stops at the first one; whatever was flushed before stays.
type IOError struct {
	Op  Op
	Err error
}

func (e *IOError) Error() string {
	switch e.Op {
	case OpRead:
		return "reading input: " + e.Err.Error()
	case OpFlush:
		return "flushing output: " + e.Err.Error()
	default:
		return "writing output: " + e.Err.Error()
	}
}

func (e *IOError) Unwrap() error { return e.Err }

func readErr(err error) error  { return &IOError{Op: OpRead, Err: err} }
func writeErr(err error) error { return &IOError{Op: OpWrite, Err: err} }
func flushErr(err error) error { return &IOError{Op: OpFlush, Err: err} }
