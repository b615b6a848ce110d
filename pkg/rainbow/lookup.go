package rainbow

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidFrequency is returned by NewLookup for a frequency that is not a
// finite, strictly positive number.
var ErrInvalidFrequency = errors.New("frequency must be finite and positive")

// FixedShift is the number of fractional bits in a phase.
const FixedShift = 32

const twoTo64 = 1 << 64

// Lookup maps stream positions to table entries for one frequency.
//
// A phase is a 64-bit fixed-point number with FixedShift fractional bits.
// Its integer part, masked to the table size, is the table index. Callers
// convert a line's start position and per-glyph advance to phases once with
// FixedPointPhase and then stay in integer arithmetic.
type Lookup struct {
	scale float64
	cache *Cache
}

// NewLookup prepares a lookup cycling through the rainbow frequency times per
// 2π of stream position.
func NewLookup(frequency float64) (*Lookup, error) {
	if math.IsNaN(frequency) || math.IsInf(frequency, 0) || frequency <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrequency, frequency)
	}
	return &Lookup{
		scale: TableSize * (frequency / (2 * math.Pi)),
		cache: Default(),
	}, nil
}

// Cache returns the escape-sequence cache the lookup indexes into.
func (l *Lookup) Cache() *Cache { return l.cache }

// IndexForPosition converts a stream position straight to a table index. It
// does floating-point math; hot loops use phases instead.
func (l *Lookup) IndexForPosition(position float64) int {
	phase, _ := l.FixedPointPhase(position, 0)
	return IndexFromPhase(phase)
}

// ColorAt returns the table entry for a stream position.
func (l *Lookup) ColorAt(position float64) Color {
	return l.cache.Color(l.IndexForPosition(position))
}

// FixedPointPhase converts a start position and a per-glyph position advance
// to a starting phase and a phase increment.
func (l *Lookup) FixedPointPhase(start, advance float64) (phase, inc uint64) {
	s := l.scale * (1 << FixedShift)
	return toUint64(start * s), toUint64(advance * s)
}

// ColorFromPhase returns the table entry and its index for a phase.
func (l *Lookup) ColorFromPhase(phase uint64) (Color, int) {
	idx := IndexFromPhase(phase)
	return l.cache.Color(idx), idx
}

// IndexFromPhase extracts the table index from a phase.
func IndexFromPhase(phase uint64) int {
	return int((phase >> FixedShift) & tableMask)
}

// RunLength returns how many glyphs, starting with the one at phase, map to
// the same table index when the phase grows by inc per glyph. The answer is
// at least 1. A zero increment never leaves the index and yields
// math.MaxUint64.
func RunLength(phase, inc uint64) uint64 {
	if inc == 0 {
		return math.MaxUint64
	}
	hi := phase >> FixedShift
	// wraps to 2^64 - phase when hi is the last integer part
	delta := ((hi + 1) << FixedShift) - phase
	n := delta / inc
	if delta%inc != 0 {
		n++
	}
	return n
}

// toUint64 truncates a float to an integer, clamping to [0, 2^64-1]: negative
// and NaN inputs map to 0, anything at or past 2^64 (+Inf included) to
// math.MaxUint64. Streams long enough to get there stay on the last table
// entry.
func toUint64(x float64) uint64 {
	if !(x > 0) {
		return 0
	}
	if x >= twoTo64 {
		return math.MaxUint64
	}
	return uint64(x)
}
