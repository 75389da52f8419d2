// Package timeconv converts between time.Duration and the fixed-point integer
// units used at the foreign boundary.
//
// Both directions toward the host truncate. Sub-unit remainders are dropped,
// never rounded:
//
//	Micros(8_333_333ns)     = 8_333  // tick interval, microseconds
//	Ticks100ns(1_234_567ns) = 12_345 // game time, 100ns ticks
package timeconv

import (
	"fmt"
	"math"
	"time"
)

const (
	MicrosPerSec = 1_000_000
	TicksPerSec  = 10_000_000
	NanosPerSec  = 1_000_000_000

	NanosPerMicro = NanosPerSec / MicrosPerSec
	NanosPerTick  = NanosPerSec / TicksPerSec
)

// DefaultTickRate is the tick interval assumed before a script reports one.
const DefaultTickRate = time.Second / 120

// Micros returns d in whole microseconds: secs*1_000_000 + nanos/1_000.
// Negative durations are clamped to zero.
func Micros(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	secs, nanos := split(d)
	return uint64(secs)*MicrosPerSec + uint64(nanos)/NanosPerMicro
}

// Ticks100ns returns d in whole 100-nanosecond ticks: secs*10_000_000 + nanos/100.
// The sub-second part truncates toward zero, so negative game times keep
// their sign.
func Ticks100ns(d time.Duration) int64 {
	secs, nanos := split(d)
	return secs*TicksPerSec + nanos/NanosPerTick
}

// FromSecsNanos builds a duration from a whole-seconds part and a nanosecond
// part, saturating at the bounds of time.Duration.
func FromSecsNanos(secs int64, nanos int32) time.Duration {
	const maxSecs = math.MaxInt64 / NanosPerSec
	switch {
	case secs > maxSecs:
		return math.MaxInt64
	case secs < -maxSecs:
		return math.MinInt64
	}
	base, n := secs*NanosPerSec, int64(nanos)
	switch {
	case n > 0 && base > math.MaxInt64-n:
		return math.MaxInt64
	case n < 0 && base < math.MinInt64-n:
		return math.MinInt64
	}
	return time.Duration(base + n)
}

// FromTicksPerSecond converts a rate in ticks per second into the interval
// between ticks. The rate must be finite and positive.
func FromTicksPerSecond(hz float64) (time.Duration, error) {
	if math.IsNaN(hz) || math.IsInf(hz, 0) || hz <= 0 {
		return 0, fmt.Errorf("invalid tick rate %v", hz)
	}
	secs := 1 / hz
	if secs >= float64(math.MaxInt64)/NanosPerSec {
		return math.MaxInt64, nil
	}
	return time.Duration(secs * NanosPerSec), nil
}

// split separates d into whole seconds and a remainder that shares its sign.
func split(d time.Duration) (secs, nanos int64) {
	n := int64(d)
	return n / NanosPerSec, n % NanosPerSec
}
