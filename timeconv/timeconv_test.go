package timeconv

import (
	"math"
	"testing"
	"time"
)

func TestMicros(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want uint64
	}{
		{"zero", 0, 0},
		{"sub micro", 999, 0},
		{"one micro", time.Microsecond, 1},
		{"default tick rate", DefaultTickRate, 8333},
		{"truncates", 1_999_999, 1999},
		{"whole seconds", 3 * time.Second, 3_000_000},
		{"seconds and nanos", 2*time.Second + 500_500, 2_000_500},
		{"negative clamps", -time.Second, 0},
		{"max", math.MaxInt64, uint64(math.MaxInt64 / 1000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Micros(tt.in); got != tt.want {
				t.Errorf("Micros(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestMicros_FloorProperty(t *testing.T) {
	for ns := int64(0); ns < 5_000_000; ns += 7919 {
		d := time.Duration(ns)
		if got, want := Micros(d), uint64(ns/1000); got != want {
			t.Fatalf("Micros(%d) = %d, want %d", ns, got, want)
		}
	}
}

func TestTicks100ns(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want int64
	}{
		{"zero", 0, 0},
		{"sub tick", 99, 0},
		{"one tick", 100, 1},
		{"one second", time.Second, 10_000_000},
		{"mixed", 1_234_567, 12_345},
		{"minutes", 90*time.Minute + 250*time.Millisecond, 54_002_500_000},
		{"negative truncates toward zero", -1_234_567, -12_345},
		{"negative whole", -2 * time.Second, -20_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ticks100ns(tt.in); got != tt.want {
				t.Errorf("Ticks100ns(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestTicks100ns_FloorProperty(t *testing.T) {
	for ns := int64(0); ns < 50_000_000; ns += 104729 {
		if got, want := Ticks100ns(time.Duration(ns)), ns/100; got != want {
			t.Fatalf("Ticks100ns(%d) = %d, want %d", ns, got, want)
		}
	}
}

func TestFromSecsNanos(t *testing.T) {
	tests := []struct {
		name  string
		secs  int64
		nanos int32
		want  time.Duration
	}{
		{"zero", 0, 0, 0},
		{"mixed", 12, 345_000_000, 12*time.Second + 345*time.Millisecond},
		{"negative", -3, -500, -3*time.Second - 500},
		{"saturates high", math.MaxInt64, 0, math.MaxInt64},
		{"saturates low", math.MinInt64, 0, math.MinInt64},
		{"nanos past max", math.MaxInt64 / NanosPerSec, 999_999_999, math.MaxInt64},
		{"nanos past min", -(math.MaxInt64 / NanosPerSec), -999_999_999, math.MinInt64},
		{"nanos within max", math.MaxInt64 / NanosPerSec, 854_775_807, math.MaxInt64},
		{"largest seconds", math.MaxInt64 / NanosPerSec, 0, time.Duration(math.MaxInt64/NanosPerSec) * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromSecsNanos(tt.secs, tt.nanos); got != tt.want {
				t.Errorf("FromSecsNanos(%d, %d) = %d, want %d", tt.secs, tt.nanos, got, tt.want)
			}
		})
	}
}

func TestFromTicksPerSecond(t *testing.T) {
	d, err := FromTicksPerSecond(120)
	if err != nil {
		t.Fatal(err)
	}
	if d != 8_333_333 {
		t.Errorf("120 Hz = %d, want 8333333", d)
	}

	d, err = FromTicksPerSecond(0.5)
	if err != nil {
		t.Fatal(err)
	}
	if d != 2*time.Second {
		t.Errorf("0.5 Hz = %v, want 2s", d)
	}

	for _, bad := range []float64{0, -60, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := FromTicksPerSecond(bad); err == nil {
			t.Errorf("FromTicksPerSecond(%v) should fail", bad)
		}
	}
}
