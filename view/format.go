package view

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/lixenwraith/vi-gravity/parameter"
)

const (
	secPerMinute = 60.0
	secPerHour   = 60 * secPerMinute
	secPerDay    = 24 * secPerHour
	secPerMonth  = 30.44 * secPerDay
	secPerYear   = 365.24 * secPerDay
)

// SecToShortString renders a duration in the largest unit that keeps the value readable
func SecToShortString(sec float64) string {
	switch {
	case sec < 1e-3:
		return fmt.Sprintf("%.0f us", sec*1e6)
	case sec < 1:
		return fmt.Sprintf("%.0f ms", sec*1e3)
	case sec < 3*secPerMinute:
		return fmt.Sprintf("%.0f sec", sec)
	case sec < 3*secPerHour:
		return fmt.Sprintf("%.0f min", sec/secPerMinute)
	case sec < 3*secPerDay:
		return fmt.Sprintf("%.1f hrs", sec/secPerHour)
	case sec < 3*secPerMonth:
		return fmt.Sprintf("%.1f days", sec/secPerDay)
	case sec < 3*365*secPerDay:
		return fmt.Sprintf("%.1f months", sec/secPerMonth)
	default:
		return fmt.Sprintf("%.1f years", sec/secPerYear)
	}
}

// NumberToString picks exponent, integer or just enough decimals to show the leading digit
func NumberToString(n float64) string {
	abs := math.Abs(n)
	switch {
	case abs < 1e-10:
		return "0"
	case abs > 1e7:
		return strconv.FormatFloat(n, 'e', 2, 64)
	case abs > 4:
		return strconv.FormatFloat(n, 'f', 0, 64)
	case abs > 0.1:
		return strconv.FormatFloat(n, 'f', 1, 64)
	}
	dec := 2
	for t := abs * 10; t < 1; t *= 10 {
		dec++
	}
	return strconv.FormatFloat(n, 'f', dec, 64)
}

// VelocityToString switches to fractions of c once relativistic effects matter
func VelocityToString(v float64) string {
	const c = parameter.C
	switch {
	case v < c/4:
		return fmt.Sprintf("%.0f m/s", v)
	case v < 0.99*c:
		return fmt.Sprintf("%.2f%% c", v/c*100)
	case v < c:
		return fmt.Sprintf("%.6f%% c", v/c*100)
	case v > c:
		return "faster than speed of light"
	default:
		return "speed of light"
	}
}

// DistanceToString is whole meters with thousands separators
func DistanceToString(m float64) string {
	return humanize.Commaf(math.Round(m)) + " m"
}

// CountToString formats entity counts
func CountToString(n int) string {
	return humanize.Comma(int64(n))
}
