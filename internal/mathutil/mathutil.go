// Package mathutil provides small numeric helpers shared by the colour packages.
package mathutil

import "math"

// Signum returns -1, 0 or 1 matching the sign of x.
func Signum(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x == 0:
		return 0
	default:
		return 1
	}
}

// Lerp linearly interpolates between start and stop.
func Lerp(start, stop, amount float64) float64 {
	return (1.0-amount)*start + amount*stop
}

// ClampInt clamps v into [lo, hi].
func ClampInt(lo, hi, v int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp clamps v into [lo, hi].
func Clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SanitizeDegreesInt wraps degrees into [0, 360).
func SanitizeDegreesInt(degrees int) int {
	degrees %= 360
	if degrees < 0 {
		degrees += 360
	}
	return degrees
}

// SanitizeDegrees wraps degrees into [0, 360).
func SanitizeDegrees(degrees float64) float64 {
	degrees = math.Mod(degrees, 360)
	if degrees < 0 {
		degrees += 360
	}
	// math.Mod of a tiny negative value can round back up to 360.
	if degrees >= 360 {
		degrees = 0
	}
	return degrees
}

// DifferenceDegrees returns the shortest angular distance between a and b,
// in the range [0, 180].
func DifferenceDegrees(a, b float64) float64 {
	return 180 - math.Abs(math.Abs(a-b)-180)
}

// RotationDirection returns 1 if the shortest rotation from -> to is
// clockwise (increasing degrees), -1 otherwise.
func RotationDirection(from, to float64) float64 {
	increasing := SanitizeDegrees(to - from)
	if increasing <= 180 {
		return 1
	}
	return -1
}

// Matrix3 is a row-major 3x3 matrix.
type Matrix3 [3][3]float64

// MulVec multiplies m by the column vector (a, b, c).
func (m Matrix3) MulVec(a, b, c float64) (x, y, z float64) {
	x = m[0][0]*a + m[0][1]*b + m[0][2]*c
	y = m[1][0]*a + m[1][1]*b + m[1][2]*c
	z = m[2][0]*a + m[2][1]*b + m[2][2]*c
	return x, y, z
}
