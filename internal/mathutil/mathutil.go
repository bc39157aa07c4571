// Package mathutil provides small numeric helpers shared by the UI
// components.
package mathutil

import "cmp"

// Clamp bounds a value to the [low, high] interval. Scroll offsets, table
// selections and bar widths all funnel through it.
func Clamp[T cmp.Ordered](val, low, high T) T {
	if val < low {
		return low
	}
	if val > high {
		return high
	}
	return val
}
