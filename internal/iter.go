package internal

import (
	"iter"
)

// IterRanges splits [0, total) into at most parts contiguous [start, end)
// ranges of near-equal length, in ascending order.
func IterRanges(total, parts int) iter.Seq2[int, int] {
	return func(yield func(start, end int) bool) {
		if total <= 0 {
			return
		}
		if parts < 1 {
			parts = 1
		}
		if parts > total {
			parts = total
		}
		step := (total + parts - 1) / parts
		for start := 0; start < total; start += step {
			end := min(start+step, total)
			if !yield(start, end) {
				return // Stop if the consumer stops
			}
		}
	}
}
