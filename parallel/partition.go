package parallel

import (
	"fmt"

	"github.com/pdok/zcurve/mathhelp"
	"github.com/pdok/zcurve/zcurve"
)

// Range is the half-open index range [From, To) handled by one worker.
type Range struct {
	From zcurve.Index
	To   zcurve.Index
}

func (r Range) Len() uint64 {
	return r.To - r.From
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.From, r.To)
}

// Partition splits [0, total) into n contiguous ranges of total/n indices.
// The last range also takes the remainder. n is clamped to [1, total].
func Partition(total uint64, n int) []Range {
	if total == 0 {
		return nil
	}
	workers := mathhelp.Clamp(uint64(max(n, 1)), 1, total)
	per := total / workers
	ranges := make([]Range, workers)
	for i := range ranges {
		from := uint64(i) * per
		ranges[i] = Range{From: from, To: from + per}
	}
	ranges[len(ranges)-1].To = total
	return ranges
}
