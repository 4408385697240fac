package compare

import (
	"fmt"

	"financeCompareBot/internal/metrics"
)

// Direction classifies which way a comparison leans for the first instrument.
type Direction int

const (
	Neutral Direction = iota
	Favorable
	Unfavorable
)

func (d Direction) String() string {
	switch d {
	case Favorable:
		return "favorable"
	case Unfavorable:
		return "unfavorable"
	default:
		return "neutral"
	}
}

// Outcome is the derived difference between two metric values for the same
// statistic: signed difference, absolute magnitude, a three-way
// classification, and a formatted badge string with a leading sign.
type Outcome struct {
	Diff      float64
	AbsDiff   float64
	Direction Direction
	Badge     string
}

// Compare derives the outcome of a vs b. lowerIsBetter flips the orientation
// for risk metrics (volatility, drawdown magnitude) where a smaller value is
// the good side. unit is appended to the badge (e.g. "%"). Returns false when
// either metric is absent; the caller must skip the badge entirely rather
// than render a zero.
func Compare(a, b metrics.Metric, lowerIsBetter bool, unit string) (Outcome, bool) {
	if !a.Valid || !b.Valid {
		return Outcome{}, false
	}
	diff := a.Value - b.Value
	abs := diff
	if abs < 0 {
		abs = -abs
	}
	out := Outcome{Diff: diff, AbsDiff: abs}
	switch {
	case diff > 0:
		out.Direction = Favorable
		if lowerIsBetter {
			out.Direction = Unfavorable
		}
		out.Badge = fmt.Sprintf("+%.2f%s", abs, unit)
	case diff < 0:
		out.Direction = Unfavorable
		if lowerIsBetter {
			out.Direction = Favorable
		}
		out.Badge = fmt.Sprintf("-%.2f%s", abs, unit)
	default:
		out.Direction = Neutral
		out.Badge = "0" + unit
	}
	return out, true
}
