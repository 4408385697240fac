package metrics

import (
	"math"
	"time"
)

// tradingDaysPerYear is the fixed annualization constant for daily returns.
const tradingDaysPerYear = 252.0

// DefaultRollingWindow is the look-back used for rolling volatility (~3 trading months).
const DefaultRollingWindow = 63

// Series holds chronologically ordered daily closing prices for one instrument.
// Timestamps and Closes are parallel slices of equal length.
type Series struct {
	Timestamps []time.Time
	Closes     []float64
}

func (s Series) Len() int { return len(s.Closes) }

// Metric is a single computed statistic expressed as a percentage and rounded
// to two decimals. Valid is false when the input had too little data to
// compute anything meaningful; callers skip rendering in that case.
type Metric struct {
	Value float64
	Valid bool
}

// Point is one observation of a rolling statistic.
type Point struct {
	Time  time.Time
	Value float64
}

// CAGR computes the compound annual growth rate between the first and last
// close: ((last/first)^(1/years) - 1) * 100. The caller supplies a series
// already windowed to the horizon; no date filtering happens here.
func CAGR(s Series, years float64) Metric {
	if years <= 0 || s.Len() < 2 {
		return Metric{}
	}
	first := s.Closes[0]
	last := s.Closes[s.Len()-1]
	if first <= 0 {
		return Metric{}
	}
	v := (math.Pow(last/first, 1/years) - 1) * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Metric{}
	}
	return Metric{Value: round2(v), Valid: true}
}

// Volatility annualizes the standard deviation of simple daily returns:
// stddev(returns) * sqrt(252) * 100. Sample standard deviation (N-1 degrees
// of freedom) is used for an unbiased estimate on short windows.
func Volatility(s Series) Metric {
	r := Returns(s)
	if len(r) < 2 {
		return Metric{}
	}
	v := sampleStdDev(r) * math.Sqrt(tradingDaysPerYear) * 100
	return Metric{Value: round2(v), Valid: true}
}

// MaxDrawdown returns the deepest peak-to-trough decline of the cumulative
// growth curve, as a non-positive percentage. The running peak starts at the
// 1.0 baseline so a decline on the very first bar counts as a drawdown.
func MaxDrawdown(s Series) Metric {
	r := Returns(s)
	if len(r) == 0 {
		return Metric{}
	}
	growth := 1.0
	peak := 1.0
	minDD := 0.0
	for _, ret := range r {
		growth *= 1 + ret
		if growth > peak {
			peak = growth
		}
		dd := (growth/peak - 1) * 100
		if dd < minDD {
			minDD = dd
		}
	}
	return Metric{Value: round2(minDD), Valid: true}
}

// RollingVolatility computes the annualized volatility over a trailing window
// of returns, one point per day once the window is filled. Each point carries
// the timestamp of the window's final observation. Shorter history yields an
// empty result, never an error.
func RollingVolatility(s Series, window int) []Point {
	r := Returns(s)
	if window <= 0 || len(r) < window {
		return nil
	}
	out := make([]Point, 0, len(r)-window+1)
	for t := window - 1; t < len(r); t++ {
		vol := sampleStdDev(r[t-window+1:t+1]) * math.Sqrt(tradingDaysPerYear) * 100
		// return index t corresponds to the close at index t+1
		out = append(out, Point{Time: s.Timestamps[t+1], Value: round2(vol)})
	}
	return out
}

// Returns computes simple period-over-period returns close_t/close_{t-1} - 1
// for consecutive observations. A non-positive previous close yields a zero
// return rather than an Inf.
func Returns(s Series) []float64 {
	if s.Len() < 2 {
		return nil
	}
	out := make([]float64, 0, s.Len()-1)
	for i := 1; i < s.Len(); i++ {
		prev := s.Closes[i-1]
		if prev <= 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, s.Closes[i]/prev-1)
	}
	return out
}

func sampleStdDev(vals []float64) float64 {
	n := float64(len(vals))
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= n
	variance := 0.0
	for _, v := range vals {
		diff := v - mean
		variance += diff * diff
	}
	variance /= n - 1
	return math.Sqrt(variance)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
