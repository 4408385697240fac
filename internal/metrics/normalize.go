package metrics

import "time"

// Normalize rebases a series so its first close equals 100, making two
// instruments with different absolute prices directly comparable in relative
// terms. Returns false when the series is empty or the base close is zero;
// the caller skips the comparison chart in that case. The input is never
// mutated.
func Normalize(s Series) (Series, bool) {
	if s.Len() == 0 || s.Closes[0] == 0 {
		return Series{}, false
	}
	base := s.Closes[0]
	out := Series{
		Timestamps: make([]time.Time, s.Len()),
		Closes:     make([]float64, s.Len()),
	}
	copy(out.Timestamps, s.Timestamps)
	for i, v := range s.Closes {
		out.Closes[i] = v / base * 100
	}
	return out, true
}
