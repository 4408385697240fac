package finance

import (
	"time"

	"financeCompareBot/internal/metrics"
)

// WindowYears trims a daily series to the trailing years window, measured
// back from the series' last observation using the calendar-day
// approximation (years * 365 days). The metric engine never filters by date,
// so horizon selection for the 1/3/5-year CAGR rows happens here.
func WindowYears(s metrics.Series, years int) metrics.Series {
	if s.Len() == 0 || years < 1 {
		return s
	}
	cutoff := s.Timestamps[s.Len()-1].Add(-time.Duration(years) * 365 * 24 * time.Hour)
	for i, t := range s.Timestamps {
		if !t.Before(cutoff) {
			return metrics.Series{Timestamps: s.Timestamps[i:], Closes: s.Closes[i:]}
		}
	}
	return metrics.Series{}
}
