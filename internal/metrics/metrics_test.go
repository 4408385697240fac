package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mkSeries builds a daily series starting at a fixed date.
func mkSeries(closes ...float64) Series {
	base := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	s := Series{
		Timestamps: make([]time.Time, len(closes)),
		Closes:     closes,
	}
	for i := range closes {
		s.Timestamps[i] = base.AddDate(0, 0, i)
	}
	return s
}

func TestCAGR_DoublingOverOneYear(t *testing.T) {
	m := CAGR(mkSeries(100, 200), 1)
	require.True(t, m.Valid)
	assert.InDelta(t, 100.00, m.Value, 1e-9)
}

func TestCAGR_TwoYearAnnualCloses(t *testing.T) {
	// (121/100)^(1/2) - 1 = 0.1
	m := CAGR(mkSeries(100, 110, 121), 2)
	require.True(t, m.Valid)
	assert.InDelta(t, 10.00, m.Value, 1e-9)
}

func TestCAGR_InsufficientSeries(t *testing.T) {
	assert.False(t, CAGR(Series{}, 5).Valid)
	assert.False(t, CAGR(mkSeries(100), 5).Valid)
}

func TestCAGR_NonPositiveYears(t *testing.T) {
	assert.False(t, CAGR(mkSeries(100, 200), 0).Valid)
	assert.False(t, CAGR(mkSeries(100, 200), -1).Valid)
}

func TestCAGR_ZeroBasePrice(t *testing.T) {
	assert.False(t, CAGR(mkSeries(0, 200), 1).Valid)
}

func TestVolatility_ConstantPriceIsZero(t *testing.T) {
	m := Volatility(mkSeries(50, 50, 50, 50, 50))
	require.True(t, m.Valid)
	assert.Equal(t, 0.00, m.Value)
}

func TestVolatility_SteadyGrowthIsZero(t *testing.T) {
	// identical 10% returns have zero dispersion
	m := Volatility(mkSeries(100, 110, 121))
	require.True(t, m.Valid)
	assert.Equal(t, 0.00, m.Value)
}

func TestVolatility_MatchesSampleStdDev(t *testing.T) {
	s := mkSeries(100, 102, 101, 105, 103)
	r := Returns(s)
	require.Len(t, r, 4)
	mean := 0.0
	for _, v := range r {
		mean += v
	}
	mean /= float64(len(r))
	variance := 0.0
	for _, v := range r {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(r) - 1)
	want := math.Sqrt(variance) * math.Sqrt(252) * 100

	m := Volatility(s)
	require.True(t, m.Valid)
	assert.InDelta(t, want, m.Value, 0.005)
	assert.GreaterOrEqual(t, m.Value, 0.0)
}

func TestVolatility_InsufficientSeries(t *testing.T) {
	assert.False(t, Volatility(Series{}).Valid)
	assert.False(t, Volatility(mkSeries(100)).Valid)
	// one return is not enough for a sample standard deviation
	assert.False(t, Volatility(mkSeries(100, 110)).Valid)
}

func TestMaxDrawdown_MonotonicIsZero(t *testing.T) {
	m := MaxDrawdown(mkSeries(100, 100, 110, 125, 125, 140))
	require.True(t, m.Valid)
	assert.Equal(t, 0.00, m.Value)
}

func TestMaxDrawdown_HalveThenRecover(t *testing.T) {
	m := MaxDrawdown(mkSeries(100, 50, 100))
	require.True(t, m.Valid)
	assert.InDelta(t, -50.00, m.Value, 1e-9)
}

func TestMaxDrawdown_NeverPositive(t *testing.T) {
	for _, closes := range [][]float64{
		{100, 120, 90, 130, 80, 140},
		{10, 9, 8, 7},
		{100, 101, 100.5, 102},
	} {
		m := MaxDrawdown(mkSeries(closes...))
		require.True(t, m.Valid)
		assert.LessOrEqual(t, m.Value, 0.0)
	}
}

func TestMaxDrawdown_InsufficientSeries(t *testing.T) {
	assert.False(t, MaxDrawdown(Series{}).Valid)
	assert.False(t, MaxDrawdown(mkSeries(100)).Valid)
}

func TestRollingVolatility_Length(t *testing.T) {
	s := mkSeries(100, 101, 103, 102, 104, 107, 106, 109, 111, 110)
	// 9 returns, window 3 -> 9 - 3 + 1 points
	out := RollingVolatility(s, 3)
	require.Len(t, out, 7)
	// first point timestamped at the window's final observation
	assert.Equal(t, s.Timestamps[3], out[0].Time)
	assert.Equal(t, s.Timestamps[9], out[len(out)-1].Time)
}

func TestRollingVolatility_ShortHistoryIsEmpty(t *testing.T) {
	s := mkSeries(100, 101, 102, 103, 104)
	assert.Empty(t, RollingVolatility(s, DefaultRollingWindow))
	assert.Empty(t, RollingVolatility(Series{}, DefaultRollingWindow))
}

func TestRollingVolatility_Chronological(t *testing.T) {
	s := mkSeries(100, 104, 99, 107, 103, 108, 112, 109, 115, 111, 118, 120)
	out := RollingVolatility(s, 4)
	require.NotEmpty(t, out)
	for i := 1; i < len(out); i++ {
		assert.True(t, out[i].Time.After(out[i-1].Time))
		assert.GreaterOrEqual(t, out[i].Value, 0.0)
	}
}

func TestReturns_SimplePercentChange(t *testing.T) {
	r := Returns(mkSeries(100, 110, 99))
	require.Len(t, r, 2)
	assert.InDelta(t, 0.10, r[0], 1e-12)
	assert.InDelta(t, -0.10, r[1], 1e-12)
}
