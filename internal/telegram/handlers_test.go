package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financeCompareBot/internal/metrics"
)

func TestCompareRegex(t *testing.T) {
	cases := []struct {
		in    string
		sym1  string
		sym2  string
		years string
	}{
		{"/compare AAPL MSFT", "AAPL", "MSFT", ""},
		{"/compare AAPL MSFT 5", "AAPL", "MSFT", "5"},
		{"/compare@finance_bot spy qqq 10", "spy", "qqq", "10"},
		{"/compare BRK-B ^GSPC 3", "BRK-B", "^GSPC", "3"},
	}
	for _, c := range cases {
		g := reCompare.FindStringSubmatch(c.in)
		require.NotNil(t, g, c.in)
		assert.Equal(t, c.sym1, g[1], c.in)
		assert.Equal(t, c.sym2, g[2], c.in)
		assert.Equal(t, c.years, g[3], c.in)
	}

	for _, bad := range []string{"/compare AAPL", "/compare", "/comparex A B", "/compare A B five"} {
		assert.Nil(t, reCompare.FindStringSubmatch(bad), bad)
	}
}

func TestMetricLine(t *testing.T) {
	a := metrics.Metric{Value: 12.34, Valid: true}
	b := metrics.Metric{Value: 10.00, Valid: true}
	assert.Equal(t, "1Y: 12.34% vs 10.00% • 🟢 +2.34%", metricLine("1Y", a, b, false))
	assert.Equal(t, "Volatility: 12.34% vs 10.00% • 🔴 +2.34%", metricLine("Volatility", a, b, true))
	assert.Equal(t, "1Y: 10.00% vs 10.00% • 🔵 0%", metricLine("1Y", b, b, false))
}

func TestMetricLine_AbsentMetric(t *testing.T) {
	a := metrics.Metric{Value: 12.34, Valid: true}
	assert.Equal(t, "3Y: n/a", metricLine("3Y", a, metrics.Metric{}, false))
	assert.Equal(t, "5Y: n/a", metricLine("5Y", metrics.Metric{}, metrics.Metric{}, true))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "A\\_B \\*x\\* \\[y\\` z", escapeMarkdown("A_B *x* [y` z"))
	assert.Equal(t, "plain", escapeMarkdown("plain"))
}
