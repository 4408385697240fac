package charts

import (
	"errors"
	"fmt"
	"time"

	"github.com/vicanso/go-charts/v2"

	"financeCompareBot/internal/metrics"
)

const dateLabelFormat = "2006-01-02"

// PerformanceChart renders two base-100 normalized series as a comparison
// line chart. Both inputs must already be normalized; they are tail-aligned
// to the shorter series so the lines share one x axis.
func PerformanceChart(sym1, sym2 string, n1, n2 metrics.Series, years int) ([]byte, error) {
	key := fmt.Sprintf("perf:%s:%s:%d", sym1, sym2, years)
	if img, ok := cacheGet(key); ok {
		return img, nil
	}
	minLen := n1.Len()
	if n2.Len() < minLen {
		minLen = n2.Len()
	}
	if minLen < 2 {
		return nil, errors.New("not enough data points")
	}
	v1 := n1.Closes[n1.Len()-minLen:]
	v2 := n2.Closes[n2.Len()-minLen:]
	ref := n1.Timestamps
	if n2.Len() > n1.Len() {
		ref = n2.Timestamps
	}
	xLabels := dateLabels(ref[len(ref)-minLen:])

	img, err := renderLines(
		[][]float64{v1, v2},
		[]string{sym1, sym2},
		xLabels,
		fmt.Sprintf("Normalized Performance • %dY", years),
		sym1+", "+sym2+" • base 100",
	)
	if err != nil {
		return nil, err
	}
	cacheSet(key, img)
	return img, nil
}

// RollingVolatilityChart renders two rolling annualized volatility series as
// a comparison line chart, tail-aligned to the shorter series.
func RollingVolatilityChart(sym1, sym2 string, p1, p2 []metrics.Point) ([]byte, error) {
	key := fmt.Sprintf("rvol:%s:%s:%d:%d", sym1, sym2, len(p1), len(p2))
	if img, ok := cacheGet(key); ok {
		return img, nil
	}
	minLen := len(p1)
	if len(p2) < minLen {
		minLen = len(p2)
	}
	if minLen < 2 {
		return nil, errors.New("not enough data points")
	}
	p1 = p1[len(p1)-minLen:]
	p2 = p2[len(p2)-minLen:]
	v1 := make([]float64, minLen)
	v2 := make([]float64, minLen)
	times := make([]time.Time, minLen)
	for i := 0; i < minLen; i++ {
		v1[i] = p1[i].Value
		v2[i] = p2[i].Value
		times[i] = p1[i].Time
	}

	img, err := renderLines(
		[][]float64{v1, v2},
		[]string{sym1, sym2},
		dateLabels(times),
		fmt.Sprintf("Rolling Volatility • %d-day window", metrics.DefaultRollingWindow),
		"annualized %",
	)
	if err != nil {
		return nil, err
	}
	cacheSet(key, img)
	return img, nil
}

// renderLines draws named line series on a shared, padded y axis.
func renderLines(values [][]float64, names []string, xLabels []string, title, subtitle string) ([]byte, error) {
	var gmin, gmax float64
	first := true
	for _, vs := range values {
		for _, v := range vs {
			if first {
				gmin, gmax = v, v
				first = false
				continue
			}
			if v < gmin {
				gmin = v
			}
			if v > gmax {
				gmax = v
			}
		}
	}
	pad := (gmax - gmin) * 0.05
	yMin := gmin - pad
	yMax := gmax + pad

	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = names[i]
		seriesList[i].AxisIndex = 0
	}
	painter, err := charts.Render(
		charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(title, subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: xLabels, BoundaryGap: charts.FalseFlag(), SplitNumber: 10}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}

// dateLabels formats timestamps as daily x-axis labels.
func dateLabels(times []time.Time) []string {
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = t.Format(dateLabelFormat)
	}
	return out
}
