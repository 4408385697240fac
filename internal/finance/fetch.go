package finance

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"financeCompareBot/internal/metrics"
)

var yahooHosts = []string{"query1.finance.yahoo.com", "query2.finance.yahoo.com"}

var fetchBackoffs = []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, 1 * time.Second}

// FetchDailySeries fetches daily closing prices for a symbol covering the
// trailing years window. The window is the legacy calendar-day approximation
// (today+1d back years*365 days), matching the dashboard this replaces.
// A symbol with no bars returns ErrNoData rather than a transport error.
func FetchDailySeries(symbol string, years int) (metrics.Series, error) {
	if years < 1 {
		years = 1
	}
	end := time.Now().Add(24 * time.Hour)
	start := end.Add(-time.Duration(years) * 365 * 24 * time.Hour)

	var yc yahooChartResp
	var lastErr error
	for attempt := 0; attempt < len(fetchBackoffs)+1; attempt++ {
		for _, host := range yahooHosts {
			url := fmt.Sprintf("https://%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div,splits",
				host, symbol, start.Unix(), end.Unix())
			body, err := getJSONBody(url, symbol)
			if err != nil {
				lastErr = err
				continue
			}
			if err := json.Unmarshal(body, &yc); err != nil {
				lastErr = fmt.Errorf("failed to parse yahoo json: %v; body: %s", err, preview(body))
				continue
			}
			lastErr = nil
			break
		}
		if lastErr == nil {
			break
		}
		if attempt < len(fetchBackoffs) {
			time.Sleep(fetchBackoffs[attempt])
		}
	}
	if lastErr == nil {
		s, err := seriesFromChart(&yc)
		if err == nil {
			return s, nil
		}
		lastErr = err
	}

	// Spark fallback
	for attempt := 0; attempt < len(fetchBackoffs)+1; attempt++ {
		for _, host := range yahooHosts {
			url := fmt.Sprintf("https://%s/v7/finance/spark?symbols=%s&range=%s&interval=1d",
				host, strings.ToUpper(symbol), rangeForYears(years))
			body, err := getJSONBody(url, symbol)
			if err != nil {
				lastErr = err
				continue
			}
			var sp yahooSparkResp
			if err := json.Unmarshal(body, &sp); err != nil {
				lastErr = fmt.Errorf("failed to parse yahoo spark json: %v", err)
				continue
			}
			if len(sp.Spark.Result) > 0 && len(sp.Spark.Result[0].Response) > 0 {
				r := sp.Spark.Result[0].Response[0]
				return buildSeries(r.Timestamp, r.Close), nil
			}
			lastErr = ErrNoData
		}
		if attempt < len(fetchBackoffs) {
			time.Sleep(fetchBackoffs[attempt])
		}
	}
	return metrics.Series{}, lastErr
}

// getJSONBody performs one GET against a Yahoo endpoint, rejecting rate-limit
// and non-JSON responses with a short body preview in the error.
func getJSONBody(url, symbol string) ([]byte, error) {
	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", fmt.Sprintf("https://finance.yahoo.com/quote/%s", strings.ToUpper(symbol)))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read yahoo response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || strings.HasPrefix(string(body), "Edge: Too Many Requests") {
		return nil, fmt.Errorf("yahoo returned 429: Edge: Too Many Requests")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned %d: %s", resp.StatusCode, preview(body))
	}
	if strings.HasPrefix(string(body), "<") || strings.HasPrefix(string(body), "Edge:") {
		return nil, fmt.Errorf("yahoo returned non-json body: %s", preview(body))
	}
	return body, nil
}

// seriesFromChart extracts the close series from a decoded v8 chart response.
func seriesFromChart(yc *yahooChartResp) (metrics.Series, error) {
	if len(yc.Chart.Result) == 0 || len(yc.Chart.Result[0].Indicators.Quote) == 0 {
		return metrics.Series{}, ErrNoData
	}
	ts := yc.Chart.Result[0].Timestamp
	cl := yc.Chart.Result[0].Indicators.Quote[0].Close
	if len(ts) == 0 || len(cl) == 0 {
		return metrics.Series{}, ErrNoData
	}
	return buildSeries(ts, cl), nil
}

// buildSeries cleans raw bars and converts them into a metrics.Series.
func buildSeries(ts []int64, cl []float64) metrics.Series {
	ts, cl = dropNonPositive(ts, cl)
	ts, cl = filterOutliersIQR(ts, cl, 1.5, 20)
	out := metrics.Series{
		Timestamps: make([]time.Time, len(ts)),
		Closes:     cl,
	}
	for i, t := range ts {
		out.Timestamps[i] = time.Unix(t, 0).UTC()
	}
	return out
}

// rangeForYears maps a year count to the smallest Yahoo spark range covering it.
func rangeForYears(years int) string {
	switch {
	case years <= 1:
		return "1y"
	case years <= 2:
		return "2y"
	case years <= 5:
		return "5y"
	default:
		return "10y"
	}
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}
