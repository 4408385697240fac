package finance

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Placeholder values used when a profile field is missing from the provider.
const (
	noSector      = "Sector unavailable"
	noIndustry    = "Industry unavailable"
	noCountry     = "Country unavailable"
	noDescription = "No description available."
	noValue       = "N/A"
)

// Profile holds descriptive company metadata for one symbol. Every field is
// populated; unavailable data is replaced with a placeholder so rendering
// never has to null-check.
type Profile struct {
	Symbol      string
	Name        string
	Sector      string
	Industry    string
	Country     string
	Description string
	MarketCap   string
	Currency    string
}

// FetchProfile fetches company metadata from the Yahoo quoteSummary endpoint.
func FetchProfile(symbol string) (Profile, error) {
	var lastErr error
	for attempt := 0; attempt < len(fetchBackoffs)+1; attempt++ {
		for _, host := range yahooHosts {
			url := fmt.Sprintf("https://%s/v10/finance/quoteSummary/%s?modules=assetProfile,price",
				host, strings.ToUpper(symbol))
			body, err := getJSONBody(url, symbol)
			if err != nil {
				lastErr = err
				continue
			}
			p, err := parseProfile(symbol, body)
			if err != nil {
				lastErr = err
				continue
			}
			return p, nil
		}
		if attempt < len(fetchBackoffs) {
			time.Sleep(fetchBackoffs[attempt])
		}
	}
	return Profile{}, lastErr
}

// parseProfile decodes a quoteSummary body and applies field fallbacks.
func parseProfile(symbol string, body []byte) (Profile, error) {
	var ys yahooSummaryResp
	if err := json.Unmarshal(body, &ys); err != nil {
		return Profile{}, fmt.Errorf("failed to parse yahoo summary json: %v; body: %s", err, preview(body))
	}
	if len(ys.QuoteSummary.Result) == 0 {
		return Profile{}, ErrNoData
	}
	r := ys.QuoteSummary.Result[0]

	name := r.Price.ShortName
	if name == "" {
		name = r.Price.LongName
	}
	if name == "" {
		name = strings.ToUpper(symbol)
	}
	p := Profile{
		Symbol:      strings.ToUpper(symbol),
		Name:        name,
		Sector:      orPlaceholder(r.AssetProfile.Sector, noSector),
		Industry:    orPlaceholder(r.AssetProfile.Industry, noIndustry),
		Country:     orPlaceholder(r.AssetProfile.Country, noCountry),
		Description: orPlaceholder(r.AssetProfile.LongBusinessSummary, noDescription),
		MarketCap:   FormatMarketCap(r.Price.MarketCap.Raw),
		Currency:    orPlaceholder(r.Price.Currency, noValue),
	}
	return p, nil
}

// FormatMarketCap humanizes a raw market capitalization into $x.xxT/B/M.
func FormatMarketCap(raw float64) string {
	switch {
	case raw <= 0:
		return noValue
	case raw >= 1e12:
		return fmt.Sprintf("$%.2fT", raw/1e12)
	case raw >= 1e9:
		return fmt.Sprintf("$%.2fB", raw/1e9)
	case raw >= 1e6:
		return fmt.Sprintf("$%.2fM", raw/1e6)
	default:
		return fmt.Sprintf("$%.0f", raw)
	}
}

// PlaceholderProfile builds a profile of fallback values for a symbol whose
// metadata lookup failed. The comparison still renders around it.
func PlaceholderProfile(symbol string) Profile {
	return Profile{
		Symbol:      strings.ToUpper(symbol),
		Name:        strings.ToUpper(symbol),
		Sector:      noSector,
		Industry:    noIndustry,
		Country:     noCountry,
		Description: noDescription,
		MarketCap:   noValue,
		Currency:    noValue,
	}
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}
