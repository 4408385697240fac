package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summaryFixture = `{
  "quoteSummary": {
    "result": [{
      "assetProfile": {
        "sector": "Technology",
        "industry": "Consumer Electronics",
        "country": "United States",
        "longBusinessSummary": "Apple Inc. designs smartphones and more."
      },
      "price": {
        "shortName": "Apple Inc.",
        "longName": "Apple Inc.",
        "currency": "USD",
        "marketCap": {"raw": 3100000000000}
      }
    }],
    "error": null
  }
}`

func TestParseProfile_FullFields(t *testing.T) {
	p, err := parseProfile("aapl", []byte(summaryFixture))
	require.NoError(t, err)
	assert.Equal(t, "AAPL", p.Symbol)
	assert.Equal(t, "Apple Inc.", p.Name)
	assert.Equal(t, "Technology", p.Sector)
	assert.Equal(t, "Consumer Electronics", p.Industry)
	assert.Equal(t, "United States", p.Country)
	assert.Equal(t, "Apple Inc. designs smartphones and more.", p.Description)
	assert.Equal(t, "$3.10T", p.MarketCap)
	assert.Equal(t, "USD", p.Currency)
}

func TestParseProfile_MissingFieldsGetPlaceholders(t *testing.T) {
	body := `{"quoteSummary":{"result":[{"assetProfile":{},"price":{"longName":"Some Fund"}}],"error":null}}`
	p, err := parseProfile("XYZ", []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "Some Fund", p.Name)
	assert.Equal(t, noSector, p.Sector)
	assert.Equal(t, noIndustry, p.Industry)
	assert.Equal(t, noCountry, p.Country)
	assert.Equal(t, noDescription, p.Description)
	assert.Equal(t, noValue, p.MarketCap)
	assert.Equal(t, noValue, p.Currency)
}

func TestParseProfile_EmptyResult(t *testing.T) {
	body := `{"quoteSummary":{"result":[],"error":{"code":"Not Found"}}}`
	_, err := parseProfile("NOPE", []byte(body))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestParseProfile_MalformedBody(t *testing.T) {
	_, err := parseProfile("AAPL", []byte("Edge: Too Many Requests"))
	assert.Error(t, err)
}

func TestFormatMarketCap(t *testing.T) {
	assert.Equal(t, "$3.10T", FormatMarketCap(3.1e12))
	assert.Equal(t, "$250.00B", FormatMarketCap(2.5e11))
	assert.Equal(t, "$75.50M", FormatMarketCap(7.55e7))
	assert.Equal(t, "$950000", FormatMarketCap(9.5e5))
	assert.Equal(t, noValue, FormatMarketCap(0))
	assert.Equal(t, noValue, FormatMarketCap(-5))
}

func TestPlaceholderProfile(t *testing.T) {
	p := PlaceholderProfile("msft")
	assert.Equal(t, "MSFT", p.Symbol)
	assert.Equal(t, "MSFT", p.Name)
	assert.Equal(t, noSector, p.Sector)
	assert.Equal(t, noValue, p.MarketCap)
}
