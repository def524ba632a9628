// Package prices loads historical market data for a cryptocurrency from
// CoinGecko and stores it as price observations linked to the currency in
// the triple store.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultMarketDataURL string = "https://api.coingecko.com/api/v3"

// PricePoint is a single market data observation: a unix millisecond
// timestamp and the price in USD at that time.
type PricePoint struct {
	Timestamp int64
	Value     decimal.Decimal
}

// MarketDataClient retrieves historical market data for a named coin
type MarketDataClient interface {
	MarketChartRange(ctx context.Context, coin string, from, to time.Time) ([]PricePoint, error)
}

type MarketDataClientOption func(*marketDataClient)

func WithBaseURL(baseURL string) MarketDataClientOption {
	return func(c *marketDataClient) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(httpClient *http.Client) MarketDataClientOption {
	return func(c *marketDataClient) {
		c.httpClient = httpClient
	}
}

// NewMarketDataClient creates a client for the CoinGecko market data API
func NewMarketDataClient(options ...MarketDataClientOption) MarketDataClient {
	c := &marketDataClient{
		baseURL: DefaultMarketDataURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

type marketDataClient struct {
	baseURL    string
	httpClient *http.Client
}

func (c *marketDataClient) MarketChartRange(ctx context.Context, coin string, from, to time.Time) ([]PricePoint, error) {
	rangeURL := fmt.Sprintf(
		"%s/coins/%s/market_chart/range?vs_currency=usd&from=%d&to=%d",
		c.baseURL, url.PathEscape(coin), from.Unix(), to.Unix(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rangeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create market data request: %s", err.Error())
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request market data: %s", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market data request failed with status %d", resp.StatusCode)
	}

	chart := struct {
		Prices [][]json.Number `json:"prices"`
	}{}

	err = json.NewDecoder(resp.Body).Decode(&chart)
	if err != nil {
		return nil, fmt.Errorf("failed to decode market data response: %s", err.Error())
	}

	points := make([]PricePoint, 0, len(chart.Prices))

	for _, pair := range chart.Prices {
		if len(pair) != 2 {
			continue
		}

		timestamp, err := decimal.NewFromString(pair[0].String())
		if err != nil {
			return nil, fmt.Errorf("malformed timestamp %q in market data", pair[0].String())
		}

		value, err := decimal.NewFromString(pair[1].String())
		if err != nil {
			return nil, fmt.Errorf("malformed price %q in market data", pair[1].String())
		}

		points = append(points, PricePoint{
			Timestamp: timestamp.IntPart(),
			Value:     value,
		})
	}

	return points, nil
}
