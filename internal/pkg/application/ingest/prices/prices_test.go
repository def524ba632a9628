package prices

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/cryk/graph-services/pkg/sparql"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
	"github.com/shopspring/decimal"
)

var Expects = testutils.Expects
var Returns = testutils.Returns

func TestMarketChartRangeParsesPricePairs(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is,
			expects.RequestMethod(http.MethodGet),
			expects.RequestPath("/coins/bitcoin/market_chart/range"),
			expects.QueryParamEquals("vs_currency", "usd"),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"prices": [[1640822400000, 47686.81], [1640908800000, 46458.12]]}`)),
		),
	)
	defer s.Close()

	c := NewMarketDataClient(WithBaseURL(s.URL()))

	points, err := c.MarketChartRange(context.Background(), "bitcoin", time.Unix(0, 0), time.Now())

	is.NoErr(err)
	is.Equal(len(points), 2)
	is.Equal(points[0].Timestamp, int64(1640822400000))
	is.True(points[0].Value.Equal(decimal.NewFromFloat(47686.81)))
}

func TestMarketChartRangeFailsOnErrorStatus(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, expects.AnyInput()),
		Returns(response.Code(http.StatusTooManyRequests)),
	)
	defer s.Close()

	c := NewMarketDataClient(WithBaseURL(s.URL()))

	_, err := c.MarketChartRange(context.Background(), "bitcoin", time.Unix(0, 0), time.Now())

	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "429"))
}

type mockStore struct {
	updates []string
	fail    error
}

func (m *mockStore) Select(ctx context.Context, query string) ([]sparql.BindingRow, error) {
	return nil, nil
}

func (m *mockStore) Ask(ctx context.Context, query string) (bool, error) {
	return false, nil
}

func (m *mockStore) Update(ctx context.Context, update string) error {
	m.updates = append(m.updates, update)
	return m.fail
}

type mockMarket struct {
	points []PricePoint
	err    error
}

func (m *mockMarket) MarketChartRange(ctx context.Context, coin string, from, to time.Time) ([]PricePoint, error) {
	return m.points, m.err
}

func somePoints(count int) []PricePoint {
	points := make([]PricePoint, 0, count)
	for i := 0; i < count; i++ {
		points = append(points, PricePoint{
			Timestamp: 1640822400000 + int64(i)*86400000,
			Value:     decimal.NewFromInt(int64(40000 + i)),
		})
	}
	return points
}

func TestLoadLinksObservationsToTheCryptocurrency(t *testing.T) {
	is := is.New(t)

	store := &mockStore{}
	loader := NewLoader(store, &mockMarket{points: somePoints(2)})

	count, err := loader.Load(context.Background(), "bitcoin", "Df625a2c6-3455-43b8-b2b1-83d5be6aa671")

	is.NoErr(err)
	is.Equal(count, 2)
	is.Equal(len(store.updates), 1)
	is.True(strings.Contains(store.updates[0], "doacc:Df625a2c6-3455-43b8-b2b1-83d5be6aa671 doacc:hadPrice"))
	is.True(strings.Contains(store.updates[0], "rdf:type doacc:PriceData"))
	is.True(strings.Contains(store.updates[0], "schema:datePosted 1640822400000"))
	is.True(strings.Contains(store.updates[0], `schema:value "40000"^^<http://www.w3.org/2001/XMLSchema#decimal>`))
	is.True(strings.Contains(store.updates[0], `schema:currency "USD"`))
}

func TestLoadBatchesLargeResults(t *testing.T) {
	is := is.New(t)

	store := &mockStore{}
	loader := NewLoader(store, &mockMarket{points: somePoints(601)})

	count, err := loader.Load(context.Background(), "bitcoin", "Df625a2c6-3455-43b8-b2b1-83d5be6aa671")

	is.NoErr(err)
	is.Equal(count, 601)
	is.Equal(len(store.updates), 3)
}

func TestLoadRejectsMalformedCryptocurrencyIDs(t *testing.T) {
	is := is.New(t)

	store := &mockStore{}
	loader := NewLoader(store, &mockMarket{points: somePoints(1)})

	_, err := loader.Load(context.Background(), "bitcoin", `x" . } ; DROP ALL`)

	is.True(err != nil)
	is.Equal(len(store.updates), 0)
}

func TestLoadPropagatesMarketDataFailures(t *testing.T) {
	is := is.New(t)

	store := &mockStore{}
	loader := NewLoader(store, &mockMarket{err: fmt.Errorf("market data request failed with status 500")})

	_, err := loader.Load(context.Background(), "bitcoin", "Dabc")

	is.True(err != nil)
	is.Equal(len(store.updates), 0)
}

func TestLoadStopsAtTheFirstFailedBatch(t *testing.T) {
	is := is.New(t)

	store := &mockStore{fail: errors.New("store unavailable")}
	loader := NewLoader(store, &mockMarket{points: somePoints(600)})

	count, err := loader.Load(context.Background(), "bitcoin", "Dabc")

	is.True(err != nil)
	is.Equal(count, 0)
	is.Equal(len(store.updates), 1)
}
