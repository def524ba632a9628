package prices

import (
	"context"
	"fmt"
	"time"

	"github.com/cryk/graph-services/pkg/datamodels/doacc"
	"github.com/cryk/graph-services/pkg/sparql"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

// DefaultLookback is how far back in time market data is requested when
// no explicit range is given.
const DefaultLookback = 5 * 365 * 24 * time.Hour

// batchSize limits how many price observations go into a single update
// request, to keep individual requests to the store bounded.
const batchSize = 250

func mustTerm(prefix, local string) sparql.Term {
	t, err := sparql.PrefixedName(prefix, local)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	rdfType       = mustTerm(sparql.PrefixRDF.Label, "type")
	priceDataType = mustTerm(doacc.PrefixDOACC.Label, doacc.PriceDataTypeName)
	hadPrice      = mustTerm(doacc.PrefixDOACC.Label, "hadPrice")
	currency      = mustTerm(doacc.PrefixSchema.Label, "currency")
	datePosted    = mustTerm(doacc.PrefixSchema.Label, "datePosted")
	value         = mustTerm(doacc.PrefixSchema.Label, "value")
)

var loaderPrefixes = []sparql.Prefix{
	doacc.PrefixDOACC,
	doacc.PrefixSchema,
	sparql.PrefixRDF,
}

// Loader fetches market data for a coin and stores it as price
// observations linked to a cryptocurrency in the triple store.
type Loader struct {
	store  sparql.Client
	market MarketDataClient
}

func NewLoader(store sparql.Client, market MarketDataClient) *Loader {
	return &Loader{store: store, market: market}
}

// Load requests the market chart for the named coin over the lookback
// window ending now and inserts one price observation per data point,
// linked to the cryptocurrency with the given id. It returns the number
// of observations that were stored.
func (l *Loader) Load(ctx context.Context, coin, cryptocurrencyID string) (int, error) {
	log := logging.GetFromContext(ctx)

	subject, err := sparql.PrefixedName(doacc.PrefixDOACC.Label, cryptocurrencyID)
	if err != nil {
		return 0, fmt.Errorf("invalid cryptocurrency id %q: %s", cryptocurrencyID, err.Error())
	}

	now := time.Now().UTC()
	points, err := l.market.MarketChartRange(ctx, coin, now.Add(-DefaultLookback), now)
	if err != nil {
		return 0, err
	}

	if len(points) == 0 {
		log.Info("no market data found", "coin", coin)
		return 0, nil
	}

	stored := 0

	for len(points) > 0 {
		batch := points
		if len(batch) > batchSize {
			batch = points[:batchSize]
		}
		points = points[len(batch):]

		triples := make([]sparql.TriplePattern, 0, 5*len(batch))

		for _, point := range batch {
			observation := mustTerm(doacc.PrefixDOACC.Label, uuid.NewString())

			triples = append(triples,
				sparql.TriplePattern{Subject: subject, Predicate: hadPrice, Object: observation},
				sparql.TriplePattern{Subject: observation, Predicate: rdfType, Object: priceDataType},
				sparql.TriplePattern{Subject: observation, Predicate: currency, Object: sparql.TypedLiteral("USD", sparql.XsdString)},
				sparql.TriplePattern{Subject: observation, Predicate: datePosted, Object: sparql.Integer(point.Timestamp)},
				sparql.TriplePattern{Subject: observation, Predicate: value, Object: sparql.TypedLiteral(point.Value.String(), sparql.XsdDecimal)},
			)
		}

		update := sparql.NewUpdateRequest(loaderPrefixes...).InsertData(triples...).String()

		err = l.store.Update(ctx, update)
		if err != nil {
			return stored, err
		}

		stored += len(batch)
	}

	log.Info("stored price observations", "coin", coin, "count", stored)

	return stored, nil
}
