package cryptocurrencies

import (
	"context"
	"fmt"

	"github.com/cryk/graph-services/pkg/datamodels/doacc"
	"github.com/cryk/graph-services/pkg/graphql/errors"
	"github.com/cryk/graph-services/pkg/sparql"
	"github.com/cryk/graph-services/pkg/sparql/shape"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

// CryptocurrencyManager implements the resolver contract for the
// cryptocurrency entity type. It is the only caller of the query
// builders, the triple store client and the result shaper.
type CryptocurrencyManager interface {
	Retrieve(ctx context.Context, id string) (*doacc.Cryptocurrency, error)
	Query(ctx context.Context, params QueryParams) ([]doacc.Cryptocurrency, error)
	Info(ctx context.Context, params InfoParams) (*doacc.CryptocurrenciesInfo, error)
	Create(ctx context.Context, input doacc.CreateCryptocurrencyInput) (*doacc.Cryptocurrency, error)
	Update(ctx context.Context, input doacc.UpdateCryptocurrencyInput) (*doacc.Cryptocurrency, error)
	Remove(ctx context.Context, id string) (*doacc.Cryptocurrency, error)
}

// New creates a CryptocurrencyManager backed by the supplied store client.
func New(store sparql.Client) CryptocurrencyManager {
	return &cryptocurrencySvc{store: store}
}

type cryptocurrencySvc struct {
	store sparql.Client
}

// cryptocurrencyMapping groups binding rows by symbol, collects the
// scalar columns from the first row of each group, and reconstructs the
// scheme objects and price points from the joined rows.
var cryptocurrencyMapping = shape.Definition{
	Root:    "cryptocurrencies",
	GroupBy: "symbol",
	Name:    "symbol",
	Collect: []string{"id", "description", "blockReward", "blockTime", "totalCoins", "dateFounded", "source", "website"},
	Children: []shape.Definition{
		{
			Root:    "protectionScheme",
			GroupBy: "protectionSchemeDescription",
			Name:    "description",
		},
		{
			Root:    "distributionScheme",
			GroupBy: "distributionSchemeDescription",
			Name:    "description",
		},
		{
			Root:    "priceHistory",
			GroupBy: "priceDataId",
			Name:    "id",
			Collect: []string{"priceTimestamp", "priceValue", "priceCurrency"},
		},
	},
}

func (svc *cryptocurrencySvc) Retrieve(ctx context.Context, id string) (*doacc.Cryptocurrency, error) {
	query, err := selectCryptocurrencyByID(id)
	if err != nil {
		return nil, err
	}

	rows, err := svc.store.Select(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("cryptocurrency with id %s not found", id))
	}

	shaped := shape.Convert(rows, cryptocurrencyMapping)
	entity := toCryptocurrency(shaped[0])

	return &entity, nil
}

func (svc *cryptocurrencySvc) Query(ctx context.Context, params QueryParams) ([]doacc.Cryptocurrency, error) {
	query, err := selectCryptocurrencies(params)
	if err != nil {
		return nil, err
	}

	rows, err := svc.store.Select(ctx, query)
	if err != nil {
		return nil, err
	}

	shaped := shape.Convert(rows, cryptocurrencyMapping)

	result := make([]doacc.Cryptocurrency, 0, len(shaped))
	for _, obj := range shaped {
		result = append(result, toCryptocurrency(obj))
	}

	return result, nil
}

func (svc *cryptocurrencySvc) Info(ctx context.Context, params InfoParams) (*doacc.CryptocurrenciesInfo, error) {
	query, err := countCryptocurrencies(params)
	if err != nil {
		return nil, err
	}

	rows, err := svc.store.Select(ctx, query)
	if err != nil {
		return nil, err
	}

	info := &doacc.CryptocurrenciesInfo{}
	if len(rows) > 0 {
		if count, ok := rows[0].Int("totalCount"); ok {
			info.TotalCount = int(count)
		}
	}

	return info, nil
}

func (svc *cryptocurrencySvc) Create(ctx context.Context, input doacc.CreateCryptocurrencyInput) (*doacc.Cryptocurrency, error) {
	id := uuid.NewString()

	mutation, err := insertCryptocurrency(id, input)
	if err != nil {
		return nil, err
	}

	err = svc.store.Update(ctx, mutation)
	if err != nil {
		return nil, err
	}

	logging.GetFromContext(ctx).Debug("created cryptocurrency", "entity_id", id, "symbol", input.Symbol)

	return svc.Retrieve(ctx, id)
}

func (svc *cryptocurrencySvc) Update(ctx context.Context, input doacc.UpdateCryptocurrencyInput) (*doacc.Cryptocurrency, error) {
	ask, err := askCryptocurrencyExists(input.ID)
	if err != nil {
		return nil, err
	}

	exists, err := svc.store.Ask(ctx, ask)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, errors.NewNotFoundError(fmt.Sprintf("cryptocurrency with id %s not found", input.ID))
	}

	mutation, err := updateCryptocurrency(input)
	if err != nil {
		return nil, err
	}

	err = svc.store.Update(ctx, mutation)
	if err != nil {
		return nil, err
	}

	return svc.Retrieve(ctx, input.ID)
}

func (svc *cryptocurrencySvc) Remove(ctx context.Context, id string) (*doacc.Cryptocurrency, error) {
	entity, err := svc.Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}

	mutation, err := deleteCryptocurrency(id)
	if err != nil {
		return nil, err
	}

	err = svc.store.Update(ctx, mutation)
	if err != nil {
		return nil, err
	}

	logging.GetFromContext(ctx).Debug("removed cryptocurrency", "entity_id", id)

	return entity, nil
}
