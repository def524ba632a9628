package news

import (
	"context"
	"fmt"

	"github.com/cryk/graph-services/pkg/datamodels/schemaorg"
	"github.com/cryk/graph-services/pkg/graphql/errors"
	"github.com/cryk/graph-services/pkg/sparql"
	"github.com/cryk/graph-services/pkg/sparql/shape"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

// NewsManager implements the resolver contract for the crypto news
// entity type.
type NewsManager interface {
	Retrieve(ctx context.Context, id string) (*schemaorg.CryptoNews, error)
	QueryByCryptocurrency(ctx context.Context, params QueryParams) ([]schemaorg.CryptoNews, error)
	Info(ctx context.Context, params InfoParams) (*schemaorg.CryptoNewsInfo, error)
	Create(ctx context.Context, input schemaorg.CreateCryptoNewsInput) (*schemaorg.CryptoNews, error)
	Update(ctx context.Context, input schemaorg.UpdateCryptoNewsInput) (*schemaorg.CryptoNews, error)
	Remove(ctx context.Context, id string) (*schemaorg.CryptoNews, error)
}

// New creates a NewsManager backed by the supplied store client.
func New(store sparql.Client) NewsManager {
	return &newsSvc{store: store}
}

type newsSvc struct {
	store sparql.Client
}

// newsMapping groups binding rows by article id and collects the subject
// references into the about list.
var newsMapping = shape.Definition{
	Root:    "cryptoNews",
	GroupBy: "id",
	Name:    "id",
	Collect: []string{"title", "body", "publishedAt", "source"},
	Children: []shape.Definition{
		{
			Root:    "about",
			GroupBy: "about",
			Name:    "id",
		},
	},
}

func toCryptoNews(obj map[string]any) schemaorg.CryptoNews {
	str := func(key string) string {
		if v, ok := obj[key].(string); ok {
			return v
		}
		return ""
	}

	entity := schemaorg.CryptoNews{
		ID:          str("id"),
		Title:       str("title"),
		Body:        str("body"),
		PublishedAt: str("publishedAt"),
		Source:      str("source"),
	}

	if about, ok := obj["about"].([]map[string]any); ok {
		for _, ref := range about {
			if id, ok := ref["id"].(string); ok {
				entity.About = append(entity.About, id)
			}
		}
	}

	return entity
}

func (svc *newsSvc) Retrieve(ctx context.Context, id string) (*schemaorg.CryptoNews, error) {
	query, err := selectNewsByID(id)
	if err != nil {
		return nil, err
	}

	rows, err := svc.store.Select(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("crypto news with id %s not found", id))
	}

	shaped := shape.Convert(rows, newsMapping)
	entity := toCryptoNews(shaped[0])

	return &entity, nil
}

func (svc *newsSvc) QueryByCryptocurrency(ctx context.Context, params QueryParams) ([]schemaorg.CryptoNews, error) {
	query, err := selectNewsByCryptocurrency(params)
	if err != nil {
		return nil, err
	}

	rows, err := svc.store.Select(ctx, query)
	if err != nil {
		return nil, err
	}

	shaped := shape.Convert(rows, newsMapping)

	result := make([]schemaorg.CryptoNews, 0, len(shaped))
	for _, obj := range shaped {
		result = append(result, toCryptoNews(obj))
	}

	return result, nil
}

func (svc *newsSvc) Info(ctx context.Context, params InfoParams) (*schemaorg.CryptoNewsInfo, error) {
	query, err := countNews(params)
	if err != nil {
		return nil, err
	}

	rows, err := svc.store.Select(ctx, query)
	if err != nil {
		return nil, err
	}

	info := &schemaorg.CryptoNewsInfo{}
	if len(rows) > 0 {
		if count, ok := rows[0].Int("totalCount"); ok {
			info.TotalCount = int(count)
		}
	}

	return info, nil
}

func (svc *newsSvc) Create(ctx context.Context, input schemaorg.CreateCryptoNewsInput) (*schemaorg.CryptoNews, error) {
	id := schemaorg.Namespace + uuid.NewString()

	mutation, err := insertNews(id, input)
	if err != nil {
		return nil, err
	}

	err = svc.store.Update(ctx, mutation)
	if err != nil {
		return nil, err
	}

	logging.GetFromContext(ctx).Debug("created crypto news", "entity_id", id)

	return svc.Retrieve(ctx, id)
}

func (svc *newsSvc) Update(ctx context.Context, input schemaorg.UpdateCryptoNewsInput) (*schemaorg.CryptoNews, error) {
	ask, err := askNewsExists(input.ID)
	if err != nil {
		return nil, err
	}

	exists, err := svc.store.Ask(ctx, ask)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, errors.NewNotFoundError(fmt.Sprintf("crypto news with id %s not found", input.ID))
	}

	mutation, err := updateNews(input)
	if err != nil {
		return nil, err
	}

	err = svc.store.Update(ctx, mutation)
	if err != nil {
		return nil, err
	}

	return svc.Retrieve(ctx, input.ID)
}

func (svc *newsSvc) Remove(ctx context.Context, id string) (*schemaorg.CryptoNews, error) {
	entity, err := svc.Retrieve(ctx, id)
	if err != nil {
		return nil, err
	}

	mutation, err := deleteNews(id)
	if err != nil {
		return nil, err
	}

	err = svc.store.Update(ctx, mutation)
	if err != nil {
		return nil, err
	}

	logging.GetFromContext(ctx).Debug("removed crypto news", "entity_id", id)

	return entity, nil
}
