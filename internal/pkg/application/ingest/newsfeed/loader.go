package newsfeed

import (
	"context"
	"fmt"
	"strings"

	"github.com/cryk/graph-services/internal/pkg/application/news"
	"github.com/cryk/graph-services/pkg/datamodels/schemaorg"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// the web client renders article bodies as a single line of markup
var lineBreaks = strings.NewReplacer("\r\n", "<br>", "\r", "<br>", "\n", "<br>")

// Loader fetches news articles about a currency from the feed and stores
// them through the news service.
type Loader struct {
	svc  news.NewsManager
	feed FeedClient
	cfg  *Config
}

func NewLoader(svc news.NewsManager, feed FeedClient, cfg *Config) *Loader {
	return &Loader{svc: svc, feed: feed, cfg: cfg}
}

// Load fetches the available articles about the named currency and creates
// one news entity per article, tagged with the cryptocurrency the currency
// slug maps to. It returns the number of articles that were stored.
func (l *Loader) Load(ctx context.Context, currency string) (int, error) {
	log := logging.GetFromContext(ctx)

	about, ok := l.cfg.CryptocurrencyIRI(currency)
	if !ok {
		return 0, fmt.Errorf("currency %q is not mapped to a cryptocurrency", currency)
	}

	articles, err := l.feed.News(ctx, currency)
	if err != nil {
		return 0, err
	}

	stored := 0

	for _, article := range articles {
		input := schemaorg.CreateCryptoNewsInput{
			Title:       article.Title,
			Body:        lineBreaks.Replace(article.Content),
			PublishedAt: article.PublishedAt,
			Source:      article.URL,
			About:       []string{about},
		}

		_, err := l.svc.Create(ctx, input)
		if err != nil {
			log.Error("failed to store news article", "title", article.Title, "err", err.Error())
			return stored, err
		}

		stored++
	}

	log.Info("stored news articles", "currency", currency, "count", stored)

	return stored, nil
}
