package newsfeed

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cryk/graph-services/internal/pkg/application/news"
	"github.com/cryk/graph-services/pkg/datamodels/schemaorg"
	"github.com/matryer/is"
)

const bitcoinIRI string = "http://purl.org/net/bel-epa/doacc#Df625a2c6-3455-43b8-b2b1-83d5be6aa671"

func TestLoadConfigurationMapsSlugsToIRIs(t *testing.T) {
	is := is.New(t)

	cfgYAML := `currencies:
  bitcoin: ` + bitcoinIRI + `
`

	cfg, err := LoadConfiguration(bytes.NewBufferString(cfgYAML))

	is.NoErr(err)

	iri, ok := cfg.CryptocurrencyIRI("bitcoin")
	is.True(ok)
	is.Equal(iri, bitcoinIRI)

	_, ok = cfg.CryptocurrencyIRI("dogelon-mars")
	is.True(!ok)
}

func feedPage(articles ...Article) string {
	page, _ := json.Marshal(struct {
		Data []Article `json:"data"`
	}{Data: articles})
	return string(page)
}

func TestNewsStopsPagingAtTheEndOfTheFeed(t *testing.T) {
	is := is.New(t)

	var requestedPages []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		requestedPages = append(requestedPages, page)

		if page != "1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.Write([]byte(feedPage(
			Article{Title: "first", PublishedAt: "2022-09-26T20:45:20Z"},
			Article{Title: "second", PublishedAt: "2022-09-27T08:12:00Z"},
		)))
	}))
	defer srv.Close()

	c := NewFeedClient(WithFeedURL(srv.URL))

	articles, err := c.News(context.Background(), "bitcoin")

	is.NoErr(err)
	is.Equal(len(articles), 2)
	is.Equal(requestedPages, []string{"1", "2"})
}

func TestNewsCapsThePageCount(t *testing.T) {
	is := is.New(t)

	requestCount := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.Header().Add("Content-Type", "application/json")
		w.Write([]byte(feedPage(Article{Title: "again and again"})))
	}))
	defer srv.Close()

	c := NewFeedClient(WithFeedURL(srv.URL))

	articles, err := c.News(context.Background(), "bitcoin")

	is.NoErr(err)
	is.Equal(requestCount, 3)
	is.Equal(len(articles), 3)
}

type newsManagerMock struct {
	created []schemaorg.CreateCryptoNewsInput
	fail    error
}

func (m *newsManagerMock) Retrieve(ctx context.Context, id string) (*schemaorg.CryptoNews, error) {
	return nil, nil
}
func (m *newsManagerMock) QueryByCryptocurrency(ctx context.Context, params news.QueryParams) ([]schemaorg.CryptoNews, error) {
	return nil, nil
}
func (m *newsManagerMock) Info(ctx context.Context, params news.InfoParams) (*schemaorg.CryptoNewsInfo, error) {
	return nil, nil
}
func (m *newsManagerMock) Create(ctx context.Context, input schemaorg.CreateCryptoNewsInput) (*schemaorg.CryptoNews, error) {
	m.created = append(m.created, input)
	if m.fail != nil {
		return nil, m.fail
	}
	return &schemaorg.CryptoNews{ID: "http://schema.org/abc", Title: input.Title}, nil
}
func (m *newsManagerMock) Update(ctx context.Context, input schemaorg.UpdateCryptoNewsInput) (*schemaorg.CryptoNews, error) {
	return nil, nil
}
func (m *newsManagerMock) Remove(ctx context.Context, id string) (*schemaorg.CryptoNews, error) {
	return nil, nil
}

type feedMock struct {
	articles []Article
	err      error
}

func (m *feedMock) News(ctx context.Context, currency string) ([]Article, error) {
	return m.articles, m.err
}

func testConfig() *Config {
	return &Config{Currencies: map[string]string{"bitcoin": bitcoinIRI}}
}

func TestLoadTagsArticlesWithTheMappedCryptocurrency(t *testing.T) {
	is := is.New(t)

	svc := &newsManagerMock{}
	feed := &feedMock{articles: []Article{
		{
			Title:       "Difficulty hits a new all time high",
			Content:     "line one\nline two\r\nline three",
			PublishedAt: "2022-09-26T20:45:20Z",
			URL:         "https://example.com/difficulty",
		},
	}}

	loader := NewLoader(svc, feed, testConfig())

	count, err := loader.Load(context.Background(), "bitcoin")

	is.NoErr(err)
	is.Equal(count, 1)
	is.Equal(len(svc.created), 1)
	is.Equal(svc.created[0].About, []string{bitcoinIRI})
	is.Equal(svc.created[0].Body, "line one<br>line two<br>line three")
	is.Equal(svc.created[0].Source, "https://example.com/difficulty")
}

func TestLoadFailsForUnmappedCurrencies(t *testing.T) {
	is := is.New(t)

	svc := &newsManagerMock{}
	loader := NewLoader(svc, &feedMock{}, testConfig())

	_, err := loader.Load(context.Background(), "dogelon-mars")

	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "dogelon-mars"))
	is.Equal(len(svc.created), 0)
}
