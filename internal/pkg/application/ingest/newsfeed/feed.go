// Package newsfeed loads crypto news articles from the Messari news feed
// and stores them as news article entities tagged with the cryptocurrency
// they are about.
package newsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultNewsFeedURL string = "https://data.messari.io/api/v1/news"

// maxPages caps the pagination through the feed so a single load stays
// within the rate limits of the free API tier.
const maxPages = 3

// Article is a single entry from the news feed
type Article struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt string `json:"published_at"`
	URL         string `json:"url"`
}

// FeedClient retrieves all available news articles about a named currency
type FeedClient interface {
	News(ctx context.Context, currency string) ([]Article, error)
}

type FeedClientOption func(*feedClient)

func WithFeedURL(feedURL string) FeedClientOption {
	return func(c *feedClient) {
		c.feedURL = feedURL
	}
}

func WithHTTPClient(httpClient *http.Client) FeedClientOption {
	return func(c *feedClient) {
		c.httpClient = httpClient
	}
}

// NewFeedClient creates a client for the Messari news API
func NewFeedClient(options ...FeedClientOption) FeedClient {
	c := &feedClient{
		feedURL: DefaultNewsFeedURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

type feedClient struct {
	feedURL    string
	httpClient *http.Client
}

// News pages through the feed for the named currency until the feed runs
// out of articles or the page cap is reached.
func (c *feedClient) News(ctx context.Context, currency string) ([]Article, error) {
	var articles []Article

	for page := 1; page <= maxPages; page++ {
		pageArticles, err := c.fetchPage(ctx, currency, page)
		if err != nil {
			return nil, err
		}

		if len(pageArticles) == 0 {
			break
		}

		articles = append(articles, pageArticles...)
	}

	return articles, nil
}

func (c *feedClient) fetchPage(ctx context.Context, currency string, page int) ([]Article, error) {
	pageURL := c.feedURL + "/" + url.PathEscape(currency) + "?page=" + strconv.Itoa(page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create news feed request: %s", err.Error())
	}
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request news feed: %s", err.Error())
	}
	defer resp.Body.Close()

	// the feed responds with 404 when paging past the last page
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed request failed with status %d", resp.StatusCode)
	}

	feedPage := struct {
		Data []Article `json:"data"`
	}{}

	err = json.NewDecoder(resp.Body).Decode(&feedPage)
	if err != nil {
		return nil, fmt.Errorf("failed to decode news feed response: %s", err.Error())
	}

	return feedPage.Data, nil
}
