// Package schemaorg holds the crypto news data model. News articles are
// stored as schema.org NewsArticle resources and reference the
// cryptocurrencies they are about through Dublin Core subject triples.
package schemaorg

import (
	"github.com/cryk/graph-services/pkg/sparql"
)

const (
	//Namespace is the schema.org namespace
	Namespace string = "http://schema.org/"
	//ElementsNamespace is the Dublin Core elements namespace
	ElementsNamespace string = "http://purl.org/dc/elements/1.1/"

	//NewsArticleTypeName is the local name of the news article entity type
	NewsArticleTypeName string = "NewsArticle"
)

var PrefixSchema = sparql.Prefix{Label: "schema", Namespace: Namespace}
var PrefixElements = sparql.Prefix{Label: "elements", Namespace: ElementsNamespace}

// Sentinels surfaced for optional fields absent in the store.
const (
	UnsetBody   string = "-"
	UnsetSource string = "unknown"
)

// CryptoNews is a news article about one or more cryptocurrencies. About
// holds the ids of the referenced cryptocurrencies and is never empty
// for a persisted article.
type CryptoNews struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	PublishedAt string   `json:"publishedAt"`
	Source      string   `json:"source"`
	About       []string `json:"about"`
}

type CreateCryptoNewsInput struct {
	Title       string   `json:"title"`
	Body        string   `json:"body,omitempty"`
	PublishedAt string   `json:"publishedAt,omitempty"`
	Source      string   `json:"source,omitempty"`
	About       []string `json:"about"`
}

// UpdateCryptoNewsInput carries a partial update: nil fields are left
// untouched in the store.
type UpdateCryptoNewsInput struct {
	ID          string   `json:"id"`
	Title       *string  `json:"title,omitempty"`
	Body        *string  `json:"body,omitempty"`
	PublishedAt *string  `json:"publishedAt,omitempty"`
	Source      *string  `json:"source,omitempty"`
	About       []string `json:"about,omitempty"`
}

// CryptoNewsInfo is a derived aggregate, recomputed per query and never
// persisted.
type CryptoNewsInfo struct {
	TotalCount int `json:"totalCount"`
}
