package news

import (
	"fmt"
	"strings"

	"github.com/cryk/graph-services/pkg/datamodels/schemaorg"
	"github.com/cryk/graph-services/pkg/sparql"
)

const (
	DefaultLimit  int = 10
	DefaultOffset int = 0
)

// QueryParams carries the arguments of a cryptoNews query.
type QueryParams struct {
	CryptocurrencyID string `json:"cryptocurrencyId"`
	Limit            int    `json:"limit"`
	Offset           int    `json:"offset"`
}

// InfoParams carries the arguments of a cryptoNewsInfo query.
type InfoParams struct {
	CryptocurrencyID string `json:"cryptocurrencyId"`
}

var queryPrefixes = []sparql.Prefix{
	schemaorg.PrefixSchema,
	sparql.PrefixRDF,
	sparql.PrefixXsd,
	schemaorg.PrefixElements,
}

func prefixBlock() string {
	var sb strings.Builder
	for _, p := range queryPrefixes {
		sb.WriteString(p.String() + "\n")
	}
	return sb.String()
}

// optionalFieldPatterns renders the OPTIONAL/COALESCE pairs for the
// nullable news fields.
func optionalFieldPatterns(subject string) string {
	return fmt.Sprintf(`    OPTIONAL { %[1]s schema:articleBody   ?tempBody        } .
    OPTIONAL { %[1]s schema:datePublished ?tempPublishedAt } .
    OPTIONAL { %[1]s schema:url           ?tempSource      } .

    BIND(COALESCE(?tempBody,        %[2]s) AS ?body       ) .
    BIND(COALESCE(?tempPublishedAt, %[3]s) AS ?publishedAt) .
    BIND(COALESCE(?tempSource,      %[3]s) AS ?source     ) .
`, subject, sparql.Literal(schemaorg.UnsetBody), sparql.Literal(schemaorg.UnsetSource))
}

// selectNewsByID builds the single article lookup. The subject
// references are part of the entity, so they join in as extra rows that
// the shaper collects into the about list.
func selectNewsByID(id string) (string, error) {
	subject, err := sparql.IRIRef(id)
	if err != nil {
		return "", err
	}

	query := prefixBlock() + fmt.Sprintf(`
SELECT ?id ?title ?body ?publishedAt ?source ?about
WHERE {
    %[1]s rdf:type         schema:NewsArticle ;
          schema:headline  ?title             ;
          elements:subject ?aboutRef          .

%[2]s
    BIND(%[3]s AS ?id) .
    BIND(STR(?aboutRef) AS ?about) .
}`, subject, optionalFieldPatterns(subject.String()), sparql.Literal(id))

	return query, nil
}

// selectNewsByCryptocurrency builds the paginated list of articles that
// reference one cryptocurrency. Pagination runs over distinct articles
// in a subquery, so that articles with several subject references do not
// eat into the page size.
func selectNewsByCryptocurrency(params QueryParams) (string, error) {
	about, err := sparql.IRIRef(params.CryptocurrencyID)
	if err != nil {
		return "", err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	offset := params.Offset
	if offset < 0 {
		offset = DefaultOffset
	}

	query := prefixBlock() + fmt.Sprintf(`
SELECT ?id ?title ?body ?publishedAt ?source ?about
WHERE {
    {
        SELECT ?newsArticle ?title
        WHERE {
            ?newsArticle rdf:type         schema:NewsArticle ;
                         schema:headline  ?title             ;
                         elements:subject %s                 .
        }
        ORDER BY ?title
        LIMIT %d
        OFFSET %d
    }

    ?newsArticle elements:subject ?aboutRef .

%s
    BIND(STR(?newsArticle) AS ?id) .
    BIND(STR(?aboutRef) AS ?about) .
}
ORDER BY ?title`, about, limit, offset, optionalFieldPatterns("?newsArticle"))

	return query, nil
}

// countNews builds the aggregate count of articles referencing one
// cryptocurrency.
func countNews(params InfoParams) (string, error) {
	about, err := sparql.IRIRef(params.CryptocurrencyID)
	if err != nil {
		return "", err
	}

	return prefixBlock() + fmt.Sprintf(`
SELECT (COUNT(DISTINCT ?newsArticle) AS ?totalCount)
WHERE {
    ?newsArticle rdf:type         schema:NewsArticle ;
                 elements:subject %s                 .
}`, about), nil
}

// askNewsExists builds the existence check used before updates.
func askNewsExists(id string) (string, error) {
	subject, err := sparql.IRIRef(id)
	if err != nil {
		return "", err
	}

	return prefixBlock() + fmt.Sprintf(`
ASK {
    %s rdf:type schema:NewsArticle .
}`, subject), nil
}
