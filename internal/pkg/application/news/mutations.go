package news

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cryk/graph-services/pkg/datamodels/schemaorg"
	"github.com/cryk/graph-services/pkg/graphql/errors"
	"github.com/cryk/graph-services/pkg/sparql"
)

// mustTerm renders a prefixed name from trusted, compile-time constants.
func mustTerm(prefix, local string) sparql.Term {
	t, err := sparql.PrefixedName(prefix, local)
	if err != nil {
		panic(err)
	}
	return t
}

var rdfType = mustTerm(sparql.PrefixRDF.Label, "type")
var schemaNewsArticle = mustTerm(schemaorg.PrefixSchema.Label, schemaorg.NewsArticleTypeName)
var schemaHeadline = mustTerm(schemaorg.PrefixSchema.Label, "headline")
var schemaArticleBody = mustTerm(schemaorg.PrefixSchema.Label, "articleBody")
var schemaDatePublished = mustTerm(schemaorg.PrefixSchema.Label, "datePublished")
var schemaURL = mustTerm(schemaorg.PrefixSchema.Label, "url")
var elementsSubject = mustTerm(schemaorg.PrefixElements.Label, "subject")

// iriFromURL validates an untrusted URL before it is embedded as an IRI.
func iriFromURL(raw string) (sparql.Term, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return sparql.Term{}, errors.NewValidationError(fmt.Sprintf("%q is not a valid http(s) url", raw))
	}

	return sparql.IRIRef(raw)
}

func publishedAtLiteral(value string) (sparql.Term, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return sparql.Term{}, errors.NewValidationError(fmt.Sprintf("%q is not a valid RFC 3339 datetime", value))
	}

	return sparql.TypedLiteral(t.UTC().Format(time.RFC3339), sparql.XsdDateTime), nil
}

func aboutTriples(subject sparql.Term, about []string) ([]sparql.TriplePattern, error) {
	triples := make([]sparql.TriplePattern, 0, len(about))

	for _, ref := range about {
		object, err := sparql.IRIRef(ref)
		if err != nil {
			return nil, err
		}

		triples = append(triples, sparql.TriplePattern{Subject: subject, Predicate: elementsSubject, Object: object})
	}

	return triples, nil
}

// insertNews builds the INSERT DATA mutation for a new article. The
// about set must reference at least one cryptocurrency; the store has no
// foreign key to enforce that, so it is checked here.
func insertNews(id string, input schemaorg.CreateCryptoNewsInput) (string, error) {
	if strings.TrimSpace(input.Title) == "" {
		return "", errors.NewValidationError("title must not be empty")
	}

	if len(input.About) == 0 {
		return "", errors.NewValidationError("a news article must be about at least one cryptocurrency")
	}

	subject, err := sparql.IRIRef(id)
	if err != nil {
		return "", err
	}

	triples := []sparql.TriplePattern{
		{Subject: subject, Predicate: rdfType, Object: schemaNewsArticle},
		{Subject: subject, Predicate: schemaHeadline, Object: sparql.LangLiteral(input.Title, "en")},
	}

	if input.Body != "" {
		triples = append(triples, sparql.TriplePattern{Subject: subject, Predicate: schemaArticleBody, Object: sparql.LangLiteral(input.Body, "en")})
	}

	publishedAt := input.PublishedAt
	if publishedAt == "" {
		publishedAt = time.Now().UTC().Format(time.RFC3339)
	}

	published, err := publishedAtLiteral(publishedAt)
	if err != nil {
		return "", err
	}
	triples = append(triples, sparql.TriplePattern{Subject: subject, Predicate: schemaDatePublished, Object: published})

	if input.Source != "" {
		source, err := iriFromURL(input.Source)
		if err != nil {
			return "", err
		}
		triples = append(triples, sparql.TriplePattern{Subject: subject, Predicate: schemaURL, Object: source})
	}

	about, err := aboutTriples(subject, input.About)
	if err != nil {
		return "", err
	}
	triples = append(triples, about...)

	return sparql.NewUpdateRequest(queryPrefixes...).InsertData(triples...).String(), nil
}

// updateNews builds the partial update mutation: one DELETE WHERE per
// supplied field followed by a single INSERT DATA. A supplied about set
// replaces the stored set as a whole.
func updateNews(input schemaorg.UpdateCryptoNewsInput) (string, error) {
	subject, err := sparql.IRIRef(input.ID)
	if err != nil {
		return "", err
	}

	request := sparql.NewUpdateRequest(queryPrefixes...)
	var inserts []sparql.TriplePattern

	replace := func(predicate sparql.Term, object sparql.Term) {
		request.DeleteWhere(sparql.TriplePattern{Subject: subject, Predicate: predicate, Object: sparql.Var("old")})
		inserts = append(inserts, sparql.TriplePattern{Subject: subject, Predicate: predicate, Object: object})
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return "", errors.NewValidationError("title must not be empty")
		}
		replace(schemaHeadline, sparql.LangLiteral(*input.Title, "en"))
	}

	if input.Body != nil {
		replace(schemaArticleBody, sparql.LangLiteral(*input.Body, "en"))
	}

	if input.PublishedAt != nil {
		published, err := publishedAtLiteral(*input.PublishedAt)
		if err != nil {
			return "", err
		}
		replace(schemaDatePublished, published)
	}

	if input.Source != nil {
		source, err := iriFromURL(*input.Source)
		if err != nil {
			return "", err
		}
		replace(schemaURL, source)
	}

	if len(input.About) > 0 {
		about, err := aboutTriples(subject, input.About)
		if err != nil {
			return "", err
		}

		request.DeleteWhere(sparql.TriplePattern{Subject: subject, Predicate: elementsSubject, Object: sparql.Var("old")})
		inserts = append(inserts, about...)
	}

	if len(inserts) == 0 {
		return "", errors.NewValidationError("update must supply at least one field")
	}

	return request.InsertData(inserts...).String(), nil
}

// deleteNews builds the mutation removing every triple whose subject is
// the article id.
func deleteNews(id string) (string, error) {
	subject, err := sparql.IRIRef(id)
	if err != nil {
		return "", err
	}

	return sparql.NewUpdateRequest().
		DeleteWhere(sparql.TriplePattern{Subject: subject, Predicate: sparql.Var("p"), Object: sparql.Var("o")}).
		String(), nil
}
