package sparql

import (
	"errors"
	"testing"

	gqlerrors "github.com/cryk/graph-services/pkg/graphql/errors"
	"github.com/matryer/is"
)

func TestIRIRefRendersAngleBrackets(t *testing.T) {
	is := is.New(t)

	term, err := IRIRef("http://schema.org/0b51b1d8-1556-4a5b-947f-5a88cfef8fc1")

	is.NoErr(err)
	is.Equal(term.String(), "<http://schema.org/0b51b1d8-1556-4a5b-947f-5a88cfef8fc1>")
}

func TestIRIRefRejectsBreakoutCharacters(t *testing.T) {
	is := is.New(t)

	for _, iri := range []string{
		"",
		"not-an-iri",
		"http://example.com/> . ?s ?p ?o . <http://x",
		"http://example.com/a b",
		"http://example.com/\"quoted\"",
		"http://example.com/{}",
	} {
		_, err := IRIRef(iri)
		is.True(errors.Is(err, gqlerrors.ErrValidation)) // iri should have been rejected
	}
}

func TestPrefixedNameAllowsEntityIDs(t *testing.T) {
	is := is.New(t)

	term, err := PrefixedName("doacc", "Df625a2c6-3455-43b8-b2b1-83d5be6aa671")

	is.NoErr(err)
	is.Equal(term.String(), "doacc:Df625a2c6-3455-43b8-b2b1-83d5be6aa671")
}

func TestPrefixedNameRejectsBreakoutCharacters(t *testing.T) {
	is := is.New(t)

	for _, local := range []string{
		"",
		"id . } ; DROP ALL",
		"id\"",
		"id>",
		"id?x",
		" id",
	} {
		_, err := PrefixedName("doacc", local)
		is.True(errors.Is(err, gqlerrors.ErrValidation)) // local name should have been rejected
	}
}

func TestLiteralEscapesQuotesAndNewlines(t *testing.T) {
	is := is.New(t)

	term := Literal("a \"quoted\"\nvalue with \\ backslash")

	is.Equal(term.String(), `"a \"quoted\"\nvalue with \\ backslash"`)
}

func TestLangLiteralCarriesLanguageTag(t *testing.T) {
	is := is.New(t)

	is.Equal(LangLiteral("Bitcoin", "en").String(), `"Bitcoin"@en`)
}

func TestTypedLiteralCarriesDatatype(t *testing.T) {
	is := is.New(t)

	term := TypedLiteral("21000000", XsdString)

	is.Equal(term.String(), `"21000000"^^<http://www.w3.org/2001/XMLSchema#string>`)
}

func TestParseDateAcceptsISODates(t *testing.T) {
	is := is.New(t)

	term, err := ParseDate("2009-01-03")

	is.NoErr(err)
	is.Equal(term.String(), `"2009-01-03"^^<http://www.w3.org/2001/XMLSchema#date>`)
}

func TestParseDateRejectsMalformedDates(t *testing.T) {
	is := is.New(t)

	for _, value := range []string{"03/01/2009", "2009-13-01", "last tuesday", `2009" . }`} {
		_, err := ParseDate(value)
		is.True(errors.Is(err, gqlerrors.ErrValidation)) // date should have been rejected
	}
}
