package sparql

import (
	"context"
	"errors"
	"net/http"
	"testing"

	gqlerrors "github.com/cryk/graph-services/pkg/graphql/errors"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput
var method = expects.RequestMethod

const selectResponseBody string = `{
	"head": { "vars": ["symbol", "description"] },
	"results": {
		"bindings": [
			{
				"symbol": { "type": "literal", "xml:lang": "en", "value": "BTC" },
				"description": { "type": "literal", "xml:lang": "en", "value": "A peer-to-peer currency" }
			}
		]
	}
}`

func TestSelectParsesBindingRows(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, method(http.MethodPost)),
		Returns(
			response.ContentType("application/sparql-results+json"),
			response.Code(http.StatusOK),
			response.Body([]byte(selectResponseBody)),
		),
	)
	defer s.Close()

	c := New(s.URL())

	rows, err := c.Select(context.Background(), "SELECT * WHERE { ?s ?p ?o }")

	is.NoErr(err)
	is.Equal(len(rows), 1)

	symbol, ok := rows[0].Str("symbol")
	is.True(ok)
	is.Equal(symbol, "BTC")
}

func TestSelectReportsStoreUnavailableOnErrorStatus(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(response.Code(http.StatusInternalServerError)),
	)
	defer s.Close()

	c := New(s.URL())

	_, err := c.Select(context.Background(), "SELECT * WHERE { ?s ?p ?o }")

	is.True(errors.Is(err, gqlerrors.ErrStoreUnavailable))
}

func TestSelectReportsStoreUnavailableOnMalformedResult(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.Code(http.StatusOK),
			response.Body([]byte("this is not json")),
		),
	)
	defer s.Close()

	c := New(s.URL())

	_, err := c.Select(context.Background(), "SELECT * WHERE { ?s ?p ?o }")

	is.True(errors.Is(err, gqlerrors.ErrStoreUnavailable))
}

func TestSelectReportsStoreUnavailableWhenStoreIsUnreachable(t *testing.T) {
	is := is.New(t)

	c := New("http://127.0.0.1:0/sparql")

	_, err := c.Select(context.Background(), "SELECT * WHERE { ?s ?p ?o }")

	is.True(errors.Is(err, gqlerrors.ErrStoreUnavailable))
}

func TestAskParsesBooleanResult(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, method(http.MethodPost)),
		Returns(
			response.Code(http.StatusOK),
			response.Body([]byte(`{"head": {}, "boolean": true}`)),
		),
	)
	defer s.Close()

	c := New(s.URL())

	exists, err := c.Ask(context.Background(), "ASK { ?s ?p ?o }")

	is.NoErr(err)
	is.True(exists)
}

func TestUpdateSucceedsOnOKStatus(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is,
			method(http.MethodPost),
			expects.RequestBodyContaining("update=INSERT"),
		),
		Returns(response.Code(http.StatusOK)),
	)
	defer s.Close()

	c := New(s.URL())

	err := c.Update(context.Background(), "INSERT DATA { <http://a> <http://b> <http://c> . }")

	is.NoErr(err)
}

func TestUpdateUsesSeparateUpdateEndpoint(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is,
			method(http.MethodPost),
			expects.RequestPath("/update"),
		),
		Returns(response.Code(http.StatusOK)),
	)
	defer s.Close()

	c := New("http://127.0.0.1:0/query", UpdateEndpoint(s.URL()+"/update"))

	err := c.Update(context.Background(), "INSERT DATA { <http://a> <http://b> <http://c> . }")

	is.NoErr(err)
}
