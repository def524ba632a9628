package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/cryk/graph-services/pkg/graphql/errors"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultEndpoint is where a locally deployed Blazegraph instance serves
// the SPARQL protocol.
const DefaultEndpoint string = "http://localhost:9999/blazegraph/sparql"

// Client issues SELECT, ASK and UPDATE operations against a SPARQL 1.1
// protocol endpoint and returns raw binding rows. It performs no result
// shaping and no retries: transport failures surface as store
// unavailability to the caller.
type Client interface {
	Select(ctx context.Context, query string) ([]BindingRow, error)
	Ask(ctx context.Context, query string) (bool, error)
	Update(ctx context.Context, update string) error
}

func Debug(enabled string) func(*storeClient) {
	return func(c *storeClient) {
		c.debug = (enabled == "true")
	}
}

// UpdateEndpoint overrides the endpoint used for UPDATE requests when the
// store exposes a separate one.
func UpdateEndpoint(endpoint string) func(*storeClient) {
	return func(c *storeClient) {
		c.updateEndpoint = endpoint
	}
}

func HTTPClient(httpClient *http.Client) func(*storeClient) {
	return func(c *storeClient) {
		c.httpClient = httpClient
	}
}

// New creates a Client against the supplied endpoint URL. By default the
// same endpoint serves both queries and updates, which is how Blazegraph
// is deployed in this system.
func New(endpoint string, options ...func(*storeClient)) Client {
	c := &storeClient{
		queryEndpoint:  endpoint,
		updateEndpoint: endpoint,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

const (
	TraceAttributeSparqlEndpoint string = "sparql-endpoint"
)

var tracer = otel.Tracer("graph-services/sparql-client")

type storeClient struct {
	queryEndpoint  string
	updateEndpoint string
	httpClient     *http.Client
	debug          bool
}

func (c storeClient) Select(ctx context.Context, query string) ([]BindingRow, error) {
	var err error

	ctx, span := tracer.Start(ctx, "sparql-select",
		trace.WithAttributes(attribute.String(TraceAttributeSparqlEndpoint, c.queryEndpoint)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := c.post(ctx, c.queryEndpoint, url.Values{"query": {query}})
	if err != nil {
		return nil, err
	}

	result := &selectResult{}
	err = json.Unmarshal(body, result)
	if err != nil {
		err = errors.NewStoreUnavailableError(fmt.Sprintf("store returned a malformed select result: %s", err.Error()))
		return nil, err
	}

	return result.Results.Bindings, nil
}

func (c storeClient) Ask(ctx context.Context, query string) (bool, error) {
	var err error

	ctx, span := tracer.Start(ctx, "sparql-ask",
		trace.WithAttributes(attribute.String(TraceAttributeSparqlEndpoint, c.queryEndpoint)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body, err := c.post(ctx, c.queryEndpoint, url.Values{"query": {query}})
	if err != nil {
		return false, err
	}

	result := &askResult{}
	err = json.Unmarshal(body, result)
	if err != nil {
		err = errors.NewStoreUnavailableError(fmt.Sprintf("store returned a malformed ask result: %s", err.Error()))
		return false, err
	}

	return result.Boolean, nil
}

func (c storeClient) Update(ctx context.Context, update string) error {
	var err error

	ctx, span := tracer.Start(ctx, "sparql-update",
		trace.WithAttributes(attribute.String(TraceAttributeSparqlEndpoint, c.updateEndpoint)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, err = c.post(ctx, c.updateEndpoint, url.Values{"update": {update}})
	return err
}

func (c storeClient) post(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.NewStoreUnavailableError(fmt.Sprintf("failed to create store request: %s", err.Error()))
	}

	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Add("Accept", "application/sparql-results+json")

	if c.debug {
		reqbytes, _ := httputil.DumpRequest(req, true)
		logging.GetFromContext(ctx).Debug("sending request", "request", string(reqbytes))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewStoreUnavailableError(fmt.Sprintf("failed to reach triple store at %s: %s", endpoint, err.Error()))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewStoreUnavailableError(fmt.Sprintf("failed to read store response: %s", err.Error()))
	}

	if c.debug {
		respbytes, _ := httputil.DumpResponse(resp, false)
		logging.GetFromContext(ctx).Debug("received response", "response", string(respbytes))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewStoreUnavailableError(
			fmt.Sprintf("triple store at %s responded with status code %d", endpoint, resp.StatusCode),
		)
	}

	return respBody, nil
}
