// Package graphql exposes the resolver call contract of the two services
// over HTTP: the GraphQL engine posts {"field": ..., "arguments": ...}
// envelopes to /graphql and receives the resolved value as JSON, or an
// RFC7807 problem report on failure.
package graphql

import (
	"encoding/json"
	"errors"
	"net/http"

	gqlerrors "github.com/cryk/graph-services/pkg/graphql/errors"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("graph-services/api")

// NewHealthHandler handles heartbeat requests from the environment
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

func respondWithEntity(w http.ResponseWriter, entity any) {
	body, err := json.Marshal(entity)
	if err != nil {
		gqlerrors.ReportNewInternalError(w, "failed to marshal response: "+err.Error(), "")
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// reportResolverError maps the error taxonomy onto problem reports. The
// detail strings are shown to end users as-is by the web client, so they
// are expected to be readable.
func reportResolverError(w http.ResponseWriter, err error, traceID string) {
	switch {
	case errors.Is(err, gqlerrors.ErrValidation):
		gqlerrors.ReportNewBadRequestData(w, err.Error(), traceID)
	case errors.Is(err, gqlerrors.ErrNotFound):
		gqlerrors.ReportNotFoundError(w, err.Error(), traceID)
	case errors.Is(err, gqlerrors.ErrNotImplemented):
		gqlerrors.ReportNotImplemented(w, err.Error(), traceID)
	case errors.Is(err, gqlerrors.ErrStoreUnavailable):
		gqlerrors.ReportStoreUnavailableError(w, err.Error(), traceID)
	default:
		gqlerrors.ReportNewInternalError(w, err.Error(), traceID)
	}
}
