package graphql

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cryk/graph-services/internal/pkg/application/cryptocurrencies"
	"github.com/cryk/graph-services/pkg/datamodels/doacc"
	gql "github.com/cryk/graph-services/pkg/graphql"
	gqlerrors "github.com/cryk/graph-services/pkg/graphql/errors"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const TraceAttributeResolverField string = "resolver.field"

// RegisterCryptocurrenciesHandlers wires up the resolver endpoint and the
// health check for the cryptocurrencies service.
func RegisterCryptocurrenciesHandlers(ctx context.Context, r *chi.Mux, svc cryptocurrencies.CryptocurrencyManager) error {
	logger := logging.GetFromContext(ctx)

	r.Post("/graphql", NewResolveCryptocurrenciesFieldHandler(logger, svc))
	r.Get("/health", NewHealthHandler())

	return nil
}

// NewResolveCryptocurrenciesFieldHandler dispatches resolver envelopes to
// the matching operation on the cryptocurrency manager.
func NewResolveCryptocurrenciesFieldHandler(logger *slog.Logger, svc cryptocurrencies.CryptocurrencyManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx := r.Context()

		req, err := gql.NewRequest(r.Body)
		if err != nil {
			gqlerrors.ReportNewBadRequestData(w, "failed to decode resolver request: "+err.Error(), "")
			return
		}

		ctx, span := tracer.Start(ctx, "resolve-field",
			trace.WithAttributes(attribute.String(TraceAttributeResolverField, req.Field)),
		)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		traceID, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		var result any

		switch req.Field {
		case "cryptocurrency":
			args := struct {
				ID string `json:"id"`
			}{}
			if err = req.Decode(&args); err == nil {
				result, err = svc.Retrieve(ctx, args.ID)
			}
		case "cryptocurrencies":
			params := cryptocurrencies.QueryParams{
				Limit:  cryptocurrencies.DefaultLimit,
				Offset: cryptocurrencies.DefaultOffset,
			}
			if err = req.Decode(&params); err == nil {
				result, err = svc.Query(ctx, params)
			}
		case "cryptocurrenciesInfo":
			params := cryptocurrencies.InfoParams{}
			if err = req.Decode(&params); err == nil {
				result, err = svc.Info(ctx, params)
			}
		case "createCryptocurrency":
			args := struct {
				Input doacc.CreateCryptocurrencyInput `json:"createCryptocurrencyInput"`
			}{}
			if err = req.Decode(&args); err == nil {
				result, err = svc.Create(ctx, args.Input)
			}
		case "updateCryptocurrency":
			args := struct {
				Input doacc.UpdateCryptocurrencyInput `json:"updateCryptocurrencyInput"`
			}{}
			if err = req.Decode(&args); err == nil {
				result, err = svc.Update(ctx, args.Input)
			}
		case "removeCryptocurrency":
			args := struct {
				ID string `json:"id"`
			}{}
			if err = req.Decode(&args); err == nil {
				result, err = svc.Remove(ctx, args.ID)
			}
		default:
			gqlerrors.ReportNewBadRequestData(w,
				fmt.Sprintf("unknown field %q, unable to resolve", req.Field),
				traceID,
			)
			return
		}

		if err != nil {
			log.Error("failed to resolve field", "field", req.Field, "err", err.Error())
			reportResolverError(w, err, traceID)
			return
		}

		respondWithEntity(w, result)
	}
}
