package graphql

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cryk/graph-services/internal/pkg/application/news"
	"github.com/cryk/graph-services/pkg/datamodels/schemaorg"
	gql "github.com/cryk/graph-services/pkg/graphql"
	gqlerrors "github.com/cryk/graph-services/pkg/graphql/errors"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RegisterNewsHandlers wires up the resolver endpoint and the health check
// for the crypto news service.
func RegisterNewsHandlers(ctx context.Context, r *chi.Mux, svc news.NewsManager) error {
	logger := logging.GetFromContext(ctx)

	r.Post("/graphql", NewResolveNewsFieldHandler(logger, svc))
	r.Get("/health", NewHealthHandler())

	return nil
}

func NewResolveNewsFieldHandler(logger *slog.Logger, svc news.NewsManager) http.HandlerFunc {
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
		case "cryptoNews":
			params := news.QueryParams{
				Limit:  news.DefaultLimit,
				Offset: news.DefaultOffset,
			}
			if err = req.Decode(&params); err == nil {
				result, err = svc.QueryByCryptocurrency(ctx, params)
			}
		case "cryptoNewsInfo":
			params := news.InfoParams{}
			if err = req.Decode(&params); err == nil {
				result, err = svc.Info(ctx, params)
			}
		case "createCryptoNews":
			args := struct {
				Input schemaorg.CreateCryptoNewsInput `json:"createCryptoNewsInput"`
			}{}
			if err = req.Decode(&args); err == nil {
				result, err = svc.Create(ctx, args.Input)
			}
		case "updateCryptoNews":
			args := struct {
				Input schemaorg.UpdateCryptoNewsInput `json:"updateCryptoNewsInput"`
			}{}
			if err = req.Decode(&args); err == nil {
				result, err = svc.Update(ctx, args.Input)
			}
		case "removeCryptoNews":
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
