package router

import (
	"context"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/riandyrn/otelchi"
	"github.com/rs/cors"
)

// New creates a chi router with the middleware stack shared by the
// resolver services: CORS, structured request logging and trace
// propagation. Allowed origins default to any origin and can be
// restricted with a comma separated CORS_ALLOWED_ORIGINS.
func New(ctx context.Context, serviceName string) *chi.Mux {
	r := chi.NewRouter()

	allowedOrigins := strings.Split(
		env.GetVariableOrDefault(ctx, "CORS_ALLOWED_ORIGINS", "*"), ",",
	)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		Debug:            false,
	}).Handler)

	r.Use(httplog.RequestLogger(
		httplog.NewLogger(serviceName, httplog.Options{
			JSON: true,
		}),
	))

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))

	return r
}
