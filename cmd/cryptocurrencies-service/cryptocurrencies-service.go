package main

import (
	"context"
	"net/http"
	"os"

	"github.com/cryk/graph-services/internal/pkg/application/cryptocurrencies"
	"github.com/cryk/graph-services/internal/pkg/infrastructure/router"
	api "github.com/cryk/graph-services/internal/pkg/presentation/api/graphql"
	"github.com/cryk/graph-services/pkg/sparql"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/joho/godotenv"
)

const appName string = "cryptocurrencies-service"

func main() {
	godotenv.Load()

	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	endpoint := env.GetVariableOrDefault(ctx, "SPARQL_ENDPOINT", sparql.DefaultEndpoint)
	debug := env.GetVariableOrDefault(ctx, "SPARQL_DEBUG", "false")

	store := sparql.New(endpoint, sparql.Debug(debug))
	app := cryptocurrencies.New(store)

	r := router.New(ctx, appName)

	err := api.RegisterCryptocurrenciesHandlers(ctx, r, app)
	if err != nil {
		log.Error("failed to register handlers", "err", err.Error())
		os.Exit(1)
	}

	port := env.GetVariableOrDefault(ctx, "SERVICE_PORT", "3000")
	log.Info("starting to listen for connections", "port", port)

	err = http.ListenAndServe(":"+port, r)
	if err != nil {
		log.Error("failed to listen for connections", "err", err.Error())
		os.Exit(1)
	}
}
