package main

import (
	"context"
	"flag"
	"os"

	"github.com/cryk/graph-services/internal/pkg/application/ingest/prices"
	"github.com/cryk/graph-services/pkg/sparql"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/joho/godotenv"
)

const appName string = "price-loader"

func main() {
	godotenv.Load()

	coin := flag.String("coin", "", "market data name of the coin to load prices for")
	cryptocurrencyID := flag.String("id", "", "id of the cryptocurrency the prices belong to")
	flag.Parse()

	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	if *coin == "" || *cryptocurrencyID == "" {
		log.Error("both -coin and -id must be given")
		os.Exit(1)
	}

	endpoint := env.GetVariableOrDefault(ctx, "SPARQL_ENDPOINT", sparql.DefaultEndpoint)
	store := sparql.New(endpoint)

	loader := prices.NewLoader(store, prices.NewMarketDataClient())

	count, err := loader.Load(ctx, *coin, *cryptocurrencyID)
	if err != nil {
		log.Error("failed to load price data", "coin", *coin, "err", err.Error())
		os.Exit(1)
	}

	log.Info("done loading price data", "coin", *coin, "count", count)
}
