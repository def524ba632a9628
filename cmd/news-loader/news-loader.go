package main

import (
	"context"
	"flag"
	"os"

	"github.com/cryk/graph-services/internal/pkg/application/ingest/newsfeed"
	"github.com/cryk/graph-services/internal/pkg/application/news"
	"github.com/cryk/graph-services/pkg/sparql"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/joho/godotenv"
)

const appName string = "news-loader"

func main() {
	godotenv.Load()

	currency := flag.String("currency", "", "feed slug of the currency to load news for")
	configFile := flag.String("currencies", "config/currencies.yaml", "path to the currency mapping file")
	flag.Parse()

	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	if *currency == "" {
		log.Error("a -currency to load news for must be given")
		os.Exit(1)
	}

	cfgFile, err := os.Open(*configFile)
	if err != nil {
		log.Error("failed to open currency mapping file", "file", *configFile, "err", err.Error())
		os.Exit(1)
	}
	defer cfgFile.Close()

	cfg, err := newsfeed.LoadConfiguration(cfgFile)
	if err != nil {
		log.Error("failed to load currency mapping", "err", err.Error())
		os.Exit(1)
	}

	endpoint := env.GetVariableOrDefault(ctx, "SPARQL_ENDPOINT", sparql.DefaultEndpoint)
	store := sparql.New(endpoint)

	loader := newsfeed.NewLoader(news.New(store), newsfeed.NewFeedClient(), cfg)

	count, err := loader.Load(ctx, *currency)
	if err != nil {
		log.Error("failed to load news", "currency", *currency, "err", err.Error())
		os.Exit(1)
	}

	log.Info("done loading news", "currency", *currency, "count", count)
}
