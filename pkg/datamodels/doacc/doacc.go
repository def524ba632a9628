// Package doacc holds the cryptocurrency data model and its DOACC
// vocabulary (http://purl.org/net/bel-epa/doacc#). Entities of this
// vocabulary are managed by the cryptocurrencies service.
package doacc

import (
	"github.com/cryk/graph-services/pkg/sparql"
)

const (
	//Namespace is the DOACC namespace under which cryptocurrency resources live
	Namespace string = "http://purl.org/net/bel-epa/doacc#"
	//ElementsNamespace is the Dublin Core elements namespace
	ElementsNamespace string = "http://purl.org/dc/elements/1.1/"
	//SchemaNamespace is the schema.org namespace, used for price data terms
	SchemaNamespace string = "http://schema.org/"

	//CryptocurrencyTypeName is the local name of the cryptocurrency entity type
	CryptocurrencyTypeName string = "Cryptocurrency"
	//PriceDataTypeName is the local name of the price data entity type
	PriceDataTypeName string = "PriceData"

	//DefaultProtectionSchemeID references the scheme every new cryptocurrency is created with
	DefaultProtectionSchemeID string = "D9758d7c9-6b22-4039-a325-285d680c22fe"
	//DefaultDistributionSchemeID references the scheme every new cryptocurrency is created with
	DefaultDistributionSchemeID string = "Dc10c93fb-f7ec-40cd-a06e-7890686f6ef8"
)

var PrefixDOACC = sparql.Prefix{Label: "doacc", Namespace: Namespace}
var PrefixElements = sparql.Prefix{Label: "elements", Namespace: ElementsNamespace}
var PrefixSchema = sparql.Prefix{Label: "schema", Namespace: SchemaNamespace}

// Sentinel values surfaced for optional fields that are absent in the
// store. The per-field values are inconsistent on purpose: they mirror
// the stored data that existing consumers already depend on, so they
// must not be unified silently.
const (
	UnsetDescription string = "-"
	UnsetBlockReward string = "unknown"
	UnsetBlockTime   int    = -1
	UnsetTotalCoins  string = "unknown"
	UnsetDateFounded string = "unknown"
	UnsetSource      string = "unknown"
	UnsetWebsite     string = "unknown"
)

// Scheme is a small referenced sub-entity describing a consensus or
// coin-distribution mechanism.
type Scheme struct {
	Description string `json:"description"`
}

// PriceData is one historical price point for a cryptocurrency.
type PriceData struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
	Currency  string  `json:"currency"`
}

type Cryptocurrency struct {
	ID                 string      `json:"id"`
	Symbol             string      `json:"symbol"`
	Description        string      `json:"description"`
	BlockReward        string      `json:"blockReward"`
	BlockTime          int         `json:"blockTime"`
	TotalCoins         string      `json:"totalCoins"`
	DateFounded        string      `json:"dateFounded"`
	Source             string      `json:"source"`
	Website            string      `json:"website"`
	ProtectionScheme   *Scheme     `json:"protectionScheme,omitempty"`
	DistributionScheme *Scheme     `json:"distributionScheme,omitempty"`
	PriceHistory       []PriceData `json:"priceHistory,omitempty"`
}

// CreateCryptocurrencyInput carries the fields of a new cryptocurrency.
// Empty optional fields are omitted from the insert entirely, they are
// never written as empty strings.
type CreateCryptocurrencyInput struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description,omitempty"`
	BlockReward string `json:"blockReward,omitempty"`
	BlockTime   *int   `json:"blockTime,omitempty"`
	TotalCoins  string `json:"totalCoins,omitempty"`
	DateFounded string `json:"dateFounded,omitempty"`
	Source      string `json:"source,omitempty"`
	Website     string `json:"website,omitempty"`
}

// UpdateCryptocurrencyInput carries a partial update: nil fields are
// left untouched in the store.
type UpdateCryptocurrencyInput struct {
	ID          string  `json:"id"`
	Description *string `json:"description,omitempty"`
	BlockReward *string `json:"blockReward,omitempty"`
	BlockTime   *int    `json:"blockTime,omitempty"`
	TotalCoins  *string `json:"totalCoins,omitempty"`
	DateFounded *string `json:"dateFounded,omitempty"`
	Source      *string `json:"source,omitempty"`
	Website     *string `json:"website,omitempty"`
}

// CryptocurrenciesInfo is a derived aggregate, recomputed per query and
// never persisted.
type CryptocurrenciesInfo struct {
	TotalCount int `json:"totalCount"`
}
