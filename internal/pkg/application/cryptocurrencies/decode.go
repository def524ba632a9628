package cryptocurrencies

import (
	"strconv"

	"github.com/cryk/graph-services/pkg/datamodels/doacc"
)

func stringValue(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}

	return ""
}

func intValue(obj map[string]any, key string, fallback int) int {
	i, err := strconv.Atoi(stringValue(obj, key))
	if err != nil {
		return fallback
	}

	return i
}

func children(obj map[string]any, key string) []map[string]any {
	if c, ok := obj[key].([]map[string]any); ok {
		return c
	}

	return nil
}

func schemeFrom(obj map[string]any, key string) *doacc.Scheme {
	c := children(obj, key)
	if len(c) == 0 {
		return nil
	}

	return &doacc.Scheme{Description: stringValue(c[0], "description")}
}

// toCryptocurrency converts one shaped object into the typed entity.
func toCryptocurrency(obj map[string]any) doacc.Cryptocurrency {
	entity := doacc.Cryptocurrency{
		ID:                 stringValue(obj, "id"),
		Symbol:             stringValue(obj, "symbol"),
		Description:        stringValue(obj, "description"),
		BlockReward:        stringValue(obj, "blockReward"),
		BlockTime:          intValue(obj, "blockTime", doacc.UnsetBlockTime),
		TotalCoins:         stringValue(obj, "totalCoins"),
		DateFounded:        stringValue(obj, "dateFounded"),
		Source:             stringValue(obj, "source"),
		Website:            stringValue(obj, "website"),
		ProtectionScheme:   schemeFrom(obj, "protectionScheme"),
		DistributionScheme: schemeFrom(obj, "distributionScheme"),
	}

	for _, point := range children(obj, "priceHistory") {
		timestamp, err := strconv.ParseFloat(stringValue(point, "priceTimestamp"), 64)
		if err != nil {
			continue
		}

		value, err := strconv.ParseFloat(stringValue(point, "priceValue"), 64)
		if err != nil {
			continue
		}

		entity.PriceHistory = append(entity.PriceHistory, doacc.PriceData{
			Timestamp: int64(timestamp),
			Value:     value,
			Currency:  stringValue(point, "priceCurrency"),
		})
	}

	return entity
}
