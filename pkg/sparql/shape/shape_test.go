package shape

import (
	"testing"

	"github.com/cryk/graph-services/pkg/sparql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func literal(value string) sparql.Binding {
	return sparql.Binding{Type: "literal", Value: value}
}

var cryptoDef = Definition{
	Root:    "cryptocurrencies",
	GroupBy: "symbol",
	Name:    "symbol",
	Collect: []string{"id", "description"},
	Children: []Definition{
		{
			Root:    "priceHistory",
			GroupBy: "priceDataId",
			Name:    "id",
			Collect: []string{"priceValue"},
		},
	},
}

func TestConvertReturnsEmptyCollectionForZeroRows(t *testing.T) {
	result := Convert(nil, cryptoDef)

	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestConvertGroupsRowsByKey(t *testing.T) {
	rows := []sparql.BindingRow{
		{"symbol": literal("BTC"), "id": literal("a1"), "description": literal("first")},
		{"symbol": literal("LTC"), "id": literal("b2"), "description": literal("second")},
		{"symbol": literal("BTC"), "id": literal("a1"), "description": literal("first")},
	}

	result := Convert(rows, cryptoDef)

	require.Len(t, result, 2)
	assert.Equal(t, "BTC", result[0]["symbol"])
	assert.Equal(t, "a1", result[0]["id"])
	assert.Equal(t, "LTC", result[1]["symbol"])
}

func TestConvertPreservesFirstOccurrenceOrder(t *testing.T) {
	rows := []sparql.BindingRow{
		{"symbol": literal("XMR")},
		{"symbol": literal("BTC")},
		{"symbol": literal("XMR")},
		{"symbol": literal("ADA")},
	}

	result := Convert(rows, cryptoDef)

	require.Len(t, result, 3)
	assert.Equal(t, "XMR", result[0]["symbol"])
	assert.Equal(t, "BTC", result[1]["symbol"])
	assert.Equal(t, "ADA", result[2]["symbol"])
}

func TestConvertSkipsRowsWithUnboundGroupingVariable(t *testing.T) {
	rows := []sparql.BindingRow{
		{"id": literal("no-symbol-bound")},
		{"symbol": literal("BTC")},
	}

	result := Convert(rows, cryptoDef)

	require.Len(t, result, 1)
	assert.Equal(t, "BTC", result[0]["symbol"])
}

func TestConvertOmitsUnboundScalars(t *testing.T) {
	rows := []sparql.BindingRow{
		{"symbol": literal("BTC"), "id": literal("a1")},
	}

	result := Convert(rows, cryptoDef)

	require.Len(t, result, 1)
	assert.NotContains(t, result[0], "description")
}

func TestConvertNestsChildCollections(t *testing.T) {
	rows := []sparql.BindingRow{
		{"symbol": literal("BTC"), "priceDataId": literal("p1"), "priceValue": literal("101.5")},
		{"symbol": literal("BTC"), "priceDataId": literal("p2"), "priceValue": literal("99.25")},
		{"symbol": literal("LTC")},
	}

	result := Convert(rows, cryptoDef)

	require.Len(t, result, 2)

	prices, ok := result[0]["priceHistory"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, prices, 2)
	assert.Equal(t, "p1", prices[0]["id"])
	assert.Equal(t, "101.5", prices[0]["priceValue"])
	assert.Equal(t, "p2", prices[1]["id"])

	// a group without child rows gets no child collection at all
	assert.NotContains(t, result[1], "priceHistory")
}

func TestConvertIsIdempotent(t *testing.T) {
	rows := []sparql.BindingRow{
		{"symbol": literal("BTC"), "priceDataId": literal("p1"), "priceValue": literal("101.5")},
		{"symbol": literal("BTC"), "priceDataId": literal("p2"), "priceValue": literal("99.25")},
	}

	first := Convert(rows, cryptoDef)
	second := Convert(rows, cryptoDef)

	assert.Equal(t, first, second)
}
