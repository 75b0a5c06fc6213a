package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductVariant_OnSale(t *testing.T) {
	price := Money{Amount: decimal.RequireFromString("19.99"), CurrencyCode: "USD"}

	tests := []struct {
		name      string
		compareAt *Money
		want      bool
	}{
		{"No compare-at price", nil, false},
		{"Compare-at above price", &Money{Amount: decimal.RequireFromString("24.50"), CurrencyCode: "USD"}, true},
		{"Compare-at equal to price", &Money{Amount: decimal.RequireFromString("19.990"), CurrencyCode: "USD"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ProductVariant{ID: "gid://shopify/ProductVariant/1", Price: price, CompareAtPrice: tt.compareAt}
			assert.Equal(t, tt.want, v.OnSale())

			raw, err := json.Marshal(v)
			require.NoError(t, err)

			var decoded map[string]any
			require.NoError(t, json.Unmarshal(raw, &decoded))
			assert.Equal(t, tt.want, decoded["onSale"])
			assert.Equal(t, "gid://shopify/ProductVariant/1", decoded["id"])
			assert.Equal(t, map[string]any{"amount": "19.99", "currencyCode": "USD"}, decoded["price"])
		})
	}
}
