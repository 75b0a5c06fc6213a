package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"filters"}, args...))
	return out.String(), err
}

func TestTranslate_JSON(t *testing.T) {
	out, err := runApp(t, "translate", "--path", "/collections/parts",
		"https://shop.example/collections/parts?available=true&variantOption=Size:L&minPrice=10&maxPrice=abc&sort=newest")
	require.NoError(t, err)

	var got struct {
		Filters        []map[string]any `json:"filters"`
		AppliedFilters []struct {
			Label     string `json:"label"`
			RemoveURL string `json:"removeUrl"`
		} `json:"appliedFilters"`
		Sort struct {
			SortKey string `json:"sortKey"`
			Reverse bool   `json:"reverse"`
		} `json:"sort"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	require.Len(t, got.Filters, 3)
	assert.Equal(t, true, got.Filters[0]["available"])
	assert.Equal(t, map[string]any{"min": float64(10), "max": float64(0)}, got.Filters[2]["price"])

	require.Len(t, got.AppliedFilters, 4)
	assert.Equal(t, "L", got.AppliedFilters[1].Label)
	assert.Equal(t, "Max: $0", got.AppliedFilters[3].Label)
	assert.Equal(t, "/collections/parts?available=true&variantOption=Size%3AL&maxPrice=abc&sort=newest", got.AppliedFilters[2].RemoveURL)

	assert.Equal(t, "CREATED", got.Sort.SortKey)
	assert.True(t, got.Sort.Reverse)
}

func TestTranslate_YAML(t *testing.T) {
	out, err := runApp(t, "translate", "--format", "yaml", "custom.colour_group=Red&productVendor=Acme")
	require.NoError(t, err)

	var got struct {
		Filters        []map[string]any `yaml:"filters"`
		AppliedFilters []struct {
			Label string `yaml:"label"`
		} `yaml:"appliedFilters"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))

	require.Len(t, got.Filters, 2)
	assert.Equal(t, map[string]any{
		"variantMetafield": map[string]any{"namespace": "custom", "key": "custom.colour_group", "value": "Red"},
	}, got.Filters[0])
	assert.Equal(t, "Acme", got.Filters[1]["productVendor"])
	assert.Equal(t, "colour", got.AppliedFilters[0].Label)
}

func TestTranslate_Errors(t *testing.T) {
	_, err := runApp(t, "translate")
	assert.ErrorContains(t, err, "exactly one QUERY")

	_, err = runApp(t, "translate", "--format", "xml", "available=true")
	assert.ErrorContains(t, err, "unknown format")
}

func TestRules(t *testing.T) {
	out, err := runApp(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "1. availability")
	assert.Contains(t, out, "4. variant metafield")
	assert.Contains(t, out, "minPrice / maxPrice")
}
