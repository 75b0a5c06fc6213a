package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/model"
)

func TestRemovalQuery(t *testing.T) {
	params := ParseQuery("productType=Brakes&cursor=abc&productType=Wheels&available=true&productType=Brakes")

	t.Run("Removes first matching pair and the cursor", func(t *testing.T) {
		got := RemovalQuery(params, model.AppliedFilter{SourceKey: "productType", SourceValue: "Brakes"})
		assert.Equal(t, "productType=Wheels&available=true&productType=Brakes", got)
	})

	t.Run("Other values of the same key stay", func(t *testing.T) {
		got := RemovalQuery(params, model.AppliedFilter{SourceKey: "productType", SourceValue: "Wheels"})
		assert.Equal(t, "productType=Brakes&available=true&productType=Brakes", got)
	})

	t.Run("No match only drops the cursor", func(t *testing.T) {
		got := RemovalQuery(params, model.AppliedFilter{SourceKey: "productVendor", SourceValue: "Acme"})
		assert.Equal(t, "productType=Brakes&productType=Wheels&available=true&productType=Brakes", got)
	})
}

func TestRemovalURL(t *testing.T) {
	params := ParseQuery("available=true")

	assert.Equal(t, "/collections/parts",
		RemovalURL("/collections/parts", params, model.AppliedFilter{SourceKey: "available", SourceValue: "true"}))
	assert.Equal(t, "/collections/parts?available=true",
		RemovalURL("/collections/parts", params, model.AppliedFilter{SourceKey: "minPrice", SourceValue: "1"}))
}

func TestWithRemovalLinks(t *testing.T) {
	params := ParseQuery("available=true&minPrice=10&maxPrice=abc")
	res := NewTranslator().Translate(params)

	links := WithRemovalLinks("/", params, res.AppliedFilters)

	assert.Equal(t, []string{
		"/?minPrice=10&maxPrice=abc",
		"/?available=true&maxPrice=abc",
		"/?available=true&minPrice=10",
	}, []string{links[0].RemoveURL, links[1].RemoveURL, links[2].RemoveURL})

	for _, a := range res.AppliedFilters {
		assert.Empty(t, a.RemoveURL, "translator output must not be modified")
	}
}
