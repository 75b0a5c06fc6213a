package model

import (
	"encoding/json"
)

// QueryParameter is a single key/value pair taken from the request URL.
// Repeated keys are kept as separate parameters.
type QueryParameter struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// PredicateKind identifies which variant a FilterPredicate holds
type PredicateKind string

const (
	KindAvailability     PredicateKind = "available"
	KindAttribute        PredicateKind = "attribute"
	KindVariantOption    PredicateKind = "variantOption"
	KindVariantMetafield PredicateKind = "variantMetafield"
	KindPrice            PredicateKind = "price"
)

// FilterPredicate is one entry of the Storefront ProductFilter list.
// Only the fields relevant to Kind are meaningful.
type FilterPredicate struct {
	Kind PredicateKind

	// Availability
	InStock bool

	// Attribute (Name is productVendor or productType) and VariantOption
	Name  string
	Value string

	// VariantMetafield; Value is shared with the fields above
	Namespace string
	Key       string

	// PriceRange
	Min *float64
	Max *float64
}

// Availability builds an availability predicate
func Availability(inStock bool) FilterPredicate {
	return FilterPredicate{Kind: KindAvailability, InStock: inStock}
}

// Attribute builds a product attribute predicate such as productVendor
func Attribute(name, value string) FilterPredicate {
	return FilterPredicate{Kind: KindAttribute, Name: name, Value: value}
}

// VariantOption builds a variant option predicate
func VariantOption(name, value string) FilterPredicate {
	return FilterPredicate{Kind: KindVariantOption, Name: name, Value: value}
}

// VariantMetafield builds a variant metafield predicate
func VariantMetafield(namespace, key, value string) FilterPredicate {
	return FilterPredicate{Kind: KindVariantMetafield, Namespace: namespace, Key: key, Value: value}
}

// PriceRange builds a price predicate; nil bounds are left out of the request
func PriceRange(minPrice, maxPrice *float64) FilterPredicate {
	return FilterPredicate{Kind: KindPrice, Min: minPrice, Max: maxPrice}
}

type variantOptionInput struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

type variantMetafieldInput struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Key       string `json:"key" yaml:"key"`
	Value     string `json:"value" yaml:"value"`
}

type priceRangeInput struct {
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Input returns the predicate in the shape the Storefront API expects for a
// ProductFilter: an object with exactly one field set.
func (p FilterPredicate) Input() map[string]any {
	switch p.Kind {
	case KindAvailability:
		return map[string]any{"available": p.InStock}
	case KindAttribute:
		return map[string]any{p.Name: p.Value}
	case KindVariantOption:
		return map[string]any{"variantOption": variantOptionInput{Name: p.Name, Value: p.Value}}
	case KindVariantMetafield:
		return map[string]any{"variantMetafield": variantMetafieldInput{
			Namespace: p.Namespace,
			Key:       p.Key,
			Value:     p.Value,
		}}
	case KindPrice:
		return map[string]any{"price": priceRangeInput{Min: p.Min, Max: p.Max}}
	default:
		return map[string]any{}
	}
}

// MarshalJSON implements json.Marshaler
func (p FilterPredicate) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Input())
}

// MarshalYAML implements yaml.Marshaler
func (p FilterPredicate) MarshalYAML() (interface{}, error) {
	return p.Input(), nil
}

// AppliedFilter describes one active filter for display as a removable chip
type AppliedFilter struct {
	Label       string `json:"label" yaml:"label"`
	SourceKey   string `json:"sourceKey" yaml:"sourceKey"`
	SourceValue string `json:"sourceValue" yaml:"sourceValue"`
	RemoveURL   string `json:"removeUrl,omitempty" yaml:"removeUrl,omitempty"`
}

// SortOption selects the ordering of a collection's products
type SortOption struct {
	SortKey string `json:"sortKey" yaml:"sortKey"`
	Reverse bool   `json:"reverse" yaml:"reverse"`
}
