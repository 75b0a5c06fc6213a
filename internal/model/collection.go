package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CollectionRef identifies the collection a page renders. Exactly one of
// Handle or ID is set once the ref has been resolved.
type CollectionRef struct {
	Handle string `json:"handle,omitempty"`
	ID     string `json:"id,omitempty"`

	// Metaobject refs point at a metaobject whose field references the
	// collection; they are resolved to an ID before querying.
	MetaobjectType   string `json:"metaobjectType,omitempty"`
	MetaobjectHandle string `json:"metaobjectHandle,omitempty"`
}

// IsMetaobject reports whether the ref still needs to be resolved
func (r CollectionRef) IsMetaobject() bool {
	return r.ID == "" && r.Handle == "" && r.MetaobjectType != "" && r.MetaobjectHandle != ""
}

// Money is a Storefront MoneyV2 value
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// Image is a Storefront image reference
type Image struct {
	URL     string  `json:"url"`
	AltText *string `json:"altText,omitempty"`
	Width   *int    `json:"width,omitempty"`
	Height  *int    `json:"height,omitempty"`
}

// SelectedOption is a variant option such as Size=L
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductVariant is the first variant of a listed product
type ProductVariant struct {
	ID              string           `json:"id"`
	Image           *Image           `json:"image,omitempty"`
	Price           Money            `json:"price"`
	CompareAtPrice  *Money           `json:"compareAtPrice,omitempty"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
	Product         struct {
		Handle string `json:"handle"`
		Title  string `json:"title"`
	} `json:"product"`
}

// OnSale reports whether the variant is discounted against its compare-at price
func (v ProductVariant) OnSale() bool {
	return v.CompareAtPrice != nil && v.CompareAtPrice.Amount.GreaterThan(v.Price.Amount)
}

// MarshalJSON adds the derived onSale flag for the product cards
func (v ProductVariant) MarshalJSON() ([]byte, error) {
	type variant ProductVariant
	return json.Marshal(struct {
		variant
		OnSale bool `json:"onSale"`
	}{variant(v), v.OnSale()})
}

// Product is a product node in a collection listing
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	Handle      string `json:"handle"`
	Variants    struct {
		Nodes []ProductVariant `json:"nodes"`
	} `json:"variants"`
}

// FilterValue is one selectable value of a storefront filter. Input holds the
// ProductFilter JSON the storefront expects when the value is selected.
type FilterValue struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
	Input string `json:"input"`
}

// ProductFilter describes a filter the storefront offers for a collection
type ProductFilter struct {
	ID     string        `json:"id"`
	Label  string        `json:"label"`
	Type   string        `json:"type"`
	Values []FilterValue `json:"values"`
}

// PageInfo is the Storefront cursor pagination info
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// ProductConnection is a page of products together with the filters available
type ProductConnection struct {
	Filters  []ProductFilter `json:"filters"`
	PageInfo PageInfo        `json:"pageInfo"`
	Nodes    []Product       `json:"nodes"`
}

// Collection is a filterable grouping of products
type Collection struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Handle      string            `json:"handle"`
	Products    ProductConnection `json:"products"`
}

// CollectionSummary is used for collection navigation
type CollectionSummary struct {
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// Analytics carries the page analytics metadata
type Analytics struct {
	PageType   string `json:"pageType"`
	Handle     string `json:"handle"`
	ResourceID string `json:"resourceId"`
}

// PageTypeCollection is the analytics page type of collection pages
const PageTypeCollection = "collection"

// CollectionPage is the payload returned to the rendering tier
type CollectionPage struct {
	Collection     *Collection         `json:"collection"`
	AppliedFilters []AppliedFilter     `json:"appliedFilters"`
	Collections    []CollectionSummary `json:"collections"`
	Sort           SortOption          `json:"sort"`
	Analytics      Analytics           `json:"analytics"`
}

// ErrorResponse is the JSON body of failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}
