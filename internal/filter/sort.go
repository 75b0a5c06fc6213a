package filter

import (
	"storefront/internal/model"
)

// KeySort is the query key carrying the sort choice
const KeySort = "sort"

// ProductCollectionSortKeys values used by the storefront
const (
	SortCollectionDefault = "COLLECTION_DEFAULT"
	SortPrice             = "PRICE"
	SortBestSelling       = "BEST_SELLING"
	SortCreated           = "CREATED"
	SortManual            = "MANUAL"
	SortTitle             = "TITLE"
)

var sortOptions = map[string]model.SortOption{
	"price-low-high": {SortKey: SortPrice},
	"price-high-low": {SortKey: SortPrice, Reverse: true},
	"best-selling":   {SortKey: SortBestSelling},
	"newest":         {SortKey: SortCreated, Reverse: true},
	"featured":       {SortKey: SortManual},
	"title-asc":      {SortKey: SortTitle},
	"title-desc":     {SortKey: SortTitle, Reverse: true},
}

// TranslateSort maps the sort query parameter to a product sort option.
// Missing or unknown values fall back to the collection's own ordering.
func TranslateSort(params []model.QueryParameter) model.SortOption {
	if opt, ok := sortOptions[Get(params, KeySort)]; ok {
		return opt
	}
	return model.SortOption{SortKey: SortCollectionDefault}
}
