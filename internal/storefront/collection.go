package storefront

import (
	"context"
	"fmt"

	"storefront/internal/model"
)

// CollectionQuery selects a collection page
type CollectionQuery struct {
	Handle           string
	ID               string
	Cursor           string
	Filters          []model.FilterPredicate
	Sort             model.SortOption
	PageBy           int
	CollectionsFirst int
}

type collectionVariables struct {
	Handle           *string                 `json:"handle,omitempty"`
	ID               *string                 `json:"id,omitempty"`
	Cursor           *string                 `json:"cursor,omitempty"`
	Filters          []model.FilterPredicate `json:"filters"`
	SortKey          string                  `json:"sortKey"`
	Reverse          bool                    `json:"reverse"`
	PageBy           int                     `json:"pageBy"`
	CollectionsFirst int                     `json:"collectionsFirst"`
	Country          string                  `json:"country,omitempty"`
	Language         string                  `json:"language,omitempty"`
}

// CollectionResult is the data of a CollectionDetails query
type CollectionResult struct {
	Collection  *model.Collection
	Collections []model.CollectionSummary
}

type collectionData struct {
	Collection  *model.Collection `json:"collection"`
	Collections struct {
		Nodes []model.CollectionSummary `json:"nodes"`
	} `json:"collections"`
}

// CollectionDetails fetches a collection with one page of filtered products
// and the list of collections for navigation. A missing collection is not an
// error: Collection is nil.
func (c *Client) CollectionDetails(ctx context.Context, q CollectionQuery, hdr RequestHeaders) (*CollectionResult, error) {
	if q.Handle == "" && q.ID == "" {
		return nil, fmt.Errorf("collection handle or id is required")
	}

	vars := collectionVariables{
		Handle:           optional(q.Handle),
		ID:               optional(q.ID),
		Cursor:           optional(q.Cursor),
		Filters:          q.Filters,
		SortKey:          q.Sort.SortKey,
		Reverse:          q.Sort.Reverse,
		PageBy:           q.PageBy,
		CollectionsFirst: q.CollectionsFirst,
		Country:          c.opts.Country,
		Language:         c.opts.Language,
	}
	if vars.Filters == nil {
		vars.Filters = []model.FilterPredicate{}
	}

	var data collectionData
	if err := c.Query(ctx, collectionDetailsQuery, vars, hdr, &data); err != nil {
		return nil, fmt.Errorf("collection query failed: %w", err)
	}

	return &CollectionResult{
		Collection:  data.Collection,
		Collections: data.Collections.Nodes,
	}, nil
}

type metaobjectData struct {
	Metaobject *struct {
		ID    string `json:"id"`
		Field *struct {
			Reference *struct {
				ID     string `json:"id"`
				Handle string `json:"handle"`
			} `json:"reference"`
		} `json:"field"`
	} `json:"metaobject"`
}

// ResolveMetaobjectCollection returns the id of the collection referenced by
// field on the metaobject identified by type and handle. The id is empty when
// the metaobject or the reference does not exist.
func (c *Client) ResolveMetaobjectCollection(ctx context.Context, objType, handle, field string, hdr RequestHeaders) (string, error) {
	vars := map[string]string{
		"type":   objType,
		"handle": handle,
		"field":  field,
	}

	var data metaobjectData
	if err := c.Query(ctx, metaobjectCollectionQuery, vars, hdr, &data); err != nil {
		return "", fmt.Errorf("metaobject query failed: %w", err)
	}

	if data.Metaobject == nil || data.Metaobject.Field == nil || data.Metaobject.Field.Reference == nil {
		return "", nil
	}
	return data.Metaobject.Field.Reference.ID, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
