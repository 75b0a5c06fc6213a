package filter

import (
	"storefront/internal/model"
)

// KeyCursor is the pagination cursor key; it is dropped whenever the filter
// set changes because the cursor belongs to the previous result set.
const KeyCursor = "cursor"

// RemovalQuery returns the query string with the parameter behind applied
// removed. Only the first matching key/value pair is removed.
func RemovalQuery(params []model.QueryParameter, applied model.AppliedFilter) string {
	kept := make([]model.QueryParameter, 0, len(params))
	removed := false
	for _, p := range params {
		if p.Key == KeyCursor {
			continue
		}
		if !removed && p.Key == applied.SourceKey && p.Value == applied.SourceValue {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	return EncodeQuery(kept)
}

// RemovalURL is RemovalQuery prefixed with path
func RemovalURL(path string, params []model.QueryParameter, applied model.AppliedFilter) string {
	q := RemovalQuery(params, applied)
	if q == "" {
		return path
	}
	return path + "?" + q
}

// WithRemovalLinks fills RemoveURL on every applied filter
func WithRemovalLinks(path string, params []model.QueryParameter, applied []model.AppliedFilter) []model.AppliedFilter {
	out := make([]model.AppliedFilter, len(applied))
	for i, a := range applied {
		a.RemoveURL = RemovalURL(path, params, a)
		out[i] = a
	}
	return out
}
