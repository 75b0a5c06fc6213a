package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PageView is one logged collection page render
type PageView struct {
	ID             int64           `json:"id" db:"id"`
	Handle         string          `json:"handle" db:"handle"`
	ResourceID     string          `json:"resource_id" db:"resource_id"`
	Filters        FilterInputList `json:"filters" db:"filters"`
	AppliedCount   int             `json:"applied_count" db:"applied_count"`
	ProductCount   int             `json:"product_count" db:"product_count"`
	ResponseTimeMs int64           `json:"response_time_ms" db:"response_time_ms"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// PageViewsResponse lists the latest page views of a collection
type PageViewsResponse struct {
	Handle string     `json:"handle"`
	Count  int        `json:"count"`
	Views  []PageView `json:"views"`
}

// FilterInputList stores the ProductFilter inputs of a request as JSONB
type FilterInputList []map[string]any

// NewFilterInputList converts predicates into their stored form
func NewFilterInputList(filters []FilterPredicate) FilterInputList {
	list := make(FilterInputList, 0, len(filters))
	for _, f := range filters {
		// Round trip through JSON so the stored value only holds plain types.
		raw, err := json.Marshal(f)
		if err != nil {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			continue
		}
		list = append(list, m)
	}
	return list
}

// Value implements driver.Valuer interface
func (l FilterInputList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface
func (l *FilterInputList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported filters column type %T", value)
	}
}
