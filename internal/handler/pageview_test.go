package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
)

type stubLister struct {
	views      []model.PageView
	err        error
	lastHandle string
	lastLimit  int
}

func (s *stubLister) RecentPageViews(_ context.Context, handle string, limit int) ([]model.PageView, error) {
	s.lastHandle = handle
	s.lastLimit = limit
	return s.views, s.err
}

func TestPageViewHandler_Recent(t *testing.T) {
	lister := &stubLister{views: []model.PageView{
		{ID: 2, Handle: "parts", AppliedCount: 1, Filters: model.FilterInputList{{"available": true}}},
		{ID: 1, Handle: "parts"},
	}}
	router := newTestRouterWith(RouterConfig{}, &stubLoader{}, lister)

	rec := doGet(router, "/api/collections/parts/views?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "parts", lister.lastHandle)
	assert.Equal(t, 5, lister.lastLimit)

	var body model.PageViewsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "parts", body.Handle)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, int64(2), body.Views[0].ID)
}

func TestPageViewHandler_DefaultLimit(t *testing.T) {
	lister := &stubLister{}
	router := newTestRouterWith(RouterConfig{}, &stubLoader{}, lister)

	rec := doGet(router, "/api/collections/parts/views", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultPageViewLimit, lister.lastLimit)
}

func TestPageViewHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{"Limit not a number", "/api/collections/parts/views?limit=ten", nil, http.StatusBadRequest},
		{"Limit too small", "/api/collections/parts/views?limit=0", nil, http.StatusBadRequest},
		{"Limit too large", "/api/collections/parts/views?limit=1000", nil, http.StatusBadRequest},
		{"Database failure", "/api/collections/parts/views", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouterWith(RouterConfig{}, &stubLoader{}, &stubLister{err: tt.err})

			rec := doGet(router, tt.target, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPageViewHandler_DisabledWithoutLog(t *testing.T) {
	router := newTestRouter(&stubLoader{})

	rec := doGet(router, "/api/collections/parts/views", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "API endpoint not found")
}
