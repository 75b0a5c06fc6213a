package handler

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/storefront"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CollectionLoader loads collection pages
type CollectionLoader interface {
	Load(ctx context.Context, req service.LoadRequest) (*model.CollectionPage, error)
}

// CollectionHandler handles collection page requests
type CollectionHandler struct {
	loader        CollectionLoader
	defaultHandle string
	log           zerolog.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(loader CollectionLoader, defaultHandle string, log zerolog.Logger) *CollectionHandler {
	return &CollectionHandler{
		loader:        loader,
		defaultHandle: defaultHandle,
		log:           log,
	}
}

// Home handles GET / with the default collection
func (h *CollectionHandler) Home(c *gin.Context) {
	h.render(c, model.CollectionRef{Handle: h.defaultHandle})
}

// Collection handles GET /collections/:handle
func (h *CollectionHandler) Collection(c *gin.Context) {
	h.render(c, model.CollectionRef{Handle: c.Param("handle")})
}

// MetaobjectCollection handles GET /pages/:type/:handle, where the metaobject
// references the collection to list
func (h *CollectionHandler) MetaobjectCollection(c *gin.Context) {
	h.render(c, model.CollectionRef{
		MetaobjectType:   c.Param("type"),
		MetaobjectHandle: c.Param("handle"),
	})
}

func (h *CollectionHandler) render(c *gin.Context, ref model.CollectionRef) {
	page, err := h.loader.Load(c.Request.Context(), service.LoadRequest{
		Ref:      ref,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
		Headers: storefront.RequestHeaders{
			BuyerIP:        c.ClientIP(),
			RequestGroupID: c.GetHeader("request-id"),
			Purpose:        c.GetHeader("purpose"),
		},
	})
	if err != nil {
		status, msg := errorStatus(err)
		event := h.log.Error()
		if status < http.StatusInternalServerError {
			event = h.log.Info()
		}
		var gqlErr *storefront.GraphQLError
		if errors.As(err, &gqlErr) {
			event = event.Str("graphql_code", gqlErr.Code())
		}
		event.Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("collection page failed")
		c.JSON(status, model.ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, page)
}

func errorStatus(err error) (int, string) {
	var httpErr *storefront.HTTPError
	var gqlErr *storefront.GraphQLError
	var transportErr *storefront.TransportError

	switch {
	case errors.Is(err, service.ErrCollectionNotFound):
		return http.StatusNotFound, "Collection not found"
	case errors.As(err, &httpErr), errors.As(err, &gqlErr), errors.As(err, &transportErr):
		return http.StatusBadGateway, "Storefront API request failed"
	default:
		return http.StatusInternalServerError, "An unexpected error occurred"
	}
}
