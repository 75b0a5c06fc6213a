package handler

import (
	"context"
	"net/http"
	"strconv"

	"storefront/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	defaultPageViewLimit = 20
	maxPageViewLimit     = 200
)

// PageViewLister reads the page view log
type PageViewLister interface {
	RecentPageViews(ctx context.Context, handle string, limit int) ([]model.PageView, error)
}

// PageViewHandler exposes the page view log
type PageViewHandler struct {
	lister PageViewLister
	log    zerolog.Logger
}

// NewPageViewHandler creates a new page view handler
func NewPageViewHandler(lister PageViewLister, log zerolog.Logger) *PageViewHandler {
	return &PageViewHandler{lister: lister, log: log}
}

// Recent handles GET /api/collections/:handle/views?limit=N
func (h *PageViewHandler) Recent(c *gin.Context) {
	handle := c.Param("handle")

	limit := defaultPageViewLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageViewLimit {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{
				Error: "Invalid limit, must be between 1 and " + strconv.Itoa(maxPageViewLimit),
			})
			return
		}
		limit = n
	}

	views, err := h.lister.RecentPageViews(c.Request.Context(), handle, limit)
	if err != nil {
		h.log.Error().Err(err).Str("handle", handle).Msg("failed to fetch page views")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to fetch page views"})
		return
	}

	c.JSON(http.StatusOK, model.PageViewsResponse{
		Handle: handle,
		Count:  len(views),
		Views:  views,
	})
}
