package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/uwgen/media-api/internal/api/middleware"
	"github.com/uwgen/media-api/internal/core/domain"
	"github.com/uwgen/media-api/internal/core/ports"
)

type GalleryHandler struct {
	gallery ports.GalleryService
}

func NewGalleryHandler(gallery ports.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

// List returns one page of the authenticated user's artifacts.
//
// @Summary      List gallery images
// @Tags         gallery
// @Produce      json
// @Security     BearerAuth
// @Param        type    query     string  false  "Filter: all, gen, or edit"    default(all)
// @Param        sort    query     string  false  "Order: newest or oldest"      default(newest)
// @Param        offset  query     int     false  "Pagination offset"            default(0)
// @Param        limit   query     int     false  "Page size"                    default(20)
// @Success      200     {object}  ports.GalleryPage
// @Failure      401     {object}  map[string]string
// @Router       /api/v1/gallery [get]
func (h *GalleryHandler) List(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	filterType := c.QueryParam("type")
	if filterType == "" {
		filterType = domain.FilterAll
	}
	sortOrder := c.QueryParam("sort")
	if sortOrder == "" {
		sortOrder = domain.SortNewest
	}
	offset := queryInt(c, "offset", 0)
	limit := queryInt(c, "limit", 20)

	page, err := h.gallery.ListImages(c.Request().Context(), user.ID, filterType, sortOrder, offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// queryInt parses an integer query parameter, falling back to def on
// absence or garbage.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
