package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/uwgen/media-api/internal/api/metrics"
	"github.com/uwgen/media-api/internal/api/middleware"
	"github.com/uwgen/media-api/internal/core/domain"
	"github.com/uwgen/media-api/internal/core/ports"
)

// Served artifacts are immutable once written, so a bounded client cache
// is safe.
const artifactCacheControl = "public, max-age=3600"

type ImageHandler struct {
	images ports.ImageService
	store  ports.ArtifactStore
}

func NewImageHandler(images ports.ImageService, store ports.ArtifactStore) *ImageHandler {
	return &ImageHandler{images: images, store: store}
}

type generateImageRequest struct {
	Prompt      string `json:"prompt" validate:"required"`
	Model       string `json:"model"`
	AspectRatio string `json:"aspect_ratio"`
	Size        string `json:"size"`
	Count       int    `json:"count"`
}

type imagesResponse struct {
	Generated []string `json:"generated"`
}

// Generate produces new images from a prompt.
//
// @Summary      Generate images
// @Tags         images
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateImageRequest  true  "Generation parameters"
// @Success      200   {object}  imagesResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/image_gen [post]
func (h *ImageHandler) Generate(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	var req generateImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	refs, err := h.images.Generate(c.Request().Context(), user, ports.GenerateParams{
		Prompt:      req.Prompt,
		Model:       req.Model,
		AspectRatio: req.AspectRatio,
		Size:        req.Size,
		Count:       req.Count,
	})
	metrics.ImageRequestDuration.WithLabelValues(string(domain.CategoryGenerated)).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	metrics.ImagesStoredTotal.WithLabelValues(string(domain.CategoryGenerated)).Add(float64(len(refs)))
	return c.JSON(http.StatusOK, imagesResponse{Generated: refs})
}

// Edit transforms an uploaded source image according to a prompt. The
// request is multipart form data with a `sourceImage` file part.
//
// @Summary      Edit an image
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        prompt       formData  string  true   "Edit instruction"
// @Param        model        formData  string  false  "Model name"
// @Param        sourceImage  formData  file    true   "Source image"
// @Success      200  {object}  imagesResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/image_edit [post]
func (h *ImageHandler) Edit(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("sourceImage")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "sourceImage is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "sourceImage is unreadable")
	}
	defer file.Close()
	source, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "sourceImage is unreadable")
	}

	start := time.Now()
	refs, err := h.images.Edit(c.Request().Context(), user, ports.EditParams{
		Prompt: c.FormValue("prompt"),
		Model:  c.FormValue("model"),
	}, source)
	metrics.ImageRequestDuration.WithLabelValues(string(domain.CategoryEdited)).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	metrics.ImagesStoredTotal.WithLabelValues(string(domain.CategoryEdited)).Add(float64(len(refs)))
	return c.JSON(http.StatusOK, imagesResponse{Generated: refs})
}

// Serve returns one stored artifact belonging to the authenticated user.
//
// @Summary      Fetch a stored image
// @Tags         images
// @Produce      png
// @Security     BearerAuth
// @Param        type  path  string  true  "Category: gen or edit"
// @Param        date  path  string  true  "Date segment (ISO 8601)"
// @Param        id    path  string  true  "Filename"
// @Success      200
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/images/{type}/{date}/{id} [get]
func (h *ImageHandler) Serve(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	category := domain.Category(c.Param("type"))
	if !category.Valid() {
		return domain.ErrFileNotFound
	}

	path, err := h.store.ResolveServePath(category, c.Param("date"), c.Param("id"), user.ID)
	if err != nil {
		return err
	}

	metrics.ArtifactsServedTotal.WithLabelValues(string(category)).Inc()
	c.Response().Header().Set("Cache-Control", artifactCacheControl)
	return c.File(path)
}
