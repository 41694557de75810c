package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/uwgen/media-api/internal/api/middleware"
	"github.com/uwgen/media-api/internal/core/ports"
)

type SettingsHandler struct {
	vault ports.VaultService
}

func NewSettingsHandler(vault ports.VaultService) *SettingsHandler {
	return &SettingsHandler{vault: vault}
}

type updateSettingsRequest struct {
	GeminiAPIKey *string `json:"gemini_api_key,omitempty"`
}

type regenerateKeyResponse struct {
	APIKey string `json:"api_key"`
}

// Update applies a partial settings update for the authenticated user.
// Fields outside the allow-list are ignored.
//
// @Summary      Update settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateSettingsRequest  true  "Fields to update"
// @Success      204
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/settings [put]
func (h *SettingsHandler) Update(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updates := make(map[string]string)
	if req.GeminiAPIKey != nil {
		updates["gemini_api_key"] = *req.GeminiAPIKey
	}

	if err := h.vault.UpdateSettings(c.Request().Context(), user.ID, updates); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RegenerateAPIKey reissues the user's uwgen API key. The plaintext key is
// returned exactly once; only its ciphertext is persisted.
//
// @Summary      Regenerate the service API key
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  regenerateKeyResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/settings/api-key/regenerate [post]
func (h *SettingsHandler) RegenerateAPIKey(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	key, err := h.vault.GenerateIssuedKey(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	if err := h.vault.UpdateSettings(c.Request().Context(), user.ID, map[string]string{"uwgen_api_key": key}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, regenerateKeyResponse{APIKey: key})
}
