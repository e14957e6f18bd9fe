package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobledger/internal/middleware"
	"jobledger/internal/service"
	"jobledger/pkg/response"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler sets up the routing dependencies for Settings endpoints
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/settings", middleware.RequireAuth())
	{
		settings.GET("", h.GetSettings)
		settings.PUT("", h.SaveSettings)
	}
}

// GetSettings handles GET /settings
// @Summary      Get business settings
// @Description  Returns the authenticated user's business settings, or defaults if none are saved yet
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=model.Settings}
// @Failure      500  {object}  response.Response
// @Router       /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch settings"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// SaveSettings handles PUT /settings
// @Summary      Save business settings
// @Description  Creates or replaces the authenticated user's business settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SettingsRequest  true  "Settings Payload"
// @Success      200      {object}  response.Response{data=model.Settings}
// @Failure      400      {object}  response.Response
// @Router       /settings [put]
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	settings, err := h.settingsService.SaveSettings(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}
