package settings

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers provides HTTP handlers for settings.
type Handlers struct {
	service *Service
}

// NewHandlers creates new settings handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the settings routes.
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	g.GET("/display", h.GetDisplay)
	g.PUT("/display", h.PutDisplay)
}

// GetDisplay returns the display settings.
// GET /api/v1/settings/display
func (h *Handlers) GetDisplay(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.GetDisplaySettings(c.Request().Context()))
}

// PutDisplay updates the display settings.
// PUT /api/v1/settings/display
func (h *Handlers) PutDisplay(c echo.Context) error {
	var settings DisplaySettings
	if err := c.Bind(&settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid settings payload")
	}
	if err := h.service.SetDisplaySettings(c.Request().Context(), settings); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, settings)
}
