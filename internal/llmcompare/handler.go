package llmcompare

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medtrack/medtrack/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/llm", auth.RequireRole("admin"))
	g.GET("/providers", h.ListProviders)
	g.GET("/models", h.ListModels)
	g.POST("/compare", h.Compare)
}

func (h *Handler) ListProviders(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Providers())
}

func (h *Handler) ListModels(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Models(c.Request().Context()))
}

func (h *Handler) Compare(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt is required")
	}
	if len(h.svc.Providers()) == 0 {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no llm providers configured")
	}
	return c.JSON(http.StatusOK, h.svc.Compare(c.Request().Context(), req))
}
