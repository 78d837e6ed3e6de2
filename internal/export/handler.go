package export

import (
	"fmt"
	"net/http"
	"time"

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
	g := api.Group("/export", auth.RequireRole("admin"))
	g.GET("/demographics.csv", h.DemographicsCSV)
	g.GET("/metrics.csv", h.MetricsCSV)
	g.GET("/records.csv", h.RecordsCSV)
	g.GET("/dataset.json", h.CompleteDataset)
}

func csvResponse(c echo.Context, name string) {
	stamp := time.Now().Format("20060102_150405")
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s_%s.csv"`, name, stamp))
	c.Response().WriteHeader(http.StatusOK)
}

func (h *Handler) DemographicsCSV(c echo.Context) error {
	csvResponse(c, "patient_demographics")
	return h.svc.DemographicsCSV(c.Request().Context(), c.Response())
}

func (h *Handler) MetricsCSV(c echo.Context) error {
	csvResponse(c, "health_metrics")
	return h.svc.MetricsCSV(c.Request().Context(), c.Response())
}

func (h *Handler) RecordsCSV(c echo.Context) error {
	csvResponse(c, "medical_records")
	return h.svc.RecordsCSV(c.Request().Context(), c.Response())
}

func (h *Handler) CompleteDataset(c echo.Context) error {
	ds, err := h.svc.CompleteDataset(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ds)
}
