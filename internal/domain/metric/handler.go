package metric

import (
	"errors"
	"net/http"
	"strconv"

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
	read := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	read.GET("/patients/:id/metrics", h.PatientMetrics)
	read.GET("/metrics/recent", h.RecentMetrics)
	read.GET("/metrics/types", h.MetricTypes)

	write := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	write.POST("/metrics", h.AddMetric)
}

func (h *Handler) AddMetric(c echo.Context) error {
	var m Metric
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Add(c.Request().Context(), &m); err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) PatientMetrics(c echo.Context) error {
	metrics, err := h.svc.ForPatient(c.Request().Context(), c.Param("id"), c.QueryParam("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, metrics)
}

func (h *Handler) RecentMetrics(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	metrics, err := h.svc.Recent(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, metrics)
}

func (h *Handler) MetricTypes(c echo.Context) error {
	types, err := h.svc.AllTypes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, types)
}
