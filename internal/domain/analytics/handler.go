package analytics

import (
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
	g := api.Group("/analytics", auth.RequireRole("admin", "physician", "nurse"))
	g.GET("/overview", h.Overview)
	g.GET("/patients/statistics", h.PatientStatistics)
	g.GET("/patients/gender", h.GenderDistribution)
	g.GET("/patients/age", h.AgeDistribution)
	g.GET("/patients/active", h.ActivePatients)
	g.GET("/activity/recent", h.RecentActivity)
	g.GET("/activity/most-active", h.MostActivePatients)
	g.GET("/metrics/common-types", h.CommonMetricTypes)
	g.GET("/records/common-types", h.CommonRecordTypes)

	g.GET("/charts/gender", h.GenderChart)
	g.GET("/charts/age", h.AgeChart)
	g.GET("/charts/metric-types", h.MetricTypesChart)
	g.GET("/charts/record-types", h.RecordTypesChart)
	g.GET("/charts/activity-timeline", h.ActivityTimelineChart)
	g.GET("/charts/patients/:id/trend", h.MetricTrendChart)
}

func (h *Handler) Overview(c echo.Context) error {
	o, err := h.svc.Overview(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) PatientStatistics(c echo.Context) error {
	stats, err := h.svc.PatientStatistics(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) GenderDistribution(c echo.Context) error {
	dist, err := h.svc.GenderDistribution(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dist)
}

func (h *Handler) AgeDistribution(c echo.Context) error {
	buckets, err := h.svc.AgeDistribution(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, buckets)
}

func (h *Handler) ActivePatients(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	n, err := h.svc.ActivePatientsCount(c.Request().Context(), days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int{"active_patients": n})
}

func (h *Handler) RecentActivity(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	feed, err := h.svc.RecentActivity(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, feed)
}

func (h *Handler) MostActivePatients(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	top, err := h.svc.MostActivePatients(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, top)
}

func (h *Handler) CommonMetricTypes(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	types, err := h.svc.CommonMetricTypes(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, types)
}

func (h *Handler) CommonRecordTypes(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	types, err := h.svc.CommonRecordTypes(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, types)
}

func (h *Handler) GenderChart(c echo.Context) error {
	fig, err := h.svc.GenderFigure(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, fig)
}

func (h *Handler) AgeChart(c echo.Context) error {
	fig, err := h.svc.AgeFigure(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, fig)
}

func (h *Handler) MetricTypesChart(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	fig, err := h.svc.MetricTypesFigure(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, fig)
}

func (h *Handler) RecordTypesChart(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	fig, err := h.svc.RecordTypesFigure(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, fig)
}

func (h *Handler) ActivityTimelineChart(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	fig, err := h.svc.ActivityTimelineFigure(c.Request().Context(), days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, fig)
}

func (h *Handler) MetricTrendChart(c echo.Context) error {
	metricType := c.QueryParam("type")
	if metricType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "type query parameter is required")
	}
	fig, err := h.svc.MetricTrendFigure(c.Request().Context(), c.Param("id"), metricType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, fig)
}
