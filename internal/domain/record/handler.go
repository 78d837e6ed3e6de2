package record

import (
	"errors"
	"net/http"
	"strconv"
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
	read := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	read.GET("/patients/:id/records", h.PatientRecords)
	read.GET("/records/recent", h.RecentRecords)
	read.GET("/records/:id", h.GetRecord)
	read.GET("/records/:id/file", h.DownloadFile)

	write := api.Group("", auth.RequireRole("admin", "physician"))
	write.POST("/records", h.AddRecord)
	write.DELETE("/records/:id", h.DeleteRecord)
}

// AddRecord accepts a multipart form: record fields plus an optional "file"
// part for the document itself.
func (h *Handler) AddRecord(c echo.Context) error {
	rec := Record{
		PatientID:  c.FormValue("patient_id"),
		RecordType: c.FormValue("record_type"),
	}
	if v := c.FormValue("description"); v != "" {
		rec.Description = &v
	}
	if v := c.FormValue("doctor_name"); v != "" {
		rec.DoctorName = &v
	}
	if v := c.FormValue("facility_name"); v != "" {
		rec.FacilityName = &v
	}
	if v := c.FormValue("record_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "record_date must be YYYY-MM-DD")
		}
		rec.RecordDate = d
	}

	var upload *Upload
	if fh, err := c.FormFile("file"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		defer src.Close()
		upload = &Upload{Name: fh.Filename, Content: src}
	}

	if err := h.svc.Add(c.Request().Context(), &rec, upload); err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) GetRecord(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rec, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) RecentRecords(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	records, err := h.svc.Recent(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) PatientRecords(c echo.Context) error {
	records, err := h.svc.ForPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) DownloadFile(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rec, f, err := h.svc.OpenFile(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "record not found")
		}
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	defer f.Close()
	return c.Attachment(f.Name(), *rec.FileName)
}

func (h *Handler) DeleteRecord(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
