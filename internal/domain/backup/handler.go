package backup

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	exporter *Exporter
	importer *Importer
}

func NewHandler(exporter *Exporter, importer *Importer) *Handler {
	return &Handler{exporter: exporter, importer: importer}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/export-data", h.Export)
	api.POST("/import-data", h.Import)
}

type exportResponse struct {
	Success    bool                   `json:"success"`
	ExportedAt time.Time              `json:"exportedAt"`
	Data       map[string]interface{} `json:"data"`
}

type importRequest struct {
	Data map[string]json.RawMessage `json:"data"`
}

type importResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) Export(c echo.Context) error {
	data := h.exporter.Export(c.Request().Context())
	return c.JSON(http.StatusOK, exportResponse{
		Success:    true,
		ExportedAt: time.Now().UTC(),
		Data:       data,
	})
}

func (h *Handler) Import(c echo.Context) error {
	var req importRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Data == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "data is required")
	}
	if err := h.importer.Import(c.Request().Context(), req.Data); err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			return echo.NewHTTPError(http.StatusBadRequest, reqErr.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to import data")
	}
	return c.JSON(http.StatusOK, importResponse{
		Success: true,
		Message: "data imported successfully",
	})
}
