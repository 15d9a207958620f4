package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	agg *Aggregator
}

func NewHandler(agg *Aggregator) *Handler {
	return &Handler{agg: agg}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard-stats", h.Stats)
}

// Stats always answers 200: partial backend failures degrade to zero
// counts rather than an error response.
func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.agg.Snapshot(c.Request().Context()))
}
