package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// PoolStats represents database connection pool statistics.
type PoolStats struct {
	TotalConns      int32  `json:"total_conns"`
	IdleConns       int32  `json:"idle_conns"`
	AcquiredConns   int32  `json:"acquired_conns"`
	MaxConns        int32  `json:"max_conns"`
	AcquireCount    int64  `json:"acquire_count"`
	AcquireDuration string `json:"acquire_duration"`
	Healthy         bool   `json:"healthy"`
}

// GetPoolStats returns connection pool statistics.
func GetPoolStats(pool *pgxpool.Pool) *PoolStats {
	stat := pool.Stat()
	return &PoolStats{
		TotalConns:      stat.TotalConns(),
		IdleConns:       stat.IdleConns(),
		AcquiredConns:   stat.AcquiredConns(),
		MaxConns:        stat.MaxConns(),
		AcquireCount:    stat.AcquireCount(),
		AcquireDuration: stat.AcquireDuration().String(),
		Healthy:         stat.TotalConns() > 0,
	}
}

// StatusHandler returns the handler for GET /api/db-status: it runs a probe
// query against the pool and reports the outcome alongside pool statistics.
func StatusHandler(pool *pgxpool.Pool, sup *Supervisor) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		var result int
		err := pool.QueryRow(ctx, `SELECT 1`).Scan(&result)
		if err != nil {
			sup.ReportFailure(err)
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status":  "error",
				"message": "database query failed: " + err.Error(),
				"pool":    GetPoolStats(pool),
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":      "ok",
			"message":     "database connection is working",
			"queryResult": result,
			"pool":        GetPoolStats(pool),
		})
	}
}
