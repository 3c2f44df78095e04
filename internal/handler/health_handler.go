package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness plus uptime and memory usage.
func HealthCheck(c echo.Context) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return c.JSON(http.StatusOK, echo.Map{
		"status":         "healthy",
		"service":        "crm-api",
		"uptime_seconds": int64(time.Since(startTime).Seconds()),
		"memory": echo.Map{
			"alloc_bytes":       mem.Alloc,
			"total_alloc_bytes": mem.TotalAlloc,
			"sys_bytes":         mem.Sys,
			"num_gc":            mem.NumGC,
		},
	})
}
