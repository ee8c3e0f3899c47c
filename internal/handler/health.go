package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health answers load-balancer and uptime probes.  It carries no
// dependency checks on purpose: the process being able to serve JSON
// is the signal, and probing MySQL or Redis here would turn a cache
// hiccup into a restart loop.
func Health(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "success": true,
        "data":    echo.Map{"status": "ok"},
    })
}
