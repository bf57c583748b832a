package http

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "github.com/yohandiaz/worklog-app/internal/http/middlewares"
)

// Register mounts the API under /api and the HTML listing at the root.
// Trailing slashes are stripped up front so both /api/worklogs and
// /api/worklogs/ address the collection.
func Register(e *echo.Echo, h *Handler) {
	e.Pre(echomw.RemoveTrailingSlash())

	api := e.Group("/api")
	api.GET("", h.Index)
	api.POST("/worklogs", h.CreateWorkLog)
	api.GET("/worklogs", h.ListWorkLogs)
	api.GET("/worklogs/:id", h.GetWorkLog)
	api.PUT("/worklogs/:id", h.UpdateWorkLog)
	api.DELETE("/worklogs/:id", h.DeleteWorkLog)

	e.GET("/", h.WorkLogsPage)
	e.GET("/metrics", middleware.MetricsHandler())
}
