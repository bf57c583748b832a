package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "github.com/yohandiaz/worklog-app/internal/data_models"
	apperrors "github.com/yohandiaz/worklog-app/internal/errors"
	"github.com/yohandiaz/worklog-app/internal/http/validators"
	"github.com/yohandiaz/worklog-app/internal/services"
)

// Number of records shown on the server-rendered listing page.
const htmlPageSize = 100

type Handler struct {
	worklogService *services.WorkLogService
}

func NewHandler(worklogService *services.WorkLogService) *Handler {
	return &Handler{
		worklogService: worklogService,
	}
}

func (h *Handler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "worklog API, see /api/worklogs",
	})
}

func (h *Handler) CreateWorkLog(c echo.Context) error {
	var req dto.WorkLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateWorkLogRequest(&req); err != nil {
		return err
	}

	worklog, err := h.worklogService.Create(c.Request().Context(), &req)
	if err != nil {
		return httpError(err, "failed to create worklog")
	}

	return c.JSON(http.StatusCreated, worklog)
}

func (h *Handler) GetWorkLog(c echo.Context) error {
	id, err := worklogID(c)
	if err != nil {
		return err
	}

	worklog, err := h.worklogService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err, "failed to get worklog")
	}

	return c.JSON(http.StatusOK, worklog)
}

func (h *Handler) ListWorkLogs(c echo.Context) error {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", services.DefaultListLimit)
	if err != nil {
		return err
	}

	worklogs, err := h.worklogService.List(c.Request().Context(), skip, limit)
	if err != nil {
		return httpError(err, "failed to list worklogs")
	}

	return c.JSON(http.StatusOK, worklogs)
}

func (h *Handler) UpdateWorkLog(c echo.Context) error {
	id, err := worklogID(c)
	if err != nil {
		return err
	}

	var req dto.WorkLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateWorkLogRequest(&req); err != nil {
		return err
	}

	worklog, err := h.worklogService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return httpError(err, "failed to update worklog")
	}

	return c.JSON(http.StatusOK, worklog)
}

func (h *Handler) DeleteWorkLog(c echo.Context) error {
	id, err := worklogID(c)
	if err != nil {
		return err
	}

	worklog, err := h.worklogService.Delete(c.Request().Context(), id)
	if err != nil {
		return httpError(err, "failed to delete worklog")
	}

	return c.JSON(http.StatusOK, worklog)
}

// WorkLogsPage renders the HTML listing with the first hundred records.
func (h *Handler) WorkLogsPage(c echo.Context) error {
	worklogs, err := h.worklogService.List(c.Request().Context(), 0, htmlPageSize)
	if err != nil {
		return httpError(err, "failed to list worklogs")
	}

	return c.Render(http.StatusOK, "worklogs.html", echo.Map{
		"Worklogs": worklogs,
	})
}

func worklogID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "worklog id must be an integer")
	}
	return uint(id), nil
}

func queryInt(c echo.Context, name string, defaultVal int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}

// httpError maps domain errors carrying a status code to that status and
// hides everything else behind a generic message.
func httpError(err error, fallback string) *echo.HTTPError {
	status := apperrors.StatusCode(err)
	if status == http.StatusInternalServerError {
		return echo.NewHTTPError(status, fallback)
	}
	return echo.NewHTTPError(status, err.Error())
}
