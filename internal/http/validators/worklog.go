package validators

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "github.com/yohandiaz/worklog-app/internal/data_models"
)

// ValidateWorkLogRequest checks the payload shared by create and update.
// Only task is required; every other field has a default. Type errors are
// caught earlier, at JSON binding.
func ValidateWorkLogRequest(r *dto.WorkLogRequest) error {
	if strings.TrimSpace(r.Task) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task is required")
	}
	return nil
}
