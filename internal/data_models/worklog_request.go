package dto

import (
	model "github.com/yohandiaz/worklog-app/internal/models"
)

// WorkLogRequest is the payload for both create and update. Update is a
// full replacement, so the two share one shape: omitted fields take their
// defaults (empty description, today's date, not highlighted).
type WorkLogRequest struct {
	Task          string     `json:"task"`
	Description   string     `json:"description"`
	Date          model.Date `json:"date"`
	IsHighlighted bool       `json:"is_highlighted"`
}
