package errors

import (
	"errors"
	"net/http"
)

// Exception is a domain error that already knows the HTTP status it maps
// to. Anything else is treated as an infrastructure failure.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
