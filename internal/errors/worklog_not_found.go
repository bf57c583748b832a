package errors

import "net/http"

// ErrWorkLogNotFound is the normal "absent" outcome for get, update and
// delete addressed at an id that does not exist. It is not an
// infrastructure failure.
var ErrWorkLogNotFound = &Exception{
	Message:    "worklog not found",
	StatusCode: http.StatusNotFound,
}
