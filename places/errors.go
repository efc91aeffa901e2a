package places

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// ErrMissingPlaceID is returned before any network call when a details
// lookup is attempted with an empty place id.
var ErrMissingPlaceID = errors.New("place id must not be empty")

// StatusError carries a non-2xx response from the remote service. Message is
// the server-provided error message when the body contained one, otherwise a
// message synthesized from the status code.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

func newStatusError(operation string, statusCode int, body []byte) *StatusError {
	var errResp errorResponse
	if err := jsoniter.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return &StatusError{StatusCode: statusCode, Message: errResp.Error.Message}
	}

	return &StatusError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("%s request failed with status %d", operation, statusCode),
	}
}
