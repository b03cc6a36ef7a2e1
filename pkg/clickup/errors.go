package clickup

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidResponse means the API answered with something that cannot be
// used as structured data: a non-JSON body, an error status or a JSON
// document of the wrong shape.
var ErrInvalidResponse = errors.New("clickup: invalid response")

// APIError describes an unusable response. It matches ErrInvalidResponse
// with errors.Is.
type APIError struct {
	Op         string
	StatusCode int
	Code       string // ClickUp ECODE, when present
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("clickup %s: status %d: %s (%s)", e.Op, e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("clickup %s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrInvalidResponse
}

// newAPIError builds an APIError from a raw body. ClickUp error bodies look
// like {"err":"Team not authorized","ECODE":"OAUTH_027"}.
func newAPIError(op string, status int, body []byte) *APIError {
	e := &APIError{Op: op, StatusCode: status, Body: string(body)}
	if !gjson.ValidBytes(body) {
		e.Message = "response is not valid JSON"
		return e
	}
	e.Message = gjson.GetBytes(body, "err").String()
	e.Code = gjson.GetBytes(body, "ECODE").String()
	if e.Message == "" {
		e.Message = "unexpected response"
	}
	return e
}
