package api

import (
	"errors"
	"fmt"
)

// Error codes the client special-cases. Anything else is passed through for
// the view layer to render verbatim.
const (
	CodeInvalidPassword     = "invalid_password"
	CodeInvalidPaprikaLogin = "invalid_paprika_login"
	CodeNoSuchUser          = "no_such_user"
	CodeCannotAddSelf       = "cannot_add_self"
)

// Error is a domain error returned by the service as {"error": ..., "detail": ...}.
type Error struct {
	Code   string `json:"error"`
	Detail string `json:"detail,omitempty"`

	// Status is the HTTP status the error arrived with; zero when the error
	// was produced locally before any request was made.
	Status int `json:"-"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return e.Code
}

// ErrorCode extracts the domain error code from err, or "" if err is not a
// service error.
func ErrorCode(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}
