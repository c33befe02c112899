package core

import "fmt"

type ErrorCode string

const (
	ErrBadRequest          ErrorCode = "AUDIT_BAD_REQUEST"
	ErrUpstream            ErrorCode = "AUDIT_UPSTREAM_ERROR"
	ErrUpstreamUnavailable ErrorCode = "AUDIT_UPSTREAM_UNAVAILABLE"
	ErrInternal            ErrorCode = "AUDIT_INTERNAL"
)

const (
	MsgProjectIDMissing = "Project ID is missing"
	MsgFetchFailed      = "Failed to fetch project audit data"
)

// HTTPStatus returns the HTTP status code for this error code.
func (e ErrorCode) HTTPStatus() int {
	switch e {
	case ErrBadRequest:
		return 400
	case ErrUpstream, ErrUpstreamUnavailable:
		return 502
	default:
		return 500
	}
}

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Status overrides the code's default HTTP status, e.g. to pass an
	// upstream status through to the caller.
	Status int `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus returns the explicit status if set, otherwise the code's default.
func (e *AppError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return e.Code.HTTPStatus()
}

func NewAppError(code ErrorCode, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// UpstreamError is returned by a property source when the backing system
// answered with a non-success status.
type UpstreamError struct {
	Source     string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream status %d", e.Source, e.StatusCode)
}
