package domain

import "fmt"

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIError is returned for any non-2xx backend response. Detail is nil when
// the body was missing or did not have the {"detail": {...}} shape.
type APIError struct {
	StatusCode int
	Detail     *ErrorDetail
}

func (e *APIError) Message() string {
	if e.Detail == nil {
		return ""
	}
	return e.Detail.Message
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("backend responded %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("backend responded %d", e.StatusCode)
}
