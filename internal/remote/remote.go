// Package remote holds the error plumbing shared by the collaborator HTTP
// clients. Both endpoints report failures the same way: a non-2xx status with
// an optional JSON body carrying a "detail" or "message" string.
package remote

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Bodies of failed responses are read fully but capped; a misbehaving server
// must not make the client buffer arbitrary amounts.
const maxErrorBodyBytes = 64 << 10

// StatusError is a collaborator endpoint's rejection of a request.
type StatusError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Status is the HTTP status line text, e.g. "502 Bad Gateway".
	Status string

	// Detail is the server-supplied failure description, when the body
	// carried one. Empty for non-JSON bodies.
	Detail string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Message returns the user-facing failure description: the server detail when
// present, else the HTTP status text.
func (e *StatusError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return e.Status
}

// ErrorFromResponse builds a StatusError from a non-2xx response, consuming
// the body. The body is decoded as JSON looking for "detail" then "message";
// a body that is not JSON yields an empty Detail.
func ErrorFromResponse(resp *http.Response) *StatusError {
	statusErr := &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return statusErr
	}

	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return statusErr
	}
	if payload.Detail != "" {
		statusErr.Detail = payload.Detail
	} else if payload.Message != "" {
		statusErr.Detail = payload.Message
	}
	return statusErr
}
