package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultErrorMessage is the message used when neither the server nor the
// transport supplied one.
const DefaultErrorMessage = "request failed"

// Error is the normalized form of every API failure. Callers see exactly one
// human-readable Message regardless of whether the failure was a non-2xx
// response or a transport error. StatusCode is 0 for transport failures.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// DecodeError indicates the server returned a 2xx response whose body could
// not be decoded into the expected shape. It is deliberately distinct from
// *Error: a decode failure means the contract with the server is broken, not
// that the request failed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a normalized API error with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// normalizeError builds the single-message error for a failed request.
// Message precedence: server-supplied message field, then the transport
// error, then DefaultErrorMessage.
func normalizeError(statusCode int, body []byte, transportErr error) *Error {
	if len(body) > 0 {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return &Error{StatusCode: statusCode, Message: payload.Message}
		}
	}
	if transportErr != nil {
		return &Error{StatusCode: statusCode, Message: transportErr.Error()}
	}
	return &Error{StatusCode: statusCode, Message: DefaultErrorMessage}
}
