package vk

import "fmt"

// Upstream error codes the resolver dispatches on.
const (
	ErrCodeInvalidUser  = 113
	ErrCodeInvalidGroup = 125
)

// ConnectionError means the upstream API could not be reached or its
// response could not be parsed.
type ConnectionError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("API call %s failed: %s", e.URL, e.Err)
}

// Unwrap returns the underlying transport or parse error
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ServerError means the upstream API explicitly reported a failure.
// Message is user-facing and already translated where a translation is
// known.
type ServerError struct {
	Code    int
	Message string
}

// Error implements the error interface
func (e *ServerError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}
