// internal/loyalty/errors.go
package loyalty

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed portal operation
type ErrorKind string

const (
	// KindNetwork means no response reached the server
	KindNetwork ErrorKind = "network"
	// KindServer means the server answered with a non-2xx status and a message payload
	KindServer ErrorKind = "server"
	// KindValidation means the request was rejected locally before any network call
	KindValidation ErrorKind = "validation"
	// KindAuthorization means the server answered 401 and the session must be torn down
	KindAuthorization ErrorKind = "authorization"
)

// APIError is the error surfaced for every failed upstream or local operation
type APIError struct {
	Kind    ErrorKind `json:"kind"`
	Status  int       `json:"status,omitempty"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s error (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// NewNetworkError wraps a transport failure where no response arrived
func NewNetworkError(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: "Network error - please check your connection",
		Details: err.Error(),
	}
}

// NewServerError wraps a non-2xx response
func NewServerError(status int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("HTTP %d Error", status)
	}
	return &APIError{
		Kind:    KindServer,
		Status:  status,
		Message: message,
	}
}

// NewValidationError reports a locally rejected request
func NewValidationError(message string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
	}
}

// NewAuthorizationError reports a 401 from the backend
func NewAuthorizationError(message string) *APIError {
	if message == "" {
		message = "Session expired - please log in again"
	}
	return &APIError{
		Kind:    KindAuthorization,
		Status:  401,
		Message: message,
	}
}

// AsAPIError unwraps err into an *APIError when possible
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthorization reports whether err is an authorization failure
func IsAuthorization(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == KindAuthorization
}

// IsValidation reports whether err was rejected locally
func IsValidation(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == KindValidation
}
