package errors

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"

	custom_err "github.com/customeros/webmail/api/errors"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrCredentialMissing = errors.New("credential missing from request context")
	ErrCircuitOpen       = errors.New("gmail api temporarily unavailable")
)

// AuthError means the caller has no usable session. It is raised before any upstream call.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return ErrUnauthorized.Error()
	}
	return fmt.Sprintf("%s: %s", ErrUnauthorized.Error(), e.Reason)
}

func (e *AuthError) Unwrap() error {
	return ErrUnauthorized
}

func NewAuthError(reason string) *AuthError {
	return &AuthError{Reason: reason}
}

// ValidationError carries field level details for malformed client input.
type ValidationError struct {
	Fields *custom_err.MultiErrors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

// FieldMessages flattens the field errors for a JSON response.
func (e *ValidationError) FieldMessages() map[string][]string {
	out := make(map[string][]string, len(e.Fields.Errors))
	for field, infos := range e.Fields.Errors {
		for _, info := range infos {
			out[field] = append(out[field], info.Message)
		}
	}
	return out
}

// NewValidationError returns nil when errs holds no errors.
func NewValidationError(errs *custom_err.MultiErrors) error {
	if errs == nil || !errs.HasErrors() {
		return nil
	}
	return &ValidationError{Fields: errs}
}

func NewFieldValidationError(field, message string) error {
	errs := custom_err.NewMultiErrors()
	errs.Add(field, message, nil)
	return &ValidationError{Fields: errs}
}

// UpstreamError is a failed call to the Gmail API. StatusCode is 0 for transport failures.
type UpstreamError struct {
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("gmail api error: %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("gmail api error: %d - %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError converts an error returned by the Gmail client library.
func NewUpstreamError(operation string, err error) *UpstreamError {
	if err == nil {
		return nil
	}
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		body := apiErr.Body
		if body == "" {
			body = apiErr.Message
		}
		return &UpstreamError{Operation: operation, StatusCode: apiErr.Code, Body: body, Err: err}
	}
	if errors.Is(err, ErrCircuitOpen) {
		return &UpstreamError{Operation: operation, StatusCode: http.StatusServiceUnavailable, Body: err.Error(), Err: err}
	}
	return &UpstreamError{Operation: operation, Err: err}
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) || errors.Is(err, ErrUnauthorized)
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
