package bookshelf

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/smithy-go"
)

var (
	// ErrBookNotFound is returned by a Store when no book has the requested id.
	ErrBookNotFound = errors.New("book not found")
	// ErrBookExists is returned by a Store when a create collides with an existing id.
	ErrBookExists = errors.New("book already exists")
)

// ErrorCode is the machine-readable code carried in every error response.
type ErrorCode string

const (
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeStore      ErrorCode = "DDB_ERROR"
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
)

// Status returns the HTTP status code paired with c.
func (c ErrorCode) Status() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeStore:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// APIError is an error that is reported to the caller as-is. It doubles as
// the JSON error body.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Status returns the HTTP status code of the error.
func (e *APIError) Status() int {
	return e.Code.Status()
}

func validationError(message string) *APIError {
	return &APIError{Code: CodeValidation, Message: message}
}

func notFoundError(message string) *APIError {
	return &APIError{Code: CodeNotFound, Message: message}
}

var (
	errBookNotFound  = notFoundError("book not found")
	errRouteNotFound = notFoundError("route not found")
	errStore         = &APIError{Code: CodeStore, Message: "temporary unavailable"}
	errInternal      = &APIError{Code: CodeInternal, Message: "unexpected error"}
)

// StoreError marks a failure to communicate with the record store. Callers
// should treat it as transient.
type StoreError struct {
	Op   string // the DynamoDB operation, e.g. "GetItem"
	Code string // the service error code, when the service returned one
	Err  error
}

func newStoreError(op string, err error) *StoreError {
	se := &StoreError{Op: op, Err: err}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		se.Code = apiErr.ErrorCode()
	}
	return se
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("dynamodb %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
