package client

import (
	"errors"
	"fmt"
)

var (
	// ErrElementNotFound covers both an absent element and a wait that timed out.
	ErrElementNotFound = errors.New("element not found")
	ErrNavigation      = errors.New("navigation failed")
	ErrSessionClosed   = errors.New("page session already closed")

	ErrNoData    = errors.New("no data")
	ErrTransport = errors.New("transport failure")
)

// FailureReason tells apart the causes that ErrElementNotFound merges.
type FailureReason string

const (
	ReasonTimeout    FailureReason = "timeout"
	ReasonMissing    FailureReason = "missing"
	ReasonNavigation FailureReason = "navigation"
	ReasonSnapshot   FailureReason = "snapshot"
)

// ExtractionError is returned by PageSession.Extract for any failed attempt.
type ExtractionError struct {
	Field    string
	Selector string
	Reason   FailureReason
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("extract %s (%s): %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract %s (%s) %q: %v", e.Field, e.Reason, e.Selector, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func missingElement(field, selector string) *ExtractionError {
	return &ExtractionError{
		Field:    field,
		Selector: selector,
		Reason:   ReasonMissing,
		Err:      ErrElementNotFound,
	}
}

// StatusError is a non-200 response from the countries API.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s: %s", e.Code, e.URL, e.Body)
}

// DecodeError is a 200 response whose body is not a country object or array.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
