// Package apperrors classifies failures surfaced to console operators:
// validation problems caught before any request is sent, network failures of
// individual requests, and batches that only partly succeeded.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError is a missing or malformed input value. It blocks submission
// and is shown next to the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError for one field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidationErrors collects every invalid field of one submission.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// OrNil returns nil when no field failed.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsValidation reports whether err carries a validation failure.
func IsValidation(err error) bool {
	var single *ValidationError
	var many ValidationErrors
	return errors.As(err, &single) || errors.As(err, &many)
}

// NetworkError is a failed request against the backend. Status is 0 when no
// response was received.
type NetworkError struct {
	Op      string
	Status  int
	Message string
	Err     error

	notified bool
}

func (e *NetworkError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Permission reports an insufficient-permissions response.
func (e *NetworkError) Permission() bool {
	return e.Status == http.StatusForbidden || e.Status == http.StatusUnauthorized
}

// Conflict reports that the record already exists.
func (e *NetworkError) Conflict() bool { return e.Status == http.StatusConflict }

// NotFound reports a missing record.
func (e *NetworkError) NotFound() bool { return e.Status == http.StatusNotFound }

// AsNetwork unwraps err to a NetworkError.
func AsNetwork(err error) (*NetworkError, bool) {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	ne, ok := AsNetwork(err)
	return ok && ne.NotFound()
}

// IsConflict reports whether err is a 409 from the backend.
func IsConflict(err error) bool {
	ne, ok := AsNetwork(err)
	return ok && ne.Conflict()
}

// MarkNotified records that the user has already been told about err, so
// page-level handlers do not show a second notification.
func MarkNotified(err error) {
	if ne, ok := AsNetwork(err); ok {
		ne.notified = true
	}
}

// AlreadyNotified reports whether MarkNotified was called for err.
func AlreadyNotified(err error) bool {
	ne, ok := AsNetwork(err)
	return ok && ne.notified
}

// BatchFailure is one failed member of a batch of requests.
type BatchFailure struct {
	Item string
	Err  error
}

// PartialBatchFailure reports the members of a batch that failed while the
// rest of the batch succeeded.
type PartialBatchFailure struct {
	Op       string
	Failures []BatchFailure
}

func (e *PartialBatchFailure) Error() string {
	items := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		items = append(items, fmt.Sprintf("%s: %v", f.Item, f.Err))
	}
	return fmt.Sprintf("%s: %d failed (%s)", e.Op, len(e.Failures), strings.Join(items, "; "))
}

// Add records a failed member.
func (e *PartialBatchFailure) Add(item string, err error) {
	e.Failures = append(e.Failures, BatchFailure{Item: item, Err: err})
}

// OrNil returns nil when nothing failed.
func (e *PartialBatchFailure) OrNil() error {
	if e == nil || len(e.Failures) == 0 {
		return nil
	}
	return e
}
