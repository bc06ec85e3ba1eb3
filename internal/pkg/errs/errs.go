package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the generic validation group.
var (
	ErrValueIsRequired = errors.New("value is required")
	ErrValueIsInvalid  = errors.New("value is invalid")
	ErrObjectNotFound  = errors.New("object not found")
)

// Sentinel errors for delivery lifecycle rejections.
var (
	ErrAlreadyTerminal   = errors.New("delivery is in a terminal status")
	ErrInvalidTransition = errors.New("transition is not allowed")
	ErrForbidden         = errors.New("actor is not allowed to perform this transition")
	ErrInvalidAssignee   = errors.New("assignee is invalid")
	ErrVersionConflict   = errors.New("delivery was modified concurrently")
)

// sanitize removes newlines from values interpolated into error messages
// so a single log line stays a single log line.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}

// ValueIsRequiredError indicates a required parameter was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, sanitize(e.ParamName), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a parameter failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, sanitize(e.ParamName), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates a lookup by identifier found nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, sanitize(e.ParamName), e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// AlreadyTerminalError indicates a transition was attempted on a delivery
// whose status is Delivered or Cancelled.
type AlreadyTerminalError struct {
	Status string
}

// NewAlreadyTerminalError creates an AlreadyTerminalError for the given status.
func NewAlreadyTerminalError(status string) *AlreadyTerminalError {
	return &AlreadyTerminalError{Status: status}
}

func (e *AlreadyTerminalError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadyTerminal, sanitize(e.Status))
}

func (e *AlreadyTerminalError) Unwrap() error {
	return ErrAlreadyTerminal
}

// InvalidTransitionError indicates the requested status is neither the
// immediate successor of the current status nor Cancelled.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the attempted jump.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, sanitize(e.From), sanitize(e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ForbiddenError indicates the authorization policy does not grant the
// actor's role and relationship the requested target status.
type ForbiddenError struct {
	Role   string
	Target string
}

// NewForbiddenError creates a ForbiddenError for the role and target status.
func NewForbiddenError(role, target string) *ForbiddenError {
	return &ForbiddenError{Role: role, Target: target}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: role is: %s, target status is: %s",
		ErrForbidden, sanitize(e.Role), sanitize(e.Target))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidAssigneeError indicates a transition into Assigned was requested
// without an assignee, or with an assignee that is not a courier.
type InvalidAssigneeError struct {
	Reason string
	Cause  error
}

// NewInvalidAssigneeError creates an InvalidAssigneeError without a cause.
func NewInvalidAssigneeError(reason string) *InvalidAssigneeError {
	return &InvalidAssigneeError{Reason: reason}
}

// NewInvalidAssigneeErrorWithCause creates an InvalidAssigneeError wrapping a cause.
func NewInvalidAssigneeErrorWithCause(reason string, cause error) *InvalidAssigneeError {
	return &InvalidAssigneeError{Reason: reason, Cause: cause}
}

func (e *InvalidAssigneeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrInvalidAssignee, sanitize(e.Reason), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidAssignee, sanitize(e.Reason))
}

func (e *InvalidAssigneeError) Unwrap() error {
	return ErrInvalidAssignee
}

// VersionConflictError indicates an optimistic-lock write lost a race:
// the row's version no longer matched the version that was read.
// Callers are expected to re-read and re-attempt; the core never retries.
type VersionConflictError struct {
	ParamName string
	ID        any
	Version   int64
}

// NewVersionConflictError creates a VersionConflictError for the stale write.
func NewVersionConflictError(paramName string, id any, version int64) *VersionConflictError {
	return &VersionConflictError{ParamName: paramName, ID: id, Version: version}
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: param is: %s, ID is: %s, expected version is: %d",
		ErrVersionConflict, sanitize(e.ParamName), e.ID, e.Version)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
