// Package errs provides standardized error types for the delivery coordination
// application. It implements a consistent pattern for error creation, formatting,
// and unwrapping that is used throughout the application.
//
// The package contains two groups of errors:
//
// Generic validation errors used by domain constructors:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//
// Rejection reasons for the delivery lifecycle, surfaced untouched to callers:
//   - AlreadyTerminalError: For transitions attempted on Delivered/Cancelled deliveries
//   - InvalidTransitionError: For jumps that violate the lifecycle order
//   - ForbiddenError: For transitions the actor is not authorized to perform
//   - InvalidAssigneeError: For assignment without a valid courier
//   - VersionConflictError: For optimistic-lock losers on concurrent writes
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Handlers branch on the sentinels with errors.Is to map rejections to transport
// responses without inspecting message strings.
package errs
