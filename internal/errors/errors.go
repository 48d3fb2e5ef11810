package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller passed an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeContent indicates unresolved or unknown content (ability, effect,
	// functor, or trigger type). Content errors fail closed: the action is
	// refused, never silently skipped.
	CodeContent Code = "content"

	// CodeInsufficientResources indicates the action economy cannot cover a cost
	CodeInsufficientResources Code = "insufficient_resources"

	// CodeIllegalTarget indicates the requested target is not legal for the action
	CodeIllegalTarget Code = "illegal_target"

	// CodeDepthExceeded indicates the resolution stack depth ceiling was hit
	CodeDepthExceeded Code = "depth_exceeded"

	// CodeAwaitingInput indicates resolution is suspended waiting for a
	// player reaction decision
	CodeAwaitingInput Code = "awaiting_input"

	// CodeConstruction indicates an instance was built without required
	// parameters (missing seed, missing content)
	CodeConstruction Code = "construction"

	// CodeInternal indicates an engine invariant was violated
	CodeInternal Code = "internal"
)

// Error represents an engine error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// If it's already our error type, preserve the code
	var engErr *Error
	if errors.As(err, &engErr) {
		return &Error{
			Code:    engErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(engErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// Helper constructors for the engine error taxonomy

// Content creates a content error
func Content(message string) *Error {
	return New(CodeContent, message)
}

// Contentf creates a formatted content error
func Contentf(format string, args ...any) *Error {
	return Newf(CodeContent, format, args...)
}

// InsufficientResources creates an insufficient resources error
func InsufficientResources(message string) *Error {
	return New(CodeInsufficientResources, message)
}

// InsufficientResourcesf creates a formatted insufficient resources error
func InsufficientResourcesf(format string, args ...any) *Error {
	return Newf(CodeInsufficientResources, format, args...)
}

// IllegalTarget creates an illegal target error
func IllegalTarget(message string) *Error {
	return New(CodeIllegalTarget, message)
}

// IllegalTargetf creates a formatted illegal target error
func IllegalTargetf(format string, args ...any) *Error {
	return Newf(CodeIllegalTarget, format, args...)
}

// DepthExceeded creates a depth exceeded error
func DepthExceeded(message string) *Error {
	return New(CodeDepthExceeded, message)
}

// DepthExceededf creates a formatted depth exceeded error
func DepthExceededf(format string, args ...any) *Error {
	return Newf(CodeDepthExceeded, format, args...)
}

// AwaitingInput creates an awaiting input error
func AwaitingInput(message string) *Error {
	return New(CodeAwaitingInput, message)
}

// Construction creates a construction error
func Construction(message string) *Error {
	return New(CodeConstruction, message)
}

// Constructionf creates a formatted construction error
func Constructionf(format string, args ...any) *Error {
	return Newf(CodeConstruction, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var engErr *Error
	if errors.As(err, &engErr) {
		return engErr.Code == code
	}
	return false
}

// IsContent checks if the error is a content error
func IsContent(err error) bool {
	return Is(err, CodeContent)
}

// IsInsufficientResources checks if the error is an insufficient resources error
func IsInsufficientResources(err error) bool {
	return Is(err, CodeInsufficientResources)
}

// IsIllegalTarget checks if the error is an illegal target error
func IsIllegalTarget(err error) bool {
	return Is(err, CodeIllegalTarget)
}

// IsDepthExceeded checks if the error is a depth exceeded error
func IsDepthExceeded(err error) bool {
	return Is(err, CodeDepthExceeded)
}

// IsAwaitingInput checks if the error is an awaiting input error
func IsAwaitingInput(err error) bool {
	return Is(err, CodeAwaitingInput)
}

// IsConstruction checks if the error is a construction error
func IsConstruction(err error) bool {
	return Is(err, CodeConstruction)
}

// IsInternal checks if the error is an internal error
func IsInternal(err error) bool {
	return Is(err, CodeInternal)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var engErr *Error
	if errors.As(err, &engErr) {
		return engErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var engErr *Error
	if errors.As(err, &engErr) {
		return engErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
