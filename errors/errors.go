package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the unified error type returned by the container.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Registration errors ---

// UnregisteredType creates an error for a type that has no binding.
func UnregisteredType(typeName string) *AppError {
	return &AppError{
		Code:    ErrCodeUnregisteredType,
		Message: fmt.Sprintf("Type %s was not registered.", typeName),
		Details: map[string]any{"type": typeName},
	}
}

// UnregisteredInScope creates an error for a scoped type bound after the current scope began.
func UnregisteredInScope(typeName, scopeID string) *AppError {
	return &AppError{
		Code:    ErrCodeUnregisteredType,
		Message: fmt.Sprintf("Type %s was not registered in the current scope.", typeName),
		Details: map[string]any{"type": typeName, "scope": scopeID},
	}
}

// TypeAlreadyRegistered creates an error for a second binding of the same type.
func TypeAlreadyRegistered(typeName, lifecycle string) *AppError {
	return &AppError{
		Code:    ErrCodeTypeAlreadyRegistered,
		Message: fmt.Sprintf("Type %s has already been registered under lifecycle %s.", typeName, lifecycle),
		Details: map[string]any{"type": typeName, "lifecycle": lifecycle},
	}
}

// SingletonSourceConflict creates an error for a singleton bound both by
// constructor and by factory. viaFactory reports which source already exists.
func SingletonSourceConflict(typeName string, viaFactory bool) *AppError {
	msg := fmt.Sprintf("Type %s has already been registered as a singleton.", typeName)
	if viaFactory {
		msg = fmt.Sprintf("Type %s has already been registered as a singleton to be resolved using a factory.", typeName)
	}
	return &AppError{
		Code:    ErrCodeTypeAlreadyRegistered,
		Message: msg,
		Details: map[string]any{"type": typeName, "factory": viaFactory},
	}
}

// CyclicDependency creates an error for a dependency cycle found while
// registering or building typeName.
func CyclicDependency(typeName string, path []string) *AppError {
	return &AppError{
		Code:    ErrCodeCyclicDependency,
		Message: fmt.Sprintf("Cyclic dependency detected for type %s.", typeName),
		Details: map[string]any{"type": typeName, "path": strings.Join(path, " -> ")},
	}
}

// InvalidBinding creates an error for malformed binder input.
func InvalidBinding(typeName, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidBinding,
		Message: fmt.Sprintf("Invalid binding for type %s: %s", typeName, reason),
		Details: map[string]any{"type": typeName},
	}
}

// --- Construction errors ---

// ConstructorResolution wraps a failure raised while constructing a type.
func ConstructorResolution(typeName string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeConstructorResolution,
		Message: fmt.Sprintf("An error occurred while resolving type {%s}.", typeName),
		Details: map[string]any{"type": typeName},
		Cause:   cause,
	}
}

// Injection creates an error for a field that could not be assigned.
func Injection(field, targetType string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInjectionFailed,
		Message: fmt.Sprintf("Could not inject property %s of type %s.", field, targetType),
		Details: map[string]any{"field": field, "target": targetType},
		Cause:   cause,
	}
}

// InvalidInjectionTarget creates an error for a target that exposes no injectable fields.
func InvalidInjectionTarget(targetType string) *AppError {
	return &AppError{
		Code:    ErrCodeInjectionFailed,
		Message: fmt.Sprintf("Could not inject into %s: target must be a non-nil pointer to a struct or implement Injectable.", targetType),
		Details: map[string]any{"target": targetType},
	}
}

// InvalidMarker creates an error for an unusable injection marker.
func InvalidMarker(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidMarker,
		Message: fmt.Sprintf("Injection marker is invalid: %s", reason),
	}
}

// --- Configuration errors ---

// InvalidConfig creates an error for configuration that failed validation.
func InvalidConfig(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidConfig,
		Message: message,
	}
}

// --- Scope errors ---

// OutsideScope creates an error for a scope-context dependency requested with no active scope.
func OutsideScope(typeName string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidScopeContext,
		Message: fmt.Sprintf("Dependency of type %s can not be satisfied outside of a scope.", typeName),
		Details: map[string]any{"type": typeName},
	}
}

// ScopedOutsideScope creates an error for a scoped type resolved with no active scope.
func ScopedOutsideScope(typeName string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidScope,
		Message: fmt.Sprintf("Scoped type %s can not be resolved outside of a scope.", typeName),
		Details: map[string]any{"type": typeName},
	}
}

// NullScopeContext creates an error for a scope-context dependency requested in a scope without context.
func NullScopeContext(typeName string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidScope,
		Message: fmt.Sprintf("Dependency of type %s could not be satisfied because it depends on the current scope context which is null.", typeName),
		Details: map[string]any{"type": typeName},
	}
}

// ScopeContextMismatch creates an error for a scope context whose type is not permitted.
func ScopeContextMismatch(typeName, contextType string, permitted []string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidScopeContext,
		Message: fmt.Sprintf("Dependency of type %s could not be satisfied by the current scope context %s. Scope context must be one of [%s]",
			typeName, contextType, strings.Join(permitted, ",")),
		Details: map[string]any{"type": typeName, "context": contextType, "permitted": permitted},
	}
}

// NoActiveScope creates an error for ending a scope when none is active.
func NoActiveScope() *AppError {
	return &AppError{
		Code:    ErrCodeInvalidScope,
		Message: "There is no active scope to end.",
	}
}

// --- Inspection helpers ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the outermost AppError in the chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether the outermost AppError in the chain carries code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
