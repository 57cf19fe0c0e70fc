package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Registration errors
const (
	// ErrCodeUnregisteredType indicates a type was resolved or inspected without a binding.
	ErrCodeUnregisteredType ErrorCode = "UNREGISTERED_TYPE"
	// ErrCodeTypeAlreadyRegistered indicates a second binding for the same abstract type.
	ErrCodeTypeAlreadyRegistered ErrorCode = "TYPE_ALREADY_REGISTERED"
	// ErrCodeCyclicDependency indicates a binding would make the dependency graph cyclic.
	ErrCodeCyclicDependency ErrorCode = "CYCLIC_DEPENDENCY"
	// ErrCodeInvalidBinding indicates a binding was handed a nil key, constructor or factory.
	ErrCodeInvalidBinding ErrorCode = "INVALID_BINDING"
)

// Construction errors
const (
	// ErrCodeConstructorResolution indicates a constructor or factory failed.
	ErrCodeConstructorResolution ErrorCode = "CONSTRUCTOR_RESOLUTION"
	// ErrCodeInjectionFailed indicates a target field could not be assigned.
	ErrCodeInjectionFailed ErrorCode = "INJECTION_FAILED"
	// ErrCodeInvalidMarker indicates the injection marker is misconfigured.
	ErrCodeInvalidMarker ErrorCode = "INVALID_MARKER"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates the container configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Scope errors
const (
	// ErrCodeInvalidScope indicates a scope operation ran without the scope state it needs.
	ErrCodeInvalidScope ErrorCode = "INVALID_SCOPE"
	// ErrCodeInvalidScopeContext indicates the scope context cannot satisfy a dependency.
	ErrCodeInvalidScopeContext ErrorCode = "INVALID_SCOPE_CONTEXT"
)

var scopeCodes = map[ErrorCode]bool{
	ErrCodeInvalidScope:        true,
	ErrCodeInvalidScopeContext: true,
}

// IsScopeCode returns true if the code describes a scope state failure.
// Scope failures depend on when a resolution happens, not on the bindings.
func IsScopeCode(code ErrorCode) bool {
	return scopeCodes[code]
}
