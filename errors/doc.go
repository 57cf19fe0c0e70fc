// Package errors defines the failure taxonomy of the injector engine.
//
// Every failure raised by the container is an *AppError carrying a
// machine-readable ErrorCode, a human-readable message, optional details
// and the underlying cause. Callers branch on the code:
//
//	if errors.HasCode(err, errors.ErrCodeUnregisteredType) {
//	    // fall back to a default implementation
//	}
package errors
