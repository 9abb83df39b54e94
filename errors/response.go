package errors

import (
	stderrors "errors"
)

// IsLambdaError checks if err is, or wraps, a LambdaError.
func IsLambdaError(err error) bool {
	var le *LambdaError
	return stderrors.As(err, &le)
}

// AsLambdaError extracts a LambdaError from the chain of err.
func AsLambdaError(err error) (*LambdaError, bool) {
	var le *LambdaError
	if stderrors.As(err, &le) && le != nil {
		return le, true
	}
	return nil, false
}

// IsUnknownCode reports whether err was caused by raising an unregistered code.
func IsUnknownCode(err error) bool {
	return stderrors.Is(err, ErrUnknownCode)
}
