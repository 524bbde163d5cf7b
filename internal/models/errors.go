package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrRepoParse ErrorType = iota
	ErrCloneFailed
	ErrLocalChanges
	ErrUpdateFailed
	ErrRecipeExec
	ErrChecksumMismatch
	ErrInvalidConfig
	ErrFileOp
	ErrDownload
	ErrSigning
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrRepoParse:
		return "RepoParse"
	case ErrCloneFailed:
		return "CloneFailed"
	case ErrLocalChanges:
		return "LocalChanges"
	case ErrUpdateFailed:
		return "UpdateFailed"
	case ErrRecipeExec:
		return "RecipeExec"
	case ErrChecksumMismatch:
		return "ChecksumMismatch"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrFileOp:
		return "FileOp"
	case ErrDownload:
		return "Download"
	case ErrSigning:
		return "Signing"
	default:
		return "Unknown"
	}
}

// AlpacaError represents a typed error raised by the cache manager, the
// recipe loader or the build pipeline. Subject names the thing the error
// is about: a repository declaration, a recipe field, a file path.
type AlpacaError struct {
	Type    ErrorType
	Subject string
	Err     error
}

// Error implements the error interface
func (e *AlpacaError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Subject, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *AlpacaError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is, or wraps, an AlpacaError of the given type.
func IsType(err error, t ErrorType) bool {
	var ae *AlpacaError
	return errors.As(err, &ae) && ae.Type == t
}
