package install

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// InstallError carries a typed code plus context for troubleshooting.
type InstallError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is the primary error message.
	Message string

	// Context provides additional details.
	Context map[string]any

	// Cause is the underlying error (if any).
	Cause error
}

// ErrorCode identifies categories of install and launch failures.
type ErrorCode string

const (
	// Install failures.
	ErrorCodeVersionNotFound  ErrorCode = "VERSION_NOT_FOUND"
	ErrorCodeNativesMissing   ErrorCode = "NATIVES_MISSING"
	ErrorCodeAlreadyInstalled ErrorCode = "ALREADY_INSTALLED"
	ErrorCodeManifestCorrupt  ErrorCode = "MANIFEST_CORRUPT"
	ErrorCodeNetworkFailure   ErrorCode = "NETWORK_FAILURE"

	// Launch failures.
	ErrorCodeSpawnFailure ErrorCode = "SPAWN_FAILURE"

	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error implements the error interface.
func (e *InstallError) Error() string {
	parts := []string{fmt.Sprintf("[%s] %s", e.Code, e.Message)}
	if len(e.Context) > 0 {
		var ctx []string
		for k, v := range e.Context {
			ctx = append(ctx, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, "Context: "+strings.Join(ctx, ", "))
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("Cause: %v", e.Cause))
	}
	return strings.Join(parts, "; ")
}

// Unwrap returns the underlying error for errors.Is/As compatibility.
func (e *InstallError) Unwrap() error {
	return e.Cause
}

// NewError creates a new InstallError with the given code and message.
func NewError(code ErrorCode, message string) *InstallError {
	return &InstallError{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *InstallError) WithContext(key string, value any) *InstallError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithCause adds the underlying cause to the error.
func (e *InstallError) WithCause(cause error) *InstallError {
	e.Cause = cause
	return e
}

// IsErrorCode checks if an error has the specified error code.
func IsErrorCode(err error, code ErrorCode) bool {
	var installErr *InstallError
	if errors.As(err, &installErr) {
		return installErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or empty string
// if it is not an InstallError.
func GetErrorCode(err error) ErrorCode {
	var installErr *InstallError
	if errors.As(err, &installErr) {
		return installErr.Code
	}
	return ""
}

// FailureKind is the classification of a delegated-install failure.
type FailureKind int

const (
	// FailureUnknown propagates unmodified.
	FailureUnknown FailureKind = iota

	// FailureNativesMissing means the installer failed because a
	// native artifact for this architecture was never published; the
	// manual recovery path can fix it.
	FailureNativesMissing

	// FailureAlreadyInstalled means the version is already on disk;
	// normalized to success.
	FailureAlreadyInstalled
)

// ClassifyError classifies a delegated-install failure.
//
// Typed InstallErrors classify by code. For collaborator errors that
// cannot carry a code, the match rules are deliberately narrow and
// covered by tests — do not widen them without a test first:
//
//   - natives-missing: the message names an architecture-specific
//     natives classifier ("natives-<os>-<arch>").
//   - already-installed: an EEXIST-class error whose message
//     references the natives directory.
func ClassifyError(err error, archClassifier string) FailureKind {
	if err == nil {
		return FailureUnknown
	}

	switch GetErrorCode(err) {
	case ErrorCodeNativesMissing:
		return FailureNativesMissing
	case ErrorCodeAlreadyInstalled:
		return FailureAlreadyInstalled
	}

	msg := err.Error()
	if errors.Is(err, fs.ErrExist) && strings.Contains(msg, "natives") {
		return FailureAlreadyInstalled
	}
	if strings.Contains(msg, archClassifier) {
		return FailureNativesMissing
	}
	return FailureUnknown
}
