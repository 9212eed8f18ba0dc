package domain

import (
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	ErrCodeMalformedTree     = "MALFORMED_TREE"
	ErrCodeInvalidArgument   = "INVALID_ARGUMENT"
	ErrCodeEncoderError      = "ENCODER_ERROR"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewMalformedTreeError reports tree input that violates the
// single-root / single-key-per-node exchange format invariants
func NewMalformedTreeError(message string) error {
	return NewDomainError(ErrCodeMalformedTree, message, nil)
}

// NewInvalidArgumentError reports an argument rejected before any computation
func NewInvalidArgumentError(message string) error {
	return NewDomainError(ErrCodeInvalidArgument, message, nil)
}

// NewEncoderError wraps a failure surfaced by an encoder capability.
// Used only at the CLI/server boundary for reporting; the core propagates
// capability errors unmodified.
func NewEncoderError(message string, cause error) error {
	return NewDomainError(ErrCodeEncoderError, message, cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewParseError creates a parse error
func NewParseError(file string, cause error) error {
	return NewDomainError(ErrCodeParseError, fmt.Sprintf("failed to parse tree file: %s", file), cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// IsMalformedTree reports whether err carries the MALFORMED_TREE code
func IsMalformedTree(err error) bool {
	return hasCode(err, ErrCodeMalformedTree)
}

// IsInvalidArgument reports whether err carries the INVALID_ARGUMENT code
func IsInvalidArgument(err error) bool {
	return hasCode(err, ErrCodeInvalidArgument)
}

func hasCode(err error, code string) bool {
	de, ok := err.(DomainError)
	return ok && de.Code == code
}
