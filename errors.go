// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error categories for RFB operations.
type ErrorCode int

const (
	// ErrProtocol indicates a protocol-level error.
	ErrProtocol ErrorCode = iota
	// ErrAuthentication indicates an authentication failure.
	ErrAuthentication
	// ErrEncoding indicates a framebuffer encoding/decoding error.
	ErrEncoding
	// ErrNetwork indicates a read or write failure on the connection.
	ErrNetwork
	// ErrCrypto indicates a cryptographic failure (cipher setup, key
	// derivation, or an absurd key length announced by the server).
	ErrCrypto
	// ErrTimeout indicates a timeout or cancellation.
	ErrTimeout
	// ErrValidation indicates input validation failure.
	ErrValidation
	// ErrUnsupported indicates an unsupported feature or operation.
	ErrUnsupported
)

// String returns the string representation of the error code.
func (e ErrorCode) String() string {
	switch e {
	case ErrProtocol:
		return "protocol"
	case ErrAuthentication:
		return "authentication"
	case ErrEncoding:
		return "encoding"
	case ErrNetwork:
		return "network"
	case ErrCrypto:
		return "crypto"
	case ErrTimeout:
		return "timeout"
	case ErrValidation:
		return "validation"
	case ErrUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// RFBError provides structured error information with operation context,
// an error code, and message wrapping.
type RFBError struct {
	Op      string
	Code    ErrorCode
	Message string
	Err     error
}

// Error returns the formatted error message.
func (e *RFBError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rfb %s: %s: %s: %v", e.Code.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("rfb %s: %s: %s", e.Code.String(), e.Op, e.Message)
}

// Unwrap returns the underlying error for error chain unwrapping.
func (e *RFBError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches the target error.
func (e *RFBError) Is(target error) bool {
	var rfbErr *RFBError
	if errors.As(target, &rfbErr) {
		return e.Code == rfbErr.Code && e.Op == rfbErr.Op
	}
	return false
}

// NewRFBError creates a new RFBError with the specified parameters.
func NewRFBError(op string, code ErrorCode, message string, err error) *RFBError {
	return &RFBError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsRFBError checks if an error is an RFBError and optionally matches
// specific error codes. With no codes it matches any RFBError.
func IsRFBError(err error, code ...ErrorCode) bool {
	var rfbErr *RFBError
	if !errors.As(err, &rfbErr) {
		return false
	}

	if len(code) == 0 {
		return true
	}

	for _, c := range code {
		if rfbErr.Code == c {
			return true
		}
	}
	return false
}

// GetErrorCode extracts the error code from an RFBError.
// Returns -1 if the error is not an RFBError.
func GetErrorCode(err error) ErrorCode {
	var rfbErr *RFBError
	if errors.As(err, &rfbErr) {
		return rfbErr.Code
	}
	return ErrorCode(-1)
}

// protocolError creates a new protocol error.
func protocolError(op, message string, err error) error {
	return NewRFBError(op, ErrProtocol, message, err)
}

// authenticationError creates a new authentication error.
func authenticationError(op, message string, err error) error {
	return NewRFBError(op, ErrAuthentication, message, err)
}

// encodingError creates a new encoding error.
func encodingError(op, message string, err error) error {
	return NewRFBError(op, ErrEncoding, message, err)
}

// networkError creates a new network error.
func networkError(op, message string, err error) error {
	return NewRFBError(op, ErrNetwork, message, err)
}

// cryptoError creates a new cryptographic error.
func cryptoError(op, message string, err error) error {
	return NewRFBError(op, ErrCrypto, message, err)
}

// timeoutError creates a new timeout error.
func timeoutError(op, message string, err error) error {
	return NewRFBError(op, ErrTimeout, message, err)
}

// validationError creates a new validation error.
func validationError(op, message string, err error) error {
	return NewRFBError(op, ErrValidation, message, err)
}

// unsupportedError creates a new unsupported operation error.
func unsupportedError(op, message string, err error) error {
	return NewRFBError(op, ErrUnsupported, message, err)
}
