// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_Format(t *testing.T) {
	err := NewRFBError("Op", ErrAuthentication, "bad credentials", nil)
	assert.Equal(t, "rfb authentication: Op: bad credentials", err.Error())

	wrapped := NewRFBError("Op", ErrNetwork, "read failed", io.ErrUnexpectedEOF)
	assert.Equal(t, "rfb network: Op: read failed: unexpected EOF", wrapped.Error())
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := networkError("PasswordAuth.Handshake", "failed to read challenge", cause)

	assert.True(t, errors.Is(err, cause))

	var rfbErr *RFBError
	require.True(t, errors.As(err, &rfbErr))
	assert.Equal(t, ErrNetwork, rfbErr.Code)
	assert.Equal(t, "PasswordAuth.Handshake", rfbErr.Op)
}

func TestErrors_IsRFBError(t *testing.T) {
	err := cryptoError("ARDAuth.Handshake", "absurd key length", nil)

	assert.True(t, IsRFBError(err))
	assert.True(t, IsRFBError(err, ErrCrypto))
	assert.True(t, IsRFBError(err, ErrNetwork, ErrCrypto))
	assert.False(t, IsRFBError(err, ErrNetwork))
	assert.False(t, IsRFBError(errors.New("plain"), ErrCrypto))
	assert.False(t, IsRFBError(nil))

	// Wrapped RFB errors are still recognized.
	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsRFBError(wrapped, ErrCrypto))
}

func TestErrors_GetErrorCode(t *testing.T) {
	assert.Equal(t, ErrEncoding, GetErrorCode(encodingError("op", "msg", nil)))
	assert.Equal(t, ErrorCode(-1), GetErrorCode(errors.New("plain")))
	assert.Equal(t, ErrorCode(-1), GetErrorCode(nil))
}

func TestErrors_CodeStrings(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrProtocol, "protocol"},
		{ErrAuthentication, "authentication"},
		{ErrEncoding, "encoding"},
		{ErrNetwork, "network"},
		{ErrCrypto, "crypto"},
		{ErrTimeout, "timeout"},
		{ErrValidation, "validation"},
		{ErrUnsupported, "unsupported"},
		{ErrorCode(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.String())
	}
}
