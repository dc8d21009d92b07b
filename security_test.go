// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurity_ReverseBits(t *testing.T) {
	tests := []struct {
		name string
		in   byte
		want byte
	}{
		{name: "high bit to low bit", in: 0b10000000, want: 0b00000001},
		{name: "high nibble to low nibble", in: 0b11110000, want: 0b00001111},
		{name: "zero", in: 0x00, want: 0x00},
		{name: "all ones", in: 0xff, want: 0xff},
		{name: "alternating", in: 0b10101010, want: 0b01010101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reverseBits(tt.in))
		})
	}
}

// TestSecurity_ReverseBitsInvolution verifies the table is its own
// inverse over the whole byte range.
func TestSecurity_ReverseBitsInvolution(t *testing.T) {
	for i := 0; i < 256; i++ {
		b := byte(i)
		assert.Equal(t, b, reverseBits(reverseBits(b)))
	}
}

func TestSecurity_VNCDESKey(t *testing.T) {
	// Short passwords leave trailing key bytes zero; every byte is
	// bit-reversed.
	key := vncDESKey("ab")
	assert.Equal(t, reverseBits('a'), key[0])
	assert.Equal(t, reverseBits('b'), key[1])
	for i := 2; i < DESKeySize; i++ {
		assert.Equal(t, byte(0), key[i])
	}

	// Long passwords are truncated to eight bytes.
	long := vncDESKey("averylongpassword")
	assert.Len(t, long, DESKeySize)
	assert.Equal(t, reverseBits('a'), long[0])
	assert.Equal(t, reverseBits('n'), long[7])
}

func TestSecurity_SecureRandom(t *testing.T) {
	sr := newSecureRandom()

	data, err := sr.GenerateBytes(64)
	require.NoError(t, err)
	assert.Len(t, data, 64)

	other, err := sr.GenerateBytes(64)
	require.NoError(t, err)
	assert.NotEqual(t, data, other, "two 64-byte random draws collided")

	_, err = sr.GenerateBytes(0)
	require.Error(t, err)
	assert.True(t, IsRFBError(err, ErrValidation))

	_, err = sr.GenerateBytes(-1)
	require.Error(t, err)
}

func TestSecurity_SecureMemory(t *testing.T) {
	sm := &SecureMemory{}

	data := []byte("sensitive material")
	sm.ClearBytes(data)
	for i, b := range data {
		require.Zero(t, b, "byte %d not cleared", i)
	}

	sm.ClearBytes(nil) // must not panic

	assert.Equal(t, "", sm.ClearString("secret"))
	assert.Equal(t, "", sm.ClearString(""))
}
