// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigUint_BytesRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
	}{
		{name: "single byte", bytes: []byte{100}},
		{name: "two bytes", bytes: []byte{0x12, 0x34}},
		{name: "limb boundary", bytes: []byte{0xff, 0xff, 0xff, 0xff}},
		{name: "five bytes", bytes: []byte{0x01, 0x02, 0x03, 0x04, 0x05}},
		{name: "eight bytes", bytes: []byte{0xde, 0xad, 0xbe, 0xef, 0xca, 0xfe, 0xba, 0xbe}},
		{name: "sixteen bytes", bytes: []byte{
			0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
			0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BigUintFromBytesBE(tt.bytes).BytesBE(len(tt.bytes))
			assert.Equal(t, tt.bytes, got)
		})
	}
}

func TestBigUint_BytesBEPadding(t *testing.T) {
	v := BigUintFromBytesBE([]byte{0x12, 0x34})

	assert.Equal(t, []byte{0x00, 0x00, 0x12, 0x34}, v.BytesBE(4))
	assert.Equal(t, []byte{0x12, 0x34}, v.BytesBE(0))

	zero := NewBigUint(0)
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, zero.BytesBE(3))
}

func TestBigUint_Cmp(t *testing.T) {
	a := BigUintFromBytesBE([]byte{0x01, 0x00, 0x00, 0x00, 0x00})
	b := BigUintFromBytesBE([]byte{0xff, 0xff, 0xff, 0xff})

	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(a))

	// Leading zero bytes must not influence comparison.
	c := BigUintFromBytesBE([]byte{0x00, 0x00, 0x00, 0x00, 0x07})
	d := BigUintFromBytesBE([]byte{0x07})
	assert.Equal(t, 0, c.Cmp(d))
}

func TestBigUint_Sub(t *testing.T) {
	a := BigUintFromBytesBE([]byte{0x01, 0x00, 0x00, 0x00, 0x00})
	b := BigUintFromBytesBE([]byte{0x01})

	got := a.Sub(b).BytesBE(5)
	assert.Equal(t, []byte{0x00, 0xff, 0xff, 0xff, 0xff}, got)

	// a - a == 0.
	assert.True(t, a.Sub(a).IsZero())
}

func TestBigUint_Modulo(t *testing.T) {
	got := BigUintFromBytesBE([]byte{100}).Mod(BigUintFromBytesBE([]byte{7}))
	assert.Equal(t, 0, got.Cmp(NewBigUint(2)))

	// Modulo by zero yields zero.
	assert.True(t, NewBigUint(100).Mod(NewBigUint(0)).IsZero())

	// Value smaller than the modulus is unchanged.
	small := NewBigUint(5).Mod(NewBigUint(100))
	assert.Equal(t, 0, small.Cmp(NewBigUint(5)))
}

func TestBigUint_ModPow(t *testing.T) {
	// 2^10 mod 1001 = 1024 mod 1001 = 23.
	got := NewBigUint(2).ModPow(NewBigUint(10), BigUintFromBytesBE([]byte{0x03, 0xe9}))
	assert.Equal(t, 0, got.Cmp(NewBigUint(23)))

	// Zero modulus trivially yields 1.
	one := NewBigUint(2).ModPow(NewBigUint(10), NewBigUint(0))
	assert.Equal(t, 0, one.Cmp(NewBigUint(1)))

	// Zero exponent yields 1 for any nonzero modulus > 1.
	identity := NewBigUint(7).ModPow(NewBigUint(0), NewBigUint(13))
	assert.Equal(t, 0, identity.Cmp(NewBigUint(1)))
}

// TestBigUint_DiffieHellmanAgreement checks the DH consistency property
// on a small group: (g^a)^b == (g^b)^a mod p.
func TestBigUint_DiffieHellmanAgreement(t *testing.T) {
	p := NewBigUint(23)
	g := NewBigUint(5)
	a := NewBigUint(6)
	b := NewBigUint(15)

	shared1 := g.ModPow(a, p).ModPow(b, p)
	shared2 := g.ModPow(b, p).ModPow(a, p)

	assert.Equal(t, 0, shared1.Cmp(shared2))
	assert.False(t, shared1.IsZero())
}

// TestBigUint_MathBigCrossCheck cross-checks limb arithmetic against
// the standard library big.Int on multi-limb operands.
func TestBigUint_MathBigCrossCheck(t *testing.T) {
	operands := [][]byte{
		{0x02},
		{0xff, 0xfe, 0xfd, 0xfc},
		{0x01, 0x00, 0x00, 0x00, 0x01},
		{0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		{0xde, 0xad, 0xbe, 0xef, 0x13, 0x37, 0xc0, 0xde, 0xfa, 0xce, 0xb0, 0x0c},
	}

	refOf := func(b []byte) *big.Int { return new(big.Int).SetBytes(b) }

	for i, ab := range operands {
		for j, bb := range operands {
			a := BigUintFromBytesBE(ab)
			b := BigUintFromBytesBE(bb)
			ra := refOf(ab)
			rb := refOf(bb)

			wantMul := new(big.Int).Mul(ra, rb)
			gotMul := a.Mul(b)
			require.Equal(t, wantMul.Bytes(), gotMul.BytesBE(len(wantMul.Bytes())),
				"Mul mismatch for operands %d,%d", i, j)

			if rb.Sign() != 0 {
				wantMod := new(big.Int).Mod(ra, rb)
				gotMod := a.Mod(b)
				require.Equal(t, 0, gotMod.Cmp(BigUintFromBytesBE(wantMod.Bytes())),
					"Mod mismatch for operands %d,%d", i, j)
			}

			if rb.Sign() != 0 {
				exp := big.NewInt(17)
				wantPow := new(big.Int).Exp(ra, exp, rb)
				gotPow := a.ModPow(NewBigUint(17), b)
				require.Equal(t, 0, gotPow.Cmp(BigUintFromBytesBE(wantPow.Bytes())),
					"ModPow mismatch for operands %d,%d", i, j)
			}
		}
	}
}

func TestBigUint_Zero(t *testing.T) {
	zero := BigUintFromBytesBE(nil)
	assert.True(t, zero.IsZero())
	assert.Equal(t, 0, zero.Cmp(NewBigUint(0)))

	alsoZero := BigUintFromBytesBE([]byte{0x00, 0x00, 0x00, 0x00, 0x00})
	assert.True(t, alsoZero.IsZero())

	// Zero times anything is zero.
	assert.True(t, zero.Mul(NewBigUint(12345)).IsZero())
}
