// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

// BigUint is a minimal unsigned arbitrary-precision integer. It exists
// solely to support the one-shot Diffie-Hellman exchange of the ARD
// handshake and is not a general-purpose arithmetic library: the modulo
// routine is binary long division, adequate for a single handshake and
// nothing more.
//
// Limbs are stored most significant first, with no leading zero limb
// except for the value zero, which is exactly one zero limb.
type BigUint struct {
	limbs []uint32
}

// NewBigUint returns a BigUint holding the given small value.
func NewBigUint(v uint32) BigUint {
	return BigUint{limbs: []uint32{v}}
}

// BigUintFromBytesBE builds a BigUint from big-endian bytes.
func BigUintFromBytesBE(b []byte) BigUint {
	n := (len(b) + 3) / 4
	if n == 0 {
		return NewBigUint(0)
	}

	limbs := make([]uint32, n)
	// Fill limbs from the least significant byte backwards so partial
	// leading limbs pack naturally.
	for i := 0; i < len(b); i++ {
		limb := n - 1 - i/4
		shift := uint(i%4) * 8
		limbs[limb] |= uint32(b[len(b)-1-i]) << shift
	}

	return BigUint{limbs: limbs}.trim()
}

// BytesBE returns the big-endian byte representation, left-padded with
// zero bytes to at least minLen bytes. Used to emit fixed-width
// protocol fields such as the DH public key.
func (a BigUint) BytesBE(minLen int) []byte {
	raw := make([]byte, len(a.limbs)*4)
	for i, limb := range a.limbs {
		raw[i*4] = byte(limb >> 24)
		raw[i*4+1] = byte(limb >> 16)
		raw[i*4+2] = byte(limb >> 8)
		raw[i*4+3] = byte(limb)
	}

	// Strip leading zero bytes down to the natural width.
	start := 0
	for start < len(raw)-1 && raw[start] == 0 {
		start++
	}
	raw = raw[start:]
	if len(raw) == 1 && raw[0] == 0 {
		raw = raw[:0]
	}

	if len(raw) >= minLen {
		return raw
	}
	padded := make([]byte, minLen)
	copy(padded[minLen-len(raw):], raw)
	return padded
}

// trim removes leading zero limbs, keeping a single zero limb for the
// value zero.
func (a BigUint) trim() BigUint {
	i := 0
	for i < len(a.limbs)-1 && a.limbs[i] == 0 {
		i++
	}
	return BigUint{limbs: a.limbs[i:]}
}

// IsZero reports whether the value is zero.
func (a BigUint) IsZero() bool {
	for _, limb := range a.limbs {
		if limb != 0 {
			return false
		}
	}
	return true
}

// Cmp compares a and b, returning -1, 0, or 1.
func (a BigUint) Cmp(b BigUint) int {
	x := a.trim()
	y := b.trim()

	if len(x.limbs) != len(y.limbs) {
		if len(x.limbs) < len(y.limbs) {
			return -1
		}
		return 1
	}
	for i := range x.limbs {
		if x.limbs[i] != y.limbs[i] {
			if x.limbs[i] < y.limbs[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Sub returns a-b. Only valid when a >= b; call sites guarantee this
// with a preceding Cmp, as Mod does.
func (a BigUint) Sub(b BigUint) BigUint {
	out := make([]uint32, len(a.limbs))
	var borrow uint64

	for i := len(a.limbs) - 1; i >= 0; i-- {
		var sub uint64
		if j := i - (len(a.limbs) - len(b.limbs)); j >= 0 {
			sub = uint64(b.limbs[j])
		}

		cur := uint64(a.limbs[i]) - sub - borrow
		out[i] = uint32(cur)
		borrow = (cur >> 32) & 1
	}

	return BigUint{limbs: out}.trim()
}

// shl1 returns a shifted left by one bit.
func (a BigUint) shl1() BigUint {
	out := make([]uint32, len(a.limbs))
	var carry uint32

	for i := len(a.limbs) - 1; i >= 0; i-- {
		out[i] = a.limbs[i]<<1 | carry
		carry = a.limbs[i] >> 31
	}
	if carry != 0 {
		out = append([]uint32{carry}, out...)
	}

	return BigUint{limbs: out}
}

// shr1 returns a shifted right by one bit.
func (a BigUint) shr1() BigUint {
	out := make([]uint32, len(a.limbs))
	var carry uint32

	for i := 0; i < len(a.limbs); i++ {
		out[i] = a.limbs[i]>>1 | carry<<31
		carry = a.limbs[i] & 1
	}

	return BigUint{limbs: out}.trim()
}

// Mul returns a*b using schoolbook multiplication with 64-bit
// intermediate accumulation.
func (a BigUint) Mul(b BigUint) BigUint {
	x := a.trim()
	y := b.trim()
	out := make([]uint32, len(x.limbs)+len(y.limbs))

	for i := len(x.limbs) - 1; i >= 0; i-- {
		var carry uint64
		for j := len(y.limbs) - 1; j >= 0; j-- {
			idx := i + j + 1
			cur := uint64(out[idx]) + uint64(x.limbs[i])*uint64(y.limbs[j]) + carry
			out[idx] = uint32(cur)
			carry = cur >> 32
		}
		out[i] = uint32(carry)
	}

	return BigUint{limbs: out}.trim()
}

// bitLen returns the number of significant bits.
func (a BigUint) bitLen() int {
	x := a.trim()
	top := x.limbs[0]
	bits := 0
	for top != 0 {
		bits++
		top >>= 1
	}
	return (len(x.limbs)-1)*32 + bits
}

// bit returns bit i, counting from the least significant bit.
func (a BigUint) bit(i int) uint32 {
	limb := len(a.limbs) - 1 - i/32
	if limb < 0 {
		return 0
	}
	return (a.limbs[limb] >> (uint(i) % 32)) & 1
}

// Mod returns a mod m via binary long division: for each dividend bit
// from most to least significant, shift the remainder left, bring the
// bit down, and subtract m once if the remainder reached it. O(bit
// length) iterations of O(limb count) work.
func (a BigUint) Mod(m BigUint) BigUint {
	if m.IsZero() {
		return NewBigUint(0)
	}

	rem := NewBigUint(0)
	for i := a.bitLen() - 1; i >= 0; i-- {
		rem = rem.shl1()
		rem.limbs[len(rem.limbs)-1] |= a.bit(i)
		if rem.Cmp(m) >= 0 {
			rem = rem.Sub(m)
		}
	}

	return rem
}

// ModPow returns base^exp mod m by square-and-multiply, scanning the
// exponent from its least significant bit upward. A zero modulus yields
// 1.
func (a BigUint) ModPow(exp, m BigUint) BigUint {
	if m.IsZero() {
		return NewBigUint(1)
	}

	result := NewBigUint(1).Mod(m)
	base := a.Mod(m)

	for i := 0; i < exp.bitLen(); i++ {
		if exp.bit(i) == 1 {
			result = result.Mul(base).Mod(m)
		}
		base = base.Mul(base).Mod(m)
	}

	return result
}
