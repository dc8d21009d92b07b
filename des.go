// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

// A complete, standalone single-block DES encryptor.
//
// DES is cryptographically broken and must never be used for new
// designs. It exists here only because VNC password authentication
// (RFC 6143 section 7.2.2) is defined in terms of it. Only encryption
// in single-block ECB mode is implemented: the client never decrypts,
// chains, or pads anything during the handshake.
//
// All tables below are the fixed constants of the DES standard
// (FIPS 46-3) and must be reproduced bit for bit; a single wrong entry
// silently breaks interoperability with every real VNC server.

// desPC1 is the 64->56-bit Permuted Choice 1 applied to the key.
var desPC1 = [56]byte{
	57, 49, 41, 33, 25, 17, 9,
	1, 58, 50, 42, 34, 26, 18,
	10, 2, 59, 51, 43, 35, 27,
	19, 11, 3, 60, 52, 44, 36,
	63, 55, 47, 39, 31, 23, 15,
	7, 62, 54, 46, 38, 30, 22,
	14, 6, 61, 53, 45, 37, 29,
	21, 13, 5, 28, 20, 12, 4,
}

// desPC2 is the 56->48-bit Permuted Choice 2 producing each round subkey.
var desPC2 = [48]byte{
	14, 17, 11, 24, 1, 5,
	3, 28, 15, 6, 21, 10,
	23, 19, 12, 4, 26, 8,
	16, 7, 27, 20, 13, 2,
	41, 52, 31, 37, 47, 55,
	30, 40, 51, 45, 33, 48,
	44, 49, 39, 56, 34, 53,
	46, 42, 50, 36, 29, 32,
}

// desRotations is the per-round left-rotation schedule for the two
// 28-bit key halves.
var desRotations = [16]byte{1, 1, 2, 2, 2, 2, 2, 2, 1, 2, 2, 2, 2, 2, 2, 1}

// desIP is the 64-bit Initial Permutation.
var desIP = [64]byte{
	58, 50, 42, 34, 26, 18, 10, 2,
	60, 52, 44, 36, 28, 20, 12, 4,
	62, 54, 46, 38, 30, 22, 14, 6,
	64, 56, 48, 40, 32, 24, 16, 8,
	57, 49, 41, 33, 25, 17, 9, 1,
	59, 51, 43, 35, 27, 19, 11, 3,
	61, 53, 45, 37, 29, 21, 13, 5,
	63, 55, 47, 39, 31, 23, 15, 7,
}

// desFP is the 64-bit Final Permutation (the inverse of desIP).
var desFP = [64]byte{
	40, 8, 48, 16, 56, 24, 64, 32,
	39, 7, 47, 15, 55, 23, 63, 31,
	38, 6, 46, 14, 54, 22, 62, 30,
	37, 5, 45, 13, 53, 21, 61, 29,
	36, 4, 44, 12, 52, 20, 60, 28,
	35, 3, 43, 11, 51, 19, 59, 27,
	34, 2, 42, 10, 50, 18, 58, 26,
	33, 1, 41, 9, 49, 17, 57, 25,
}

// desE is the 32->48-bit expansion applied to the right half each round.
var desE = [48]byte{
	32, 1, 2, 3, 4, 5,
	4, 5, 6, 7, 8, 9,
	8, 9, 10, 11, 12, 13,
	12, 13, 14, 15, 16, 17,
	16, 17, 18, 19, 20, 21,
	20, 21, 22, 23, 24, 25,
	24, 25, 26, 27, 28, 29,
	28, 29, 30, 31, 32, 1,
}

// desP is the 32-bit permutation applied to the S-box output.
var desP = [32]byte{
	16, 7, 20, 21,
	29, 12, 28, 17,
	1, 15, 23, 26,
	5, 18, 31, 10,
	2, 8, 24, 14,
	32, 27, 3, 9,
	19, 13, 30, 6,
	22, 11, 4, 25,
}

// desSBoxes are the eight 4x16 substitution boxes, each flattened to 64
// entries in row-major order.
var desSBoxes = [8][64]byte{
	{
		14, 4, 13, 1, 2, 15, 11, 8, 3, 10, 6, 12, 5, 9, 0, 7,
		0, 15, 7, 4, 14, 2, 13, 1, 10, 6, 12, 11, 9, 5, 3, 8,
		4, 1, 14, 8, 13, 6, 2, 11, 15, 12, 9, 7, 3, 10, 5, 0,
		15, 12, 8, 2, 4, 9, 1, 7, 5, 11, 3, 14, 10, 0, 6, 13,
	},
	{
		15, 1, 8, 14, 6, 11, 3, 4, 9, 7, 2, 13, 12, 0, 5, 10,
		3, 13, 4, 7, 15, 2, 8, 14, 12, 0, 1, 10, 6, 9, 11, 5,
		0, 14, 7, 11, 10, 4, 13, 1, 5, 8, 12, 6, 9, 3, 2, 15,
		13, 8, 10, 1, 3, 15, 4, 2, 11, 6, 7, 12, 0, 5, 14, 9,
	},
	{
		10, 0, 9, 14, 6, 3, 15, 5, 1, 13, 12, 7, 11, 4, 2, 8,
		13, 7, 0, 9, 3, 4, 6, 10, 2, 8, 5, 14, 12, 11, 15, 1,
		13, 6, 4, 9, 8, 15, 3, 0, 11, 1, 2, 12, 5, 10, 14, 7,
		1, 10, 13, 0, 6, 9, 8, 7, 4, 15, 14, 3, 11, 5, 2, 12,
	},
	{
		7, 13, 14, 3, 0, 6, 9, 10, 1, 2, 8, 5, 11, 12, 4, 15,
		13, 8, 11, 5, 6, 15, 0, 3, 4, 7, 2, 12, 1, 10, 14, 9,
		10, 6, 9, 0, 12, 11, 7, 13, 15, 1, 3, 14, 5, 2, 8, 4,
		3, 15, 0, 6, 10, 1, 13, 8, 9, 4, 5, 11, 12, 7, 2, 14,
	},
	{
		2, 12, 4, 1, 7, 10, 11, 6, 8, 5, 3, 15, 13, 0, 14, 9,
		14, 11, 2, 12, 4, 7, 13, 1, 5, 0, 15, 10, 3, 9, 8, 6,
		4, 2, 1, 11, 10, 13, 7, 8, 15, 9, 12, 5, 6, 3, 0, 14,
		11, 8, 12, 7, 1, 14, 2, 13, 6, 15, 0, 9, 10, 4, 5, 3,
	},
	{
		12, 1, 10, 15, 9, 2, 6, 8, 0, 13, 3, 4, 14, 7, 5, 11,
		10, 15, 4, 2, 7, 12, 9, 5, 6, 1, 13, 14, 0, 11, 3, 8,
		9, 14, 15, 5, 2, 8, 12, 3, 7, 0, 4, 10, 1, 13, 11, 6,
		4, 3, 2, 12, 9, 5, 15, 10, 11, 14, 1, 7, 6, 0, 8, 13,
	},
	{
		4, 11, 2, 14, 15, 0, 8, 13, 3, 12, 9, 7, 5, 10, 6, 1,
		13, 0, 11, 7, 4, 9, 1, 10, 14, 3, 5, 12, 2, 15, 8, 6,
		1, 4, 11, 13, 12, 3, 7, 14, 10, 15, 6, 8, 0, 5, 9, 2,
		6, 11, 13, 8, 1, 4, 10, 7, 9, 5, 0, 15, 14, 2, 3, 12,
	},
	{
		13, 2, 8, 4, 6, 15, 11, 1, 10, 9, 3, 14, 5, 0, 12, 7,
		1, 15, 13, 8, 10, 3, 7, 4, 12, 5, 6, 11, 0, 14, 9, 2,
		7, 11, 4, 1, 9, 12, 14, 2, 0, 6, 10, 13, 15, 3, 5, 8,
		2, 1, 14, 7, 4, 10, 8, 13, 15, 12, 9, 0, 3, 5, 6, 11,
	},
}

// desPermute applies a DES permutation table to the low inBits bits of
// in. Table entries use the standard's 1-based numbering where bit 1 is
// the most significant input bit.
func desPermute(in uint64, table []byte, inBits uint) uint64 {
	var out uint64
	for _, pos := range table {
		out <<= 1
		out |= (in >> (inBits - uint(pos))) & 1
	}
	return out
}

// DESCipher is a key-scheduled DES instance capable of encrypting
// single 8-byte blocks in ECB mode.
type DESCipher struct {
	subkeys [16]uint64
}

// NewDESCipher derives the 16 round subkeys from an 8-byte key.
func NewDESCipher(key []byte) (*DESCipher, error) {
	if len(key) != DESKeySize {
		return nil, cryptoError("NewDESCipher", "DES key must be exactly 8 bytes", nil)
	}

	var k uint64
	for _, b := range key {
		k = k<<8 | uint64(b)
	}

	c := &DESCipher{}
	c.scheduleSubkeys(k)
	return c, nil
}

// scheduleSubkeys runs the DES key schedule: PC-1, sixteen rounds of
// per-half left rotation, and PC-2 per round.
func (c *DESCipher) scheduleSubkeys(key uint64) {
	permuted := desPermute(key, desPC1[:], 64)

	left := uint32(permuted >> 28)
	right := uint32(permuted & 0x0FFFFFFF)

	for round := 0; round < 16; round++ {
		shift := uint(desRotations[round])
		left = ((left << shift) | (left >> (28 - shift))) & 0x0FFFFFFF
		right = ((right << shift) | (right >> (28 - shift))) & 0x0FFFFFFF

		combined := uint64(left)<<28 | uint64(right)
		c.subkeys[round] = desPermute(combined, desPC2[:], 56)
	}
}

// feistel is the DES round function: expand the 32-bit half to 48 bits,
// mix in the round subkey, substitute eight 6-bit groups through the
// S-boxes, and permute the resulting 32 bits.
func (c *DESCipher) feistel(half uint32, subkey uint64) uint32 {
	expanded := desPermute(uint64(half), desE[:], 32) ^ subkey

	var substituted uint32
	for box := 0; box < 8; box++ {
		six := byte(expanded>>(42-6*uint(box))) & 0x3F
		row := (six&0x20)>>4 | six&0x01
		col := (six >> 1) & 0x0F
		substituted = substituted<<4 | uint32(desSBoxes[box][row<<4|col])
	}

	return uint32(desPermute(uint64(substituted), desP[:], 32))
}

// EncryptBlock encrypts exactly one 8-byte block from src into dst.
// The slices may overlap.
func (c *DESCipher) EncryptBlock(dst, src []byte) error {
	if len(src) < DESBlockSize {
		return cryptoError("DESCipher.EncryptBlock", "source block must be 8 bytes", nil)
	}
	if len(dst) < DESBlockSize {
		return cryptoError("DESCipher.EncryptBlock", "destination block must be 8 bytes", nil)
	}

	var block uint64
	for i := 0; i < DESBlockSize; i++ {
		block = block<<8 | uint64(src[i])
	}

	block = desPermute(block, desIP[:], 64)

	left := uint32(block >> 32)
	right := uint32(block)

	for round := 0; round < 16; round++ {
		left, right = right, left^c.feistel(right, c.subkeys[round])
	}

	// Preoutput is right||left: the halves swap once more after round 16.
	preoutput := uint64(right)<<32 | uint64(left)
	out := desPermute(preoutput, desFP[:], 64)

	for i := DESBlockSize - 1; i >= 0; i-- {
		dst[i] = byte(out)
		out >>= 8
	}
	return nil
}
