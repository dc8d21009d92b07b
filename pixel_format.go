// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// PixelFormat describes how pixel color data is packed into bytes on
// the wire, as declared by the server. It is immutable per connection;
// if the server renegotiates the format mid-session the caller simply
// passes the current value on each decode call.
type PixelFormat struct {
	// BPP (bits-per-pixel) specifies how many bits represent each pixel.
	// Valid values are 8, 16, and 32.
	BPP uint8

	// Depth specifies the number of useful bits within each pixel value.
	Depth uint8

	// BigEndian determines the byte order for multi-byte pixel values.
	BigEndian bool

	// TrueColor determines whether pixels carry direct RGB values. When
	// false, the channel fields are ignored and the raw byte is treated
	// as a grayscale intensity.
	TrueColor bool

	// RedMax is the maximum value of the red component.
	RedMax uint16

	// GreenMax is the maximum value of the green component.
	GreenMax uint16

	// BlueMax is the maximum value of the blue component.
	BlueMax uint16

	// RedShift positions the red component at the least significant bits.
	RedShift uint8

	// GreenShift positions the green component at the least significant bits.
	GreenShift uint8

	// BlueShift positions the blue component at the least significant bits.
	BlueShift uint8
}

// BytesPerPixel returns the number of bytes each pixel occupies on the
// wire: 1, 2, or 4.
func (pf *PixelFormat) BytesPerPixel() int {
	return int(pf.BPP) / 8
}

// PixelFormat32 returns the common 32-bit true-color format with 8 bits
// per channel.
func PixelFormat32() PixelFormat {
	return PixelFormat{
		BPP:        32,
		Depth:      24,
		BigEndian:  false,
		TrueColor:  true,
		RedMax:     255,
		GreenMax:   255,
		BlueMax:    255,
		RedShift:   16,
		GreenShift: 8,
		BlueShift:  0,
	}
}

// ReadPixelFormat reads the 16-byte RFC 6143 pixel format structure
// from the wire.
func ReadPixelFormat(r io.Reader, result *PixelFormat) error {
	var raw [16]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return networkError("ReadPixelFormat", "failed to read pixel format data", err)
	}

	result.BPP = raw[0]
	result.Depth = raw[1]
	result.BigEndian = raw[2] != 0
	result.TrueColor = raw[3] != 0

	if result.TrueColor {
		result.RedMax = binary.BigEndian.Uint16(raw[4:6])
		result.GreenMax = binary.BigEndian.Uint16(raw[6:8])
		result.BlueMax = binary.BigEndian.Uint16(raw[8:10])
		result.RedShift = raw[10]
		result.GreenShift = raw[11]
		result.BlueShift = raw[12]
	}

	return nil
}

// WritePixelFormat converts a PixelFormat to its 16-byte wire
// representation.
func WritePixelFormat(format *PixelFormat) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(format.BPP)
	buf.WriteByte(format.Depth)

	if format.BigEndian {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}

	if format.TrueColor {
		buf.WriteByte(1)

		if err := binary.Write(&buf, binary.BigEndian, format.RedMax); err != nil {
			return nil, encodingError("WritePixelFormat", "failed to write red max value", err)
		}
		if err := binary.Write(&buf, binary.BigEndian, format.GreenMax); err != nil {
			return nil, encodingError("WritePixelFormat", "failed to write green max value", err)
		}
		if err := binary.Write(&buf, binary.BigEndian, format.BlueMax); err != nil {
			return nil, encodingError("WritePixelFormat", "failed to write blue max value", err)
		}
		buf.WriteByte(format.RedShift)
		buf.WriteByte(format.GreenShift)
		buf.WriteByte(format.BlueShift)
	} else {
		buf.WriteByte(0)
	}

	out := make([]byte, 16)
	copy(out, buf.Bytes())
	return out, nil
}

// Validate performs structural validation of a pixel format.
func (pf *PixelFormat) Validate() error {
	if pf.BPP != 8 && pf.BPP != 16 && pf.BPP != 32 {
		return validationError("PixelFormat.Validate",
			fmt.Sprintf("bits per pixel must be 8, 16, or 32, got %d", pf.BPP), nil)
	}

	if pf.Depth == 0 {
		return validationError("PixelFormat.Validate", "color depth cannot be zero", nil)
	}

	if pf.Depth > pf.BPP {
		return validationError("PixelFormat.Validate",
			fmt.Sprintf("color depth (%d) cannot exceed bits per pixel (%d)", pf.Depth, pf.BPP), nil)
	}

	if pf.TrueColor {
		if pf.RedMax == 0 && pf.GreenMax == 0 && pf.BlueMax == 0 {
			return validationError("PixelFormat.Validate",
				"all color maximums cannot be zero in true color mode", nil)
		}

		maxShift := pf.BPP - 1
		if pf.RedShift > maxShift || pf.GreenShift > maxShift || pf.BlueShift > maxShift {
			return validationError("PixelFormat.Validate",
				fmt.Sprintf("channel shift exceeds maximum for %d-bit pixels", pf.BPP), nil)
		}
	}

	return nil
}
