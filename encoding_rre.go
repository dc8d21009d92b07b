// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"encoding/binary"
	"fmt"
)

// DecodeRRE decodes a Rise-and-Run-length Encoded rectangle as defined
// in RFC 6143 Section 7.7.3. The wire format is a 4-byte big-endian
// subrectangle count and one background pixel, followed by count
// entries of one pixel plus four big-endian u16 geometry fields, all
// relative to the rectangle.
//
// The whole rectangle is filled with the background color and each
// subrectangle then overwrites its region. If the buffer runs out
// before the declared subrectangles are consumed, the loop stops and
// the partially applied rectangle is returned rather than an error.
// That leniency matches deployed client behavior; whether real servers
// ever truncate rectangles intentionally is an open question, so do not
// tighten it without verifying against real server traces.
func DecodeRRE(x, y, width, height uint16, data []byte, pf PixelFormat) (*DecodedRect, error) {
	if err := validateRectGeometry("DecodeRRE", width, height); err != nil {
		return nil, err
	}

	bpp := pf.BytesPerPixel()
	if len(data) < 4+bpp {
		return nil, encodingError("DecodeRRE",
			fmt.Sprintf("header requires %d bytes, got %d", 4+bpp, len(data)), nil)
	}

	numSubrects := binary.BigEndian.Uint32(data[0:4])
	offset := 4

	var bg [4]byte
	pixelToRGBA(data[offset:offset+bpp], pf, bg[:])
	offset += bpp

	rect := newDecodedRect(x, y, width, height)
	rect.fill(0, 0, int(width), int(height), bg[:])

	subrectSize := bpp + 8
	for i := uint32(0); i < numSubrects; i++ {
		if len(data)-offset < subrectSize {
			// Truncated subrect list: stop early, keep what we painted.
			break
		}

		var rgba [4]byte
		pixelToRGBA(data[offset:offset+bpp], pf, rgba[:])
		offset += bpp

		sx := binary.BigEndian.Uint16(data[offset : offset+2])
		sy := binary.BigEndian.Uint16(data[offset+2 : offset+4])
		sw := binary.BigEndian.Uint16(data[offset+4 : offset+6])
		sh := binary.BigEndian.Uint16(data[offset+6 : offset+8])
		offset += 8

		if err := validateSubrectBounds("DecodeRRE", sx, sy, sw, sh, width, height); err != nil {
			return nil, err
		}

		rect.fill(int(sx), int(sy), int(sw), int(sh), rgba[:])
	}

	return rect, nil
}
