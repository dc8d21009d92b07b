// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"fmt"
)

// DecodeRaw decodes an uncompressed rectangle as defined in RFC 6143
// Section 7.7.1. data must hold exactly width*height*bytesPerPixel
// bytes of wire-format pixels in left-to-right, top-to-bottom order;
// short or oversized input is a hard error.
func DecodeRaw(x, y, width, height uint16, data []byte, pf PixelFormat) (*DecodedRect, error) {
	if err := validateRectGeometry("DecodeRaw", width, height); err != nil {
		return nil, err
	}

	expected := int(width) * int(height) * pf.BytesPerPixel()
	if len(data) != expected {
		return nil, encodingError("DecodeRaw",
			fmt.Sprintf("raw rectangle requires exactly %d bytes, got %d", expected, len(data)), nil)
	}

	pixels, err := ConvertToRGBA(data, pf)
	if err != nil {
		return nil, err
	}

	return &DecodedRect{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}
