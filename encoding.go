// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"fmt"
)

// Framebuffer encoding type identifiers as defined in RFC 6143.
const (
	EncodingRaw      int32 = 0
	EncodingCopyRect int32 = 1
	EncodingRRE      int32 = 2
	EncodingHextile  int32 = 5
)

// DecodedRect is a decoded framebuffer rectangle: tightly packed
// RGBA8888 pixels in row-major order, top to bottom. Every decode call
// allocates a fresh rectangle owned exclusively by the caller, who
// composites it into a persistent framebuffer. Invariant:
// len(Pixels) == int(Width)*int(Height)*4.
type DecodedRect struct {
	X      uint16
	Y      uint16
	Width  uint16
	Height uint16
	Pixels []byte
}

// newDecodedRect allocates a zeroed rectangle of the given geometry.
func newDecodedRect(x, y, width, height uint16) *DecodedRect {
	return &DecodedRect{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Pixels: make([]byte, int(width)*int(height)*4),
	}
}

// fill paints the sub-region (x, y, w, h), in rectangle-local
// coordinates, with a single RGBA color. The region must already be
// clipped to the rectangle.
func (d *DecodedRect) fill(x, y, w, h int, rgba []byte) {
	stride := int(d.Width) * 4
	for row := y; row < y+h; row++ {
		offset := row*stride + x*4
		for col := 0; col < w; col++ {
			copy(d.Pixels[offset:offset+4], rgba)
			offset += 4
		}
	}
}

// DecodeRectangle dispatches a framebuffer update rectangle to the
// decoder matching its wire encoding type. CopyRect carries no pixel
// data and has its own entry point, DecodeCopyRect; routing it here is
// an error.
func DecodeRectangle(x, y, width, height uint16, encodingType int32, data []byte, pf PixelFormat) (*DecodedRect, error) {
	switch encodingType {
	case EncodingRaw:
		return DecodeRaw(x, y, width, height, data, pf)
	case EncodingRRE:
		return DecodeRRE(x, y, width, height, data, pf)
	case EncodingHextile:
		return DecodeHextile(x, y, width, height, data, pf)
	case EncodingCopyRect:
		return nil, unsupportedError("DecodeRectangle",
			"CopyRect carries no pixel data; use DecodeCopyRect", nil)
	default:
		return nil, unsupportedError("DecodeRectangle",
			fmt.Sprintf("unsupported encoding type: %d", encodingType), nil)
	}
}
