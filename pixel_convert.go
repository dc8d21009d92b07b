// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"fmt"
)

// pixelToRGBA converts one wire-format pixel to RGBA8888 and writes the
// four channel bytes into out. raw must hold exactly one pixel in the
// given format.
//
// For true-color formats each channel is ((raw >> shift) & max) scaled
// to the 0-255 range; alpha is always 255. Formats without true color
// treat the raw byte as a shared grayscale intensity.
func pixelToRGBA(raw []byte, pf PixelFormat, out []byte) {
	if !pf.TrueColor {
		v := raw[0]
		out[0], out[1], out[2], out[3] = v, v, v, 255
		return
	}

	var pixel uint32
	if pf.BigEndian {
		for _, b := range raw {
			pixel = pixel<<8 | uint32(b)
		}
	} else {
		for i := len(raw) - 1; i >= 0; i-- {
			pixel = pixel<<8 | uint32(raw[i])
		}
	}

	out[0] = scaleChannel(pixel>>pf.RedShift, pf.RedMax)
	out[1] = scaleChannel(pixel>>pf.GreenShift, pf.GreenMax)
	out[2] = scaleChannel(pixel>>pf.BlueShift, pf.BlueMax)
	out[3] = 255
}

// scaleChannel masks a shifted pixel value with the channel maximum and
// scales it to 8 bits.
func scaleChannel(v uint32, max uint16) byte {
	if max == 0 {
		return 0
	}
	return byte((v & uint32(max)) * 255 / uint32(max))
}

// ConvertToRGBA converts a buffer of wire-format pixels to tightly
// packed RGBA8888. The input length must be a whole number of pixels.
func ConvertToRGBA(data []byte, pf PixelFormat) ([]byte, error) {
	bpp := pf.BytesPerPixel()
	if bpp != 1 && bpp != 2 && bpp != 4 {
		return nil, validationError("ConvertToRGBA",
			fmt.Sprintf("unsupported bytes per pixel: %d", bpp), nil)
	}
	if len(data)%bpp != 0 {
		return nil, encodingError("ConvertToRGBA",
			fmt.Sprintf("pixel data length %d is not a multiple of %d", len(data), bpp), nil)
	}

	pixelCount := len(data) / bpp
	out := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		pixelToRGBA(data[i*bpp:(i+1)*bpp], pf, out[i*4:i*4+4])
	}

	return out, nil
}
