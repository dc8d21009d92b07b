// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"fmt"
)

// Hextile subencoding flag bits as defined in RFC 6143 Section 7.7.4.
const (
	HextileRaw                 = 1
	HextileBackgroundSpecified = 2
	HextileForegroundSpecified = 4
	HextileAnySubrects         = 8
	HextileSubrectsColoured    = 16

	// HextileTileSize is the edge length of a full hextile tile.
	HextileTileSize = 16
)

// DecodeHextile decodes a Hextile-encoded rectangle as defined in
// RFC 6143 Section 7.7.4. The rectangle is tiled into 16x16 blocks
// (edge tiles may be smaller) processed left to right, top to bottom.
//
// Each tile begins with a one-byte flag field. A RAW tile carries
// tileW*tileH wire-format pixels and nothing else. Otherwise the tile
// is filled with the running background color, optionally updated
// first, and subrectangles are painted over it using either per-subrect
// colors or the running foreground. The background and foreground
// persist across tiles until a tile replaces them; that shared state is
// the only state carried between loop iterations.
//
// Truncated data at any required read is a hard error. A subrectangle
// that overflows its tile is clipped to the tile bounds instead.
func DecodeHextile(x, y, width, height uint16, data []byte, pf PixelFormat) (*DecodedRect, error) {
	if err := validateRectGeometry("DecodeHextile", width, height); err != nil {
		return nil, err
	}

	bpp := pf.BytesPerPixel()
	rect := newDecodedRect(x, y, width, height)
	offset := 0

	// need reports whether n more bytes are available, consuming nothing.
	need := func(n int, what string) error {
		if len(data)-offset < n {
			return encodingError("DecodeHextile",
				fmt.Sprintf("truncated tile data: need %d more bytes for %s", n, what), nil)
		}
		return nil
	}

	var background, foreground [4]byte

	for tileY := 0; tileY < int(height); tileY += HextileTileSize {
		tileH := HextileTileSize
		if tileY+tileH > int(height) {
			tileH = int(height) - tileY
		}

		for tileX := 0; tileX < int(width); tileX += HextileTileSize {
			tileW := HextileTileSize
			if tileX+tileW > int(width) {
				tileW = int(width) - tileX
			}

			if err := need(1, "tile flags"); err != nil {
				return nil, err
			}
			flags := data[offset]
			offset++

			if flags&HextileRaw != 0 {
				rawLen := tileW * tileH * bpp
				if err := need(rawLen, "raw tile pixels"); err != nil {
					return nil, err
				}

				tilePixels, err := ConvertToRGBA(data[offset:offset+rawLen], pf)
				if err != nil {
					return nil, err
				}
				offset += rawLen

				stride := int(width) * 4
				for row := 0; row < tileH; row++ {
					dst := (tileY+row)*stride + tileX*4
					src := row * tileW * 4
					copy(rect.Pixels[dst:dst+tileW*4], tilePixels[src:src+tileW*4])
				}
				continue
			}

			if flags&HextileBackgroundSpecified != 0 {
				if err := need(bpp, "background pixel"); err != nil {
					return nil, err
				}
				pixelToRGBA(data[offset:offset+bpp], pf, background[:])
				offset += bpp
			}
			rect.fill(tileX, tileY, tileW, tileH, background[:])

			if flags&HextileForegroundSpecified != 0 {
				if err := need(bpp, "foreground pixel"); err != nil {
					return nil, err
				}
				pixelToRGBA(data[offset:offset+bpp], pf, foreground[:])
				offset += bpp
			}

			if flags&HextileAnySubrects == 0 {
				continue
			}

			if err := need(1, "subrectangle count"); err != nil {
				return nil, err
			}
			numSubrects := int(data[offset])
			offset++

			for i := 0; i < numSubrects; i++ {
				color := foreground
				if flags&HextileSubrectsColoured != 0 {
					if err := need(bpp, "subrectangle color"); err != nil {
						return nil, err
					}
					pixelToRGBA(data[offset:offset+bpp], pf, color[:])
					offset += bpp
				}

				if err := need(2, "subrectangle geometry"); err != nil {
					return nil, err
				}
				xy := data[offset]
				wh := data[offset+1]
				offset += 2

				sx := int(xy >> 4)
				sy := int(xy & 0x0F)
				sw := int(wh>>4) + 1
				sh := int(wh&0x0F) + 1

				// Clip to the tile rather than erroring on overflow.
				if sx >= tileW || sy >= tileH {
					continue
				}
				if sx+sw > tileW {
					sw = tileW - sx
				}
				if sy+sh > tileH {
					sh = tileH - sy
				}

				rect.fill(tileX+sx, tileY+sy, sw, sh, color[:])
			}
		}
	}

	return rect, nil
}
