// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"fmt"
)

// maxRectDimension bounds rectangle dimensions accepted from the wire.
// RFC 6143 coordinates are u16, but a hostile server can still declare
// rectangles whose pixel buffers would exhaust memory.
const maxRectDimension = 32768

// maxRectArea bounds the decoded pixel buffer at one gigapixel.
const maxRectArea = 1024 * 1024 * 1024

// validateRectGeometry checks the dimensions of a framebuffer update
// rectangle before its pixel buffer is allocated.
func validateRectGeometry(op string, width, height uint16) error {
	if width == 0 || height == 0 {
		return validationError(op, "rectangle dimensions cannot be zero", nil)
	}

	if width > maxRectDimension || height > maxRectDimension {
		return validationError(op,
			fmt.Sprintf("rectangle dimensions too large: %dx%d (max %d)",
				width, height, maxRectDimension), nil)
	}

	if uint64(width)*uint64(height) > maxRectArea {
		return validationError(op,
			fmt.Sprintf("rectangle area too large: %d pixels (max %d)",
				uint64(width)*uint64(height), maxRectArea), nil)
	}

	return nil
}

// validateSubrectBounds checks that a subrectangle lies entirely inside
// its parent rectangle.
func validateSubrectBounds(op string, x, y, w, h, parentW, parentH uint16) error {
	if w == 0 || h == 0 {
		return validationError(op, "subrectangle dimensions cannot be zero", nil)
	}

	if uint32(x)+uint32(w) > uint32(parentW) || uint32(y)+uint32(h) > uint32(parentH) {
		return validationError(op,
			fmt.Sprintf("subrectangle %dx%d at (%d,%d) extends outside %dx%d parent",
				w, h, x, y, parentW, parentH), nil)
	}

	return nil
}
