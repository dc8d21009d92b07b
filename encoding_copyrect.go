// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"encoding/binary"
	"fmt"
)

// CopyRect holds the source coordinates of a CopyRect update (RFC 6143
// Section 7.7.2). The encoding transmits no pixel data: the caller,
// which owns the persistent framebuffer, blits width x height pixels
// from (SrcX, SrcY) to the destination rectangle. For overlapping
// regions the copy direction matters; that is the caller's concern.
type CopyRect struct {
	// SrcX is the X coordinate of the source region's top-left corner.
	SrcX uint16

	// SrcY is the Y coordinate of the source region's top-left corner.
	SrcY uint16
}

// copyRectPayloadSize is the fixed wire size of a CopyRect payload.
const copyRectPayloadSize = 4

// DecodeCopyRect parses the 4-byte CopyRect payload: two big-endian
// u16 source coordinates.
func DecodeCopyRect(data []byte) (CopyRect, error) {
	if len(data) < copyRectPayloadSize {
		return CopyRect{}, encodingError("DecodeCopyRect",
			fmt.Sprintf("payload requires %d bytes, got %d", copyRectPayloadSize, len(data)), nil)
	}

	return CopyRect{
		SrcX: binary.BigEndian.Uint16(data[0:2]),
		SrcY: binary.BigEndian.Uint16(data[2:4]),
	}, nil
}
