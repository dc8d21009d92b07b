// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

// Package rfb implements the security handshakes and framebuffer
// rectangle decoders of the RFB (Remote Framebuffer) protocol, the wire
// protocol underlying VNC, as defined in RFC 6143.
//
// The package deliberately covers only the protocol core: the session
// layer that negotiates versions and security types, the TCP transport,
// and the rendering surface that composites decoded rectangles are the
// caller's responsibility.
//
// # Authentication
//
// Three security types are supported: None (1), VNC password
// authentication (2), and Apple Remote Desktop (30). Each implements the
// ClientAuth interface and is driven once per connection by the session
// layer after the server announces its chosen security type.
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	auth := rfb.NewARDAuth("admin", "secret")
//	if err := auth.Handshake(ctx, conn); err != nil {
//		log.Fatal(err)
//	}
//
// The VNC handshake uses the protocol's historical DES key mangling (each
// password byte bit-reversed) and a from-scratch single-block DES cipher;
// the ARD handshake performs a Diffie-Hellman exchange over a minimal
// unsigned big-integer type and encrypts the credential block with
// AES-128-CBC. DES is cryptographically obsolete and is implemented here
// only because the protocol requires it.
//
// # Rectangle decoding
//
// For every rectangle of a FramebufferUpdate message the session layer
// dispatches on the wire encoding type:
//
//	rect, err := rfb.DecodeRectangle(x, y, w, h, encType, data, pf)
//
// Raw (0), RRE (2), and Hextile (5) produce a DecodedRect holding
// tightly packed RGBA8888 pixels. CopyRect (1) carries no pixel data;
// DecodeCopyRect returns the source coordinates and the caller performs
// the blit on its persistent framebuffer.
//
// # Error Handling
//
//	if rfb.IsRFBError(err, rfb.ErrAuthentication) {
//		log.Printf("authentication failed: %v", err)
//	}
package rfb
