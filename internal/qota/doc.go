// Package qota unpacks QOTA firmware containers.
//
// A container is a little-endian uint16 format version followed by AES-128
// ECB ciphertext. The key, the ciphertext and the cipher output are each
// byte-reversed once; the recovered plaintext starts with a 16-byte header
// carrying a CRC-16/XMODEM of the payload.
//
// Everything here is a pure function over in-memory buffers. Writing the
// result is left to the caller.
package qota
