package qota

import (
	"encoding/binary"
	"encoding/hex"
	"testing"
)

var testKey = []byte{
	0x2b, 0x7e, 0x15, 0x16, 0x28, 0xae, 0xd2, 0xa6,
	0xab, 0xf7, 0x15, 0x88, 0x09, 0xcf, 0x4f, 0x3c,
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("DecodeString(%q) error: %v", s, err)
	}
	return b
}

// buildPlaintext lays out a frame header with a correct CRC and data size
// followed by data. Callers pick len(data) so the total is block aligned.
func buildPlaintext(fwVersion uint16, data []byte) []byte {
	out := make([]byte, HeaderSize, HeaderSize+len(data))
	binary.LittleEndian.PutUint16(out[0:2], fwVersion)
	binary.LittleEndian.PutUint16(out[2:4], uint16(len(data)))
	binary.LittleEndian.PutUint16(out[4:6], CRC16(data))
	return append(out, data...)
}

// sealContainer produces the container that Unpack turns back into
// plaintext with the given cipher direction.
func sealContainer(t *testing.T, key, plaintext []byte, version uint16, c Cipher) []byte {
	t.Helper()

	var (
		permuted []byte
		err      error
	)
	switch c {
	case CipherInverse:
		permuted, err = EncryptECB(Reverse(key), Reverse(plaintext))
	case CipherForward:
		permuted, err = DecryptECB(Reverse(key), Reverse(plaintext))
	default:
		t.Fatalf("unknown cipher %v", c)
	}
	if err != nil {
		t.Fatalf("seal error: %v", err)
	}

	out := make([]byte, FormatVersionSize, FormatVersionSize+len(permuted))
	binary.LittleEndian.PutUint16(out, version)
	return append(out, Reverse(permuted)...)
}
