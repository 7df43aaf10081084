package qota

import "encoding/binary"

// HeaderSize is the size of the plaintext frame header that precedes the
// firmware payload.
const HeaderSize = 16

// Frame is the decrypted pack: a fixed 16-byte header followed by the payload.
//
//	offset  size  field
//	0       2     FirmwareVersion (LE)
//	2       2     DataSize (LE)
//	4       2     CRC (LE)
//	6       10    Reserved
//	16      n     Data
type Frame struct {
	FirmwareVersion uint16
	DataSize        uint16
	CRC             uint16
	Reserved        [10]byte
	Data            []byte
}

// ParseFrame splits plaintext into header fields and payload. It performs no
// validation; Data is everything after the header regardless of DataSize and
// aliases plaintext.
func ParseFrame(plaintext []byte) (Frame, error) {
	if len(plaintext) < HeaderSize {
		return Frame{}, &TruncatedFrameError{Length: len(plaintext)}
	}

	f := Frame{
		FirmwareVersion: binary.LittleEndian.Uint16(plaintext[0:2]),
		DataSize:        binary.LittleEndian.Uint16(plaintext[2:4]),
		CRC:             binary.LittleEndian.Uint16(plaintext[4:6]),
		Data:            plaintext[HeaderSize:],
	}
	copy(f.Reserved[:], plaintext[6:HeaderSize])
	return f, nil
}
