package qota

import "encoding/binary"

const (
	// FormatVersionSize is the size of the container's leading version field.
	FormatVersionSize = 2

	// FormatVersion is the only container format version Unpack accepts when
	// checks are enabled.
	FormatVersion uint16 = 0x10
)

// SupportedFormatVersion reports whether v can be unpacked with checks on.
func SupportedFormatVersion(v uint16) bool {
	return v == FormatVersion
}

// Options controls the optional steps of Unpack. The zero value runs every
// check except the data size cross-check, uses CipherInverse, and keeps the
// frame header in the output.
type Options struct {
	// DisableChecks skips the version gate, frame parsing and checksum
	// verification. Block alignment is still enforced.
	DisableChecks bool
	// RemoveHeader drops the 16-byte frame header from the output.
	RemoveHeader bool
	// CheckDataSize additionally requires the header's DataSize to match the
	// payload length. Ignored when DisableChecks is set.
	CheckDataSize bool
	Cipher        Cipher
}

// Result is the outcome of a successful Unpack.
type Result struct {
	FormatVersion uint16
	// Frame is the parsed header. Nil when checks were disabled.
	Frame *Frame
	// Output is the byte sequence to persist.
	Output []byte
}

// Unpack decrypts and validates a QOTA container.
//
// Steps run in a fixed order: key check, format version read, version gate,
// decryption, frame verification, header strip. The first failure aborts
// the run and nothing is returned for the caller to write.
func Unpack(key, input []byte, opts Options) (Result, error) {
	if err := checkKey(key); err != nil {
		return Result{}, err
	}

	version, ciphertext, err := splitContainer(input)
	if err != nil {
		return Result{}, err
	}
	if !opts.DisableChecks && !SupportedFormatVersion(version) {
		return Result{}, &UnsupportedVersionError{Version: version}
	}

	plaintext, err := decrypt(key, ciphertext, opts.Cipher)
	if err != nil {
		return Result{}, err
	}

	res := Result{FormatVersion: version}
	if !opts.DisableChecks {
		f, err := ParseFrame(plaintext)
		if err != nil {
			return Result{}, err
		}
		if err := VerifyChecksum(f); err != nil {
			return Result{}, err
		}
		if opts.CheckDataSize {
			if err := VerifyDataSize(f); err != nil {
				return Result{}, err
			}
		}
		res.Frame = &f
	}

	res.Output = plaintext
	if opts.RemoveHeader {
		res.Output = stripHeader(plaintext)
	}
	return res, nil
}

func splitContainer(input []byte) (uint16, []byte, error) {
	if len(input) < FormatVersionSize {
		return 0, nil, ErrContainerTooShort
	}
	return binary.LittleEndian.Uint16(input[:FormatVersionSize]), input[FormatVersionSize:], nil
}

// decrypt reverses the key and the ciphertext, runs the block cipher and
// reverses its output.
func decrypt(key, ciphertext []byte, c Cipher) ([]byte, error) {
	out, err := c.apply(Reverse(key), Reverse(ciphertext))
	if err != nil {
		return nil, err
	}
	return Reverse(out), nil
}

// stripHeader drops the frame header. Plaintext shorter than the header
// (only possible with checks disabled) yields an empty slice.
func stripHeader(plaintext []byte) []byte {
	if len(plaintext) < HeaderSize {
		return []byte{}
	}
	return plaintext[HeaderSize:]
}
