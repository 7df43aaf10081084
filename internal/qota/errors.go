package qota

import (
	"errors"
	"fmt"
)

// ErrContainerTooShort means the input cannot even hold the format version.
var ErrContainerTooShort = errors.New("container too short for format version")

// ConfigError indicates caller-supplied misconfiguration, such as a key of
// the wrong size.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnsupportedVersionError indicates that the container format version is not
// one this package knows how to unpack.
type UnsupportedVersionError struct {
	Version uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("format version 0x%04X unsupported", e.Version)
}

// BlockAlignmentError indicates that the ciphertext is empty or not a whole
// number of cipher blocks.
type BlockAlignmentError struct {
	Length    int
	BlockSize int
}

func (e *BlockAlignmentError) Error() string {
	return fmt.Sprintf("ciphertext length %d is not a positive multiple of %d", e.Length, e.BlockSize)
}

// TruncatedFrameError indicates that the plaintext is shorter than the frame
// header.
type TruncatedFrameError struct {
	Length int
}

func (e *TruncatedFrameError) Error() string {
	return fmt.Sprintf("frame too short: %d bytes, header needs %d", e.Length, HeaderSize)
}

// ChecksumMismatchError indicates that the payload CRC does not match the
// value stored in the frame header.
type ChecksumMismatchError struct {
	Expected uint16 // computed over the payload
	Actual   uint16 // stored in the header
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%04X, got 0x%04X", e.Expected, e.Actual)
}

// DataSizeMismatchError indicates that the declared payload size does not
// match the number of payload bytes present.
type DataSizeMismatchError struct {
	Declared uint16
	Actual   int
}

func (e *DataSizeMismatchError) Error() string {
	return fmt.Sprintf("data size mismatch: header declares %d bytes, payload has %d", e.Declared, e.Actual)
}
