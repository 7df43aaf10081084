package qota

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseFrame_Fields(t *testing.T) {
	plaintext := []byte{
		0x02, 0x01, // firmware version
		0x04, 0x00, // data size
		0x03, 0x0D, // crc
		0xA0, 0xA1, 0xA2, 0xA3, 0xA4, 0xA5, 0xA6, 0xA7, 0xA8, 0xA9,
		0x01, 0x02, 0x03, 0x04,
	}

	f, err := ParseFrame(plaintext)
	if err != nil {
		t.Fatalf("ParseFrame() error: %v", err)
	}
	if f.FirmwareVersion != 0x0102 {
		t.Fatalf("FirmwareVersion=0x%04X want 0x0102", f.FirmwareVersion)
	}
	if f.DataSize != 4 {
		t.Fatalf("DataSize=%d want 4", f.DataSize)
	}
	if f.CRC != 0x0D03 {
		t.Fatalf("CRC=0x%04X want 0x0D03", f.CRC)
	}
	if f.Reserved[0] != 0xA0 || f.Reserved[9] != 0xA9 {
		t.Fatalf("Reserved=%x", f.Reserved)
	}
	if !bytes.Equal(f.Data, []byte{0x01, 0x02, 0x03, 0x04}) {
		t.Fatalf("Data=%x", f.Data)
	}
	if err := VerifyChecksum(f); err != nil {
		t.Fatalf("VerifyChecksum() error: %v", err)
	}
	if err := VerifyDataSize(f); err != nil {
		t.Fatalf("VerifyDataSize() error: %v", err)
	}
}

func TestParseFrame_DataIgnoresDeclaredSize(t *testing.T) {
	plaintext := make([]byte, HeaderSize+8)
	plaintext[2] = 0x02 // declares 2 bytes, carries 8

	f, err := ParseFrame(plaintext)
	if err != nil {
		t.Fatalf("ParseFrame() error: %v", err)
	}
	if len(f.Data) != 8 {
		t.Fatalf("len(Data)=%d want 8", len(f.Data))
	}

	var sizeErr *DataSizeMismatchError
	if err := VerifyDataSize(f); !errors.As(err, &sizeErr) {
		t.Fatalf("VerifyDataSize() err=%v want DataSizeMismatchError", err)
	}
	if sizeErr.Declared != 2 || sizeErr.Actual != 8 {
		t.Fatalf("got %+v", sizeErr)
	}
}

func TestParseFrame_HeaderOnly(t *testing.T) {
	f, err := ParseFrame(make([]byte, HeaderSize))
	if err != nil {
		t.Fatalf("ParseFrame() error: %v", err)
	}
	if len(f.Data) != 0 {
		t.Fatalf("len(Data)=%d want 0", len(f.Data))
	}
}

func TestParseFrame_Truncated(t *testing.T) {
	_, err := ParseFrame(make([]byte, HeaderSize-1))
	var truncErr *TruncatedFrameError
	if !errors.As(err, &truncErr) {
		t.Fatalf("err=%v want TruncatedFrameError", err)
	}
	if truncErr.Length != HeaderSize-1 {
		t.Fatalf("Length=%d want %d", truncErr.Length, HeaderSize-1)
	}
}

func TestChecksumMismatchError_Message(t *testing.T) {
	f := Frame{CRC: 0x0D02, Data: []byte{0x01, 0x02, 0x03, 0x04}}
	err := VerifyChecksum(f)
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "checksum mismatch: expected 0x0D03, got 0x0D02"
	if err.Error() != want {
		t.Fatalf("error=%q want %q", err.Error(), want)
	}
}
