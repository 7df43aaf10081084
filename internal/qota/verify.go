package qota

// VerifyChecksum checks the stored CRC against CRC16 of the payload.
func VerifyChecksum(f Frame) error {
	if got := CRC16(f.Data); got != f.CRC {
		return &ChecksumMismatchError{Expected: got, Actual: f.CRC}
	}
	return nil
}

// VerifyDataSize checks the declared payload size against the payload length.
//
// Vendor tooling does not enforce this, so Unpack only runs it when
// Options.CheckDataSize is set.
func VerifyDataSize(f Frame) error {
	if int(f.DataSize) != len(f.Data) {
		return &DataSizeMismatchError{Declared: f.DataSize, Actual: len(f.Data)}
	}
	return nil
}
