package qota

// Inspection describes a container without enforcing any of the checks
// Unpack applies.
type Inspection struct {
	FormatVersion    uint16
	VersionSupported bool
	CiphertextSize   int

	Frame       Frame
	ComputedCRC uint16
	ChecksumOK  bool
	DataSizeOK  bool
}

// Inspect decrypts input and reports the outcome of each check. Only
// failures that prevent decryption (key size, short container, block
// alignment) are returned as errors.
func Inspect(key, input []byte, c Cipher) (Inspection, error) {
	if err := checkKey(key); err != nil {
		return Inspection{}, err
	}

	version, ciphertext, err := splitContainer(input)
	if err != nil {
		return Inspection{}, err
	}

	in := Inspection{
		FormatVersion:    version,
		VersionSupported: SupportedFormatVersion(version),
		CiphertextSize:   len(ciphertext),
	}

	plaintext, err := decrypt(key, ciphertext, c)
	if err != nil {
		return Inspection{}, err
	}

	// decrypt only succeeds on whole blocks, so plaintext always holds a header.
	f, _ := ParseFrame(plaintext)
	in.Frame = f
	in.ComputedCRC = CRC16(f.Data)
	in.ChecksumOK = VerifyChecksum(f) == nil
	in.DataSizeOK = VerifyDataSize(f) == nil
	return in, nil
}
