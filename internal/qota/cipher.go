package qota

import (
	"fmt"
	"strings"
)

// Cipher selects which AES block permutation recovers the plaintext.
type Cipher int

const (
	// CipherInverse runs AES decryption over the reversed ciphertext.
	CipherInverse Cipher = iota
	// CipherForward runs the AES forward permutation instead. Packs built by
	// the vendor tooling expect this.
	CipherForward
)

func (c Cipher) String() string {
	switch c {
	case CipherInverse:
		return "inverse"
	case CipherForward:
		return "forward"
	default:
		return fmt.Sprintf("Cipher(%d)", int(c))
	}
}

// ParseCipher parses "inverse" or "forward". The empty string selects
// CipherInverse.
func ParseCipher(s string) (Cipher, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inverse":
		return CipherInverse, nil
	case "forward":
		return CipherForward, nil
	default:
		return 0, &ConfigError{Field: "cipher", Reason: fmt.Sprintf("%q is not one of inverse, forward", s)}
	}
}

func (c Cipher) apply(key, src []byte) ([]byte, error) {
	switch c {
	case CipherInverse:
		return DecryptECB(key, src)
	case CipherForward:
		return EncryptECB(key, src)
	default:
		return nil, &ConfigError{Field: "cipher", Reason: c.String()}
	}
}
