package qota

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// KeySize is the AES-128 key length in bytes.
const KeySize = 16

// DecryptECB decrypts ciphertext with AES-128 in ECB mode. No padding is
// removed; the container format guarantees block alignment.
func DecryptECB(key, ciphertext []byte) ([]byte, error) {
	return cryptECB(key, ciphertext, cipher.Block.Decrypt)
}

// EncryptECB applies the forward AES-128 permutation to each block of src.
// Unpack uses it for CipherForward containers.
func EncryptECB(key, src []byte) ([]byte, error) {
	return cryptECB(key, src, cipher.Block.Encrypt)
}

func cryptECB(key, src []byte, fn func(b cipher.Block, dst, src []byte)) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if len(src) == 0 || len(src)%aes.BlockSize != 0 {
		return nil, &BlockAlignmentError{Length: len(src), BlockSize: aes.BlockSize}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(src))
	for off := 0; off < len(src); off += aes.BlockSize {
		fn(block, out[off:off+aes.BlockSize], src[off:off+aes.BlockSize])
	}
	return out, nil
}

func checkKey(key []byte) error {
	if len(key) != KeySize {
		return &ConfigError{Field: "key", Reason: fmt.Sprintf("want %d bytes, got %d", KeySize, len(key))}
	}
	return nil
}
