// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package deployment

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// AESEncryption seals data with AES-GCM. The nonce is prepended to the
// ciphertext.
type AESEncryption struct {
	aead cipher.AEAD
}

func NewAESEncryption(key []byte) (*AESEncryption, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &AESEncryption{
		aead: aead,
	}, nil
}

func (e *AESEncryption) Encrypt(data []byte) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return e.aead.Seal(nonce, nonce, data, nil), nil
}

func (e *AESEncryption) Decrypt(data []byte) ([]byte, error) {
	if len(data) < e.aead.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ct := data[:e.aead.NonceSize()], data[e.aead.NonceSize():]
	return e.aead.Open(nil, nonce, ct, nil)
}
