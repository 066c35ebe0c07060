// Package crypto seals configuration secrets with a passphrase.
//
// A sealed value reads "enc:" followed by base64(salt | nonce | ciphertext).
// The key is derived from the passphrase with PBKDF2-SHA256 and the value is
// encrypted with AES-256-GCM.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Prefix marks a sealed value.
const Prefix = "enc:"

const (
	saltSize   = 16
	iterations = 100000
	keySize    = 32 // AES-256
)

var (
	// ErrNoPassphrase is returned when a sealed value is used without a
	// passphrase.
	ErrNoPassphrase = errors.New("no passphrase configured")
	// ErrDecrypt is returned when a sealed value cannot be opened.
	ErrDecrypt = errors.New("cannot decrypt value")
)

// Encryptor seals and opens secrets with a passphrase.
type Encryptor struct {
	passphrase []byte
}

// NewEncryptor creates a new encryptor with the given passphrase. An empty
// passphrase yields nil, which can still open plain values.
func NewEncryptor(passphrase string) *Encryptor {
	if passphrase == "" {
		return nil
	}
	return &Encryptor{passphrase: []byte(passphrase)}
}

// IsSealed reports whether s carries the sealed prefix.
func IsSealed(s string) bool {
	return strings.HasPrefix(s, Prefix)
}

func (e *Encryptor) gcm(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(e.passphrase, salt, iterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext and returns it with the sealed prefix.
func (e *Encryptor) Seal(plaintext string) (string, error) {
	if e == nil {
		return "", ErrNoPassphrase
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	gcm, err := e.gcm(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(salt)
	buf.Write(gcm.Seal(nonce, nonce, []byte(plaintext), nil))

	return Prefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Open returns the plaintext of a sealed value. Values without the sealed
// prefix are returned unchanged.
func (e *Encryptor) Open(value string) (string, error) {
	if !IsSealed(value) {
		return value, nil
	}
	if e == nil {
		return "", ErrNoPassphrase
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, Prefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	if len(data) < saltSize {
		return "", fmt.Errorf("%w: value too short", ErrDecrypt)
	}

	salt, data := data[:saltSize], data[saltSize:]
	gcm, err := e.gcm(salt)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, cipherData := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, cipherData, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	return string(plaintext), nil
}

// OpenAll opens every value in place, stopping at the first failure.
func (e *Encryptor) OpenAll(values ...*string) error {
	for _, v := range values {
		plain, err := e.Open(*v)
		if err != nil {
			return err
		}
		*v = plain
	}
	return nil
}
