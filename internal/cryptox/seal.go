// Package cryptox seals small secrets (the session token and the cached
// email) before they are written to the local database.
//
// Values are sealed with NaCl secretbox under a 32-byte device key. The key
// lives in a file readable only by the current user; it is created on first
// use by LoadOrCreateKey.
package cryptox

import (
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/filex"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// KeySize is the size of the device key in bytes.
	KeySize   = 32
	nonceSize = 24
)

var (
	ErrInvalidKey     = errors.New("invalid device key")
	ErrSealedTooSmall = errors.New("sealed value too short")
	ErrOpenFailed     = errors.New("sealed value cannot be opened")
)

// Sealer encrypts and authenticates values under a fixed key.
type Sealer struct {
	key [KeySize]byte
}

// NewSealer copies key into a new Sealer. The key must be KeySize bytes.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}
	s := &Sealer{}
	copy(s.key[:], key)
	return s, nil
}

// Seal returns nonce || secretbox(plain). Every call uses a fresh nonce.
func (s *Sealer) Seal(plain []byte) []byte {
	var nonce [nonceSize]byte
	copy(nonce[:], common.GenerateRandByteArray(nonceSize))
	return secretbox.Seal(nonce[:], plain, &nonce, &s.key)
}

// Open reverses Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrSealedTooSmall
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrOpenFailed
	}
	return plain, nil
}

// Wipe zeroes the key held by s.
func (s *Sealer) Wipe() {
	common.WipeByteArray(s.key[:])
}

// LoadOrCreateKey reads the device key at path, generating and persisting a
// new random key with mode 0600 when the file does not exist.
func LoadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != KeySize {
			return nil, fmt.Errorf("%w: %s holds %d bytes", ErrInvalidKey, path, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read device key: %w", err)
	}

	if err := filex.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}

	key = common.GenerateRandByteArray(KeySize)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create device key: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(key); err != nil {
		return nil, fmt.Errorf("write device key: %w", err)
	}
	return key, nil
}
