package crypto

import (
	"crypto/rand"
	"fmt"
	"github.com/tigerwill90/ndnkdf/kdf"
	"io"
)

const (
	SaltSize          = 32
	KeySize           = 32
	DefaultIterations = 210000
)

func GenerateSalt(r io.Reader, size int) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	salt := make([]byte, size)
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	return salt, nil
}

// DeriveStreamKey derives an AES-256 stream key from password and salt.
func DeriveStreamKey(d *kdf.Deriver, password, salt []byte, iterations int) ([]byte, error) {
	key, err := d.Derive(password, salt, iterations, KeySize)
	if err != nil {
		return nil, fmt.Errorf("deriving stream key: %w", err)
	}
	return key, nil
}
