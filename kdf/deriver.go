// Package kdf implements PBKDF2 (RFC 8018) over a pluggable PRF, HMAC-SHA512
// by default.
package kdf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Deriver derives keys with PBKDF2. It holds no mutable state and is safe
// for concurrent use. The zero value derives with HMAC-SHA512.
type Deriver struct {
	prf PRF
}

func New(opts ...Option) *Deriver {
	config := defaultConfig()
	for _, opt := range opts {
		opt.apply(config)
	}

	return &Deriver{
		prf: config.prf,
	}
}

// Key derives length bytes with PBKDF2-HMAC-SHA512.
func Key(password, salt []byte, iterations, length int) ([]byte, error) {
	return New().Derive(password, salt, iterations, length)
}

func (d *Deriver) PRF() PRF {
	if d.prf == nil {
		return HMACSHA512
	}
	return d.prf
}

// MaxLength is the largest output PBKDF2 can produce with the configured PRF.
func (d *Deriver) MaxLength() uint64 {
	return uint64(d.PRF().Size()) * math.MaxUint32
}

// Derive returns length bytes of key material derived from password and
// salt. Password and salt may be empty. The returned error is either a
// *ParameterError or a *PrimitiveError; no key material is returned with it.
func (d *Deriver) Derive(password, salt []byte, iterations, length int) ([]byte, error) {
	if err := d.validate(iterations, length); err != nil {
		return nil, err
	}

	key := make([]byte, len(password))
	copy(key, password)
	defer wipe(key)

	prf := d.PRF()
	mac, err := prf.Keyed(key)
	if err != nil {
		return nil, &PrimitiveError{PRF: prf.Name(), Err: err}
	}

	hLen := mac.Size()
	if hLen != prf.Size() {
		return nil, &PrimitiveError{
			PRF: prf.Name(),
			Err: fmt.Errorf("keyed digest size is %d bytes, want %d", hLen, prf.Size()),
		}
	}

	t := make([]byte, hLen)
	u := make([]byte, 0, hLen)
	defer func() {
		wipe(t)
		wipe(u[:cap(u)])
	}()

	numBlocks := length / hLen
	if length%hLen != 0 {
		numBlocks++
	}
	dk := make([]byte, length)
	var index [4]byte
	for block := 1; block <= numBlocks; block++ {
		binary.BigEndian.PutUint32(index[:], uint32(block))
		mac.Reset()
		mac.Write(salt)
		mac.Write(index[:])
		u = mac.Sum(u[:0])
		copy(t, u)

		for n := 2; n <= iterations; n++ {
			mac.Reset()
			mac.Write(u)
			u = mac.Sum(u[:0])
			for i := range t {
				t[i] ^= u[i]
			}
		}

		// the last block is cut to its leading bytes by copy
		copy(dk[(block-1)*hLen:], t)
	}

	return dk, nil
}

func (d *Deriver) validate(iterations, length int) error {
	if iterations < 1 {
		return &ParameterError{
			Field:  FieldIterations,
			Reason: fmt.Sprintf("must be at least 1, got %d", iterations),
		}
	}

	if length < 1 {
		return &ParameterError{
			Field:  FieldLength,
			Reason: fmt.Sprintf("must be at least 1, got %d", length),
		}
	}

	if limit := d.MaxLength(); uint64(length) > limit {
		return &ParameterError{
			Field:  FieldLength,
			Reason: fmt.Sprintf("%d bytes exceeds the %s limit of %d bytes", length, d.PRF().Name(), limit),
		}
	}

	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
