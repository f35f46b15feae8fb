package kdf

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"hash"
	"strings"
)

// PRF is a keyed pseudorandom function producing digests of Size bytes.
type PRF interface {
	Name() string
	Size() int
	// Keyed returns a MAC keyed with key. The deriver resets and reuses the
	// returned hash for every application of the PRF within one derivation.
	Keyed(key []byte) (hash.Hash, error)
}

var (
	HMACSHA1       = NewHMAC("sha1", sha1.New)
	HMACSHA256     = NewHMAC("sha256", sha256.New)
	HMACSHA384     = NewHMAC("sha384", sha512.New384)
	HMACSHA512     = NewHMAC("sha512", sha512.New)
	HMACSHA3_512   = NewHMAC("sha3-512", sha3.New512)
	HMACBLAKE2b512 = NewHMAC("blake2b-512", newBlake2b512)
)

type hmacPRF struct {
	name string
	size int
	h    func() hash.Hash
}

// NewHMAC returns an HMAC based PRF over the hash constructor h.
func NewHMAC(name string, h func() hash.Hash) PRF {
	return &hmacPRF{
		name: name,
		size: h().Size(),
		h:    h,
	}
}

func (p *hmacPRF) Name() string {
	return p.name
}

func (p *hmacPRF) Size() int {
	return p.size
}

func (p *hmacPRF) Keyed(key []byte) (hash.Hash, error) {
	return hmac.New(p.h, key), nil
}

// PRFs returns every built-in PRF, HMAC-SHA512 first.
func PRFs() []PRF {
	return []PRF{HMACSHA512, HMACSHA384, HMACSHA256, HMACSHA1, HMACSHA3_512, HMACBLAKE2b512}
}

// LookupPRF resolves a built-in PRF by name, ignoring case and an optional
// "hmac-" prefix.
func LookupPRF(name string) (PRF, error) {
	n := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "hmac-")
	for _, prf := range PRFs() {
		if prf.Name() == n {
			return prf, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPRF, name)
}

// unkeyed blake2b never fails
func newBlake2b512() hash.Hash {
	h, _ := blake2b.New512(nil)
	return h
}
