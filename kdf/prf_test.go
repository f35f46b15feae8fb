package kdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPRF(t *testing.T) {
	cases := []struct {
		name string
		want PRF
	}{
		{"sha512", HMACSHA512},
		{"SHA512", HMACSHA512},
		{"hmac-sha512", HMACSHA512},
		{" HMAC-SHA256 ", HMACSHA256},
		{"sha384", HMACSHA384},
		{"sha1", HMACSHA1},
		{"sha3-512", HMACSHA3_512},
		{"blake2b-512", HMACBLAKE2b512},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prf, err := LookupPRF(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, prf)
		})
	}
}

func TestLookupUnknownPRF(t *testing.T) {
	prf, err := LookupPRF("md5")
	assert.Nil(t, prf)
	assert.True(t, errors.Is(err, ErrUnknownPRF))
}

func TestPRFSizes(t *testing.T) {
	sizes := map[string]int{
		"sha512":      64,
		"sha384":      48,
		"sha256":      32,
		"sha1":        20,
		"sha3-512":    64,
		"blake2b-512": 64,
	}

	prfs := PRFs()
	require.Len(t, prfs, len(sizes))
	assert.Equal(t, HMACSHA512, prfs[0])
	for _, prf := range prfs {
		assert.Equal(t, sizes[prf.Name()], prf.Size(), prf.Name())

		mac, err := prf.Keyed([]byte("key"))
		require.NoError(t, err)
		assert.Equal(t, prf.Size(), mac.Size(), prf.Name())
	}
}

func TestWipe(t *testing.T) {
	b := []byte("secret")
	wipe(b)
	assert.Equal(t, make([]byte, 6), b)
}
