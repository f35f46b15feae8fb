package crypto

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tigerwill90/ndnkdf/kdf"
)

func TestSealOpenRoundTrip(t *testing.T) {
	large := make([]byte, 200*1024)
	_, err := rand.Read(large)
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext []byte
		compress  bool
	}{
		{"empty", nil, false},
		{"short", []byte("hello world"), false},
		{"short compressed", []byte("hello world"), true},
		{"repetitive compressed", bytes.Repeat([]byte("clipboard "), 10000), true},
		{"multi fragment", large, false},
		{"multi fragment compressed", large, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sealed := new(bytes.Buffer)
			sum, err := Seal(sealed, bytes.NewReader(tc.plaintext), []byte("password"), WithIterations(2), WithCompression(tc.compress))
			require.NoError(t, err)
			assert.Equal(t, int64(len(tc.plaintext)), sum.BytesRead)
			assert.Equal(t, int64(sealed.Len()), sum.BytesWritten)
			assert.Equal(t, "sha512", sum.PRF)
			assert.Equal(t, 2, sum.Iterations)
			assert.Equal(t, tc.compress, sum.Compressed)

			total := int64(sealed.Len())
			opened := new(bytes.Buffer)
			osum, err := Open(opened, sealed, []byte("password"))
			require.NoError(t, err)
			assert.Equal(t, string(tc.plaintext), opened.String())
			assert.Equal(t, total, osum.BytesRead)
			assert.Equal(t, int64(len(tc.plaintext)), osum.BytesWritten)
			assert.Equal(t, tc.compress, osum.Compressed)
		})
	}
}

func TestSealWithAlternatePRF(t *testing.T) {
	sealed := new(bytes.Buffer)
	_, err := Seal(sealed, strings.NewReader("secret"), []byte("pw"), WithIterations(3), WithDeriver(kdf.New(kdf.WithPRF(kdf.HMACSHA256))))
	require.NoError(t, err)

	header, err := ReadHeader(bytes.NewReader(sealed.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "sha256", header.PRF)
	assert.Equal(t, uint32(3), header.Iterations)
	assert.Len(t, header.Salt, SaltSize)

	opened := new(bytes.Buffer)
	_, err = Open(opened, sealed, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "secret", opened.String())
}

func TestSealRejectsUnregisteredPRF(t *testing.T) {
	custom := kdf.NewHMAC("custom", sha256.New)
	_, err := Seal(new(bytes.Buffer), strings.NewReader("data"), []byte("pw"), WithDeriver(kdf.New(kdf.WithPRF(custom))))
	assert.True(t, errors.Is(err, kdf.ErrUnknownPRF))
}

func TestOpenWrongPassword(t *testing.T) {
	for _, compress := range []bool{false, true} {
		sealed := new(bytes.Buffer)
		_, err := Seal(sealed, strings.NewReader("top secret"), []byte("right"), WithIterations(1), WithCompression(compress))
		require.NoError(t, err)

		opened := new(bytes.Buffer)
		_, err = Open(opened, sealed, []byte("wrong"))
		assert.True(t, errors.Is(err, ErrAuthentication), "compress=%t: %v", compress, err)
		assert.Zero(t, opened.Len())
	}
}

func TestOpenTamperedCiphertext(t *testing.T) {
	sealed := new(bytes.Buffer)
	_, err := Seal(sealed, strings.NewReader("top secret"), []byte("pw"), WithIterations(1))
	require.NoError(t, err)

	b := sealed.Bytes()
	b[len(b)-1] ^= 0x01

	_, err = Open(new(bytes.Buffer), bytes.NewReader(b), []byte("pw"))
	assert.True(t, errors.Is(err, ErrAuthentication))
}

func TestOpenTamperedHeaderFlags(t *testing.T) {
	sealed := new(bytes.Buffer)
	_, err := Seal(sealed, strings.NewReader("top secret"), []byte("pw"), WithIterations(1))
	require.NoError(t, err)

	b := sealed.Bytes()
	header, err := ReadHeader(bytes.NewReader(b))
	require.NoError(t, err)
	header.Compressed = true
	forged, err := header.MarshalBinary()
	require.NoError(t, err)
	copy(b, forged)

	_, err = Open(new(bytes.Buffer), bytes.NewReader(b), []byte("pw"))
	assert.True(t, errors.Is(err, ErrAuthentication))
}

func TestOpenIterationLimit(t *testing.T) {
	sealed := new(bytes.Buffer)
	_, err := Seal(sealed, strings.NewReader("data"), []byte("pw"), WithIterations(10))
	require.NoError(t, err)

	_, err = Open(new(bytes.Buffer), sealed, []byte("pw"), WithMaxIterations(5))
	assert.True(t, errors.Is(err, ErrInvalidHeader))
}

func TestOpenUnknownPRF(t *testing.T) {
	header, err := (&Header{PRF: "whirlpool", Iterations: 1, Nonce: make([]byte, NonceSize)}).MarshalBinary()
	require.NoError(t, err)

	_, err = Open(new(bytes.Buffer), bytes.NewReader(append(header, "ciphertext"...)), []byte("pw"))
	assert.True(t, errors.Is(err, ErrInvalidHeader))
	assert.Contains(t, err.Error(), "whirlpool")
}

func TestSealCompressionLevel(t *testing.T) {
	plaintext := bytes.Repeat([]byte("compress me "), 4096)
	for _, level := range []zstd.EncoderLevel{zstd.SpeedFastest, zstd.SpeedBestCompression} {
		sealed := new(bytes.Buffer)
		sum, err := Seal(sealed, bytes.NewReader(plaintext), []byte("pw"), WithIterations(1), WithCompressionLevel(level))
		require.NoError(t, err, level.String())
		assert.True(t, sum.Compressed, level.String())
		assert.Less(t, sealed.Len(), len(plaintext), level.String())

		opened := new(bytes.Buffer)
		_, err = Open(opened, sealed, []byte("pw"))
		require.NoError(t, err, level.String())
		assert.Equal(t, plaintext, opened.Bytes(), level.String())
	}
}

func TestOpenGarbage(t *testing.T) {
	_, err := Open(new(bytes.Buffer), strings.NewReader("definitely not sealed"), []byte("pw"))
	assert.True(t, errors.Is(err, ErrInvalidHeader))

	_, err = Open(new(bytes.Buffer), strings.NewReader(""), []byte("pw"))
	assert.True(t, errors.Is(err, ErrInvalidHeader))
}

func TestSealDeterministicWithFixedEntropy(t *testing.T) {
	entropy := bytes.Repeat([]byte{0x42}, SaltSize+NonceSize)

	a := new(bytes.Buffer)
	_, err := Seal(a, strings.NewReader("data"), []byte("pw"), WithIterations(1), WithRandom(bytes.NewReader(entropy)))
	require.NoError(t, err)

	b := new(bytes.Buffer)
	_, err = Seal(b, strings.NewReader("data"), []byte("pw"), WithIterations(1), WithRandom(bytes.NewReader(entropy)))
	require.NoError(t, err)

	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestSealEntropyFailure(t *testing.T) {
	_, err := Seal(new(bytes.Buffer), strings.NewReader("data"), []byte("pw"), WithRandom(bytes.NewReader([]byte{1, 2, 3})))
	assert.Error(t, err)
}

func TestDeriveStreamKey(t *testing.T) {
	key, err := DeriveStreamKey(kdf.New(), []byte("password"), []byte("salt"), 1)
	require.NoError(t, err)
	assert.Len(t, key, KeySize)

	_, err = DeriveStreamKey(kdf.New(), []byte("password"), []byte("salt"), 0)
	assert.True(t, errors.Is(err, kdf.ErrInvalidParameter))
}

func TestGenerateSalt(t *testing.T) {
	a, err := GenerateSalt(nil, SaltSize)
	require.NoError(t, err)
	b, err := GenerateSalt(nil, SaltSize)
	require.NoError(t, err)

	assert.Len(t, a, SaltSize)
	assert.NotEqual(t, a, b)
}

func TestSealRejectsInvalidIterations(t *testing.T) {
	for _, n := range []int{0, -1} {
		out := new(bytes.Buffer)
		_, err := Seal(out, strings.NewReader("data"), []byte("pw"), WithIterations(n))
		assert.True(t, errors.Is(err, kdf.ErrInvalidParameter), "iterations=%d", n)
		assert.Zero(t, out.Len())
	}
}
