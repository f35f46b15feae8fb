package crypto

import (
	"fmt"
	"github.com/awnumar/memguard"
	"github.com/klauspost/compress/zstd"
	"github.com/tigerwill90/ndnkdf/kdf"
	"io"
	"math"
	"time"
)

type Summary struct {
	BytesRead    int64
	BytesWritten int64
	Duration     time.Duration
	PRF          string
	Iterations   int
	Compressed   bool
}

// Seal writes a header followed by src encrypted with a key derived from
// password. The destination is not closed.
func Seal(dst io.Writer, src io.Reader, password []byte, opts ...Option) (*Summary, error) {
	now := time.Now()
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	prf := config.deriver.PRF()
	if _, err := kdf.LookupPRF(prf.Name()); err != nil {
		return nil, fmt.Errorf("prf %s cannot be recorded in a sealed header: %w", prf.Name(), err)
	}
	if config.iterations > 0 && uint64(config.iterations) > math.MaxUint32 {
		return nil, fmt.Errorf("iteration count %d does not fit a sealed header", config.iterations)
	}

	salt, err := GenerateSalt(config.rand, SaltSize)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(config.rand, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	// derive first so that invalid iteration counts surface as kdf errors
	key, err := DeriveStreamKey(config.deriver, password, salt, config.iterations)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(key)

	header := &Header{
		PRF:        prf.Name(),
		Iterations: uint32(config.iterations),
		Salt:       salt,
		Nonce:      nonce,
		Compressed: config.compression,
	}
	ad, err := header.MarshalBinary()
	if err != nil {
		return nil, err
	}

	cnt := &countWriter{w: dst}
	if _, err := cnt.Write(ad); err != nil {
		return nil, err
	}

	tw, err := NewEncryptWriter(key, nonce, ad, cnt)
	if err != nil {
		return nil, err
	}

	w := io.Writer(tw)
	var enc *zstd.Encoder
	if config.compression {
		enc, err = zstd.NewWriter(tw, zstd.WithEncoderLevel(config.level))
		if err != nil {
			return nil, err
		}
		w = enc
	}

	read, err := io.Copy(w, src)
	if err != nil {
		if enc != nil {
			enc.Close()
		}
		return nil, err
	}

	if enc != nil {
		if err := enc.Close(); err != nil {
			return nil, err
		}
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}

	return &Summary{
		BytesRead:    read,
		BytesWritten: cnt.n,
		Duration:     time.Since(now),
		PRF:          header.PRF,
		Iterations:   config.iterations,
		Compressed:   config.compression,
	}, nil
}

// Open reverses Seal. Only authenticated plaintext reaches dst, but when the
// stream spans several fragments the fragments preceding a forged one are
// already written when ErrAuthentication is returned.
func Open(dst io.Writer, src io.Reader, password []byte, opts ...Option) (*Summary, error) {
	now := time.Now()
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	cr := &countReader{r: src}
	header, err := ReadHeader(cr)
	if err != nil {
		return nil, err
	}

	prf, err := kdf.LookupPRF(header.PRF)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	if uint64(header.Iterations) > uint64(config.maxIterations) {
		return nil, fmt.Errorf("%w: iteration count %d exceeds the limit of %d", ErrInvalidHeader, header.Iterations, config.maxIterations)
	}

	ad, err := header.MarshalBinary()
	if err != nil {
		return nil, err
	}

	key, err := DeriveStreamKey(kdf.New(kdf.WithPRF(prf)), password, header.Salt, int(header.Iterations))
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(key)

	sr, err := NewDecryptReader(key, header.Nonce, ad, cr)
	if err != nil {
		return nil, err
	}

	r := io.Reader(sr)
	if header.Compressed {
		dec, err := zstd.NewReader(sr)
		if err != nil {
			if sr.Forged() {
				return nil, ErrAuthentication
			}
			return nil, err
		}
		defer dec.Close()
		r = dec
	}

	written, err := io.Copy(dst, r)
	if sr.Forged() {
		return nil, ErrAuthentication
	}
	if err != nil {
		return nil, err
	}

	return &Summary{
		BytesRead:    cr.n,
		BytesWritten: written,
		Duration:     time.Since(now),
		PRF:          header.PRF,
		Iterations:   int(header.Iterations),
		Compressed:   header.Compressed,
	}, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

type countReader struct {
	r io.Reader
	n int64
}

func (c *countReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
