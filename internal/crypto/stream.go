package crypto

import (
	"errors"
	"github.com/secure-io/sio-go"
	"io"
)

// NonceSize is the sio AES-256-GCM stream nonce size.
const NonceSize = 8

var ErrAuthentication = errors.New("authentication failed: wrong password or corrupted data")

func NewEncryptWriter(key, nonce, associatedData []byte, w io.Writer) (io.WriteCloser, error) {
	s, err := sio.AES_256_GCM.Stream(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != s.NonceSize() {
		return nil, errors.New("invalid stream nonce size")
	}

	// Close must not close the destination
	return s.EncryptWriter(nopCloser{w}, nonce, associatedData), nil
}

func NewDecryptReader(key, nonce, associatedData []byte, r io.Reader) (*StreamReader, error) {
	s, err := sio.AES_256_GCM.Stream(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != s.NonceSize() {
		return nil, errors.New("invalid stream nonce size")
	}

	return &StreamReader{r: s.DecryptReader(r, nonce, associatedData)}, nil
}

// StreamReader remembers whether the underlying stream failed authentication,
// even when a wrapping reader hides the error.
type StreamReader struct {
	r      io.Reader
	forged bool
}

func (r *StreamReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if errors.Is(err, sio.NotAuthentic) {
		r.forged = true
		return n, ErrAuthentication
	}
	return n, err
}

func (r *StreamReader) Forged() bool {
	return r.forged
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
