package crypto

import (
	"bytes"
	"errors"
	"fmt"
	"google.golang.org/protobuf/encoding/protowire"
	"io"
	"math"
)

const (
	headerVersion = 1

	// maxHeaderBody bounds the body length read from an untrusted prefix.
	maxHeaderBody = 1024

	flagCompressed = 1 << 0
)

const (
	fieldPRF        protowire.Number = 1
	fieldIterations protowire.Number = 2
	fieldFlags      protowire.Number = 3
	fieldSalt       protowire.Number = 4
	fieldNonce      protowire.Number = 5
)

var (
	headerMagic = [4]byte{'N', 'D', 'K', 'F'}

	ErrInvalidHeader = errors.New("invalid sealed header")
)

// Header records everything needed to derive the stream key again. Its
// encoding is authenticated as associated data of the stream.
//
// On the wire a header is the magic, a version byte, the varint length of
// the body and the body itself: protobuf fields 1 to 5 (prf, iterations,
// flags, salt, nonce), each present exactly once and in that order.
type Header struct {
	PRF        string
	Iterations uint32
	Salt       []byte
	Nonce      []byte
	Compressed bool
}

func (h *Header) MarshalBinary() ([]byte, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	body := h.appendBody(nil)
	b := make([]byte, 0, len(headerMagic)+1+protowire.SizeVarint(uint64(len(body)))+len(body))
	b = append(b, headerMagic[:]...)
	b = append(b, headerVersion)
	b = protowire.AppendVarint(b, uint64(len(body)))
	return append(b, body...), nil
}

func (h *Header) validate() error {
	if len(h.PRF) == 0 || len(h.PRF) > math.MaxUint8 {
		return fmt.Errorf("%w: prf name must be 1 to %d bytes", ErrInvalidHeader, math.MaxUint8)
	}
	if h.Iterations == 0 {
		return fmt.Errorf("%w: iteration count must be positive", ErrInvalidHeader)
	}
	if len(h.Salt) > math.MaxUint8 {
		return fmt.Errorf("%w: salt exceeds %d bytes", ErrInvalidHeader, math.MaxUint8)
	}
	if len(h.Nonce) != NonceSize {
		return fmt.Errorf("%w: nonce must be %d bytes", ErrInvalidHeader, NonceSize)
	}
	return nil
}

func (h *Header) appendBody(b []byte) []byte {
	var flags uint64
	if h.Compressed {
		flags |= flagCompressed
	}

	b = protowire.AppendTag(b, fieldPRF, protowire.BytesType)
	b = protowire.AppendString(b, h.PRF)
	b = protowire.AppendTag(b, fieldIterations, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(h.Iterations))
	b = protowire.AppendTag(b, fieldFlags, protowire.VarintType)
	b = protowire.AppendVarint(b, flags)
	b = protowire.AppendTag(b, fieldSalt, protowire.BytesType)
	b = protowire.AppendBytes(b, h.Salt)
	b = protowire.AppendTag(b, fieldNonce, protowire.BytesType)
	return protowire.AppendBytes(b, h.Nonce)
}

// ReadHeader consumes a header from r, leaving r at the first ciphertext byte.
func ReadHeader(r io.Reader) (*Header, error) {
	var prefix [5]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if !bytes.Equal(prefix[:4], headerMagic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidHeader)
	}
	if prefix[4] != headerVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidHeader, prefix[4])
	}

	size, err := readBodySize(r)
	if err != nil {
		return nil, err
	}
	body, err := readN(r, size)
	if err != nil {
		return nil, err
	}

	return parseBody(body)
}

func parseBody(body []byte) (*Header, error) {
	h := new(Header)
	var flags uint64

	for b := body; len(b) > 0; {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldPRF && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			h.PRF = string(v)
		case num == fieldIterations && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			if v > math.MaxUint32 {
				return nil, fmt.Errorf("%w: iteration count %d overflows", ErrInvalidHeader, v)
			}
			h.Iterations = uint32(v)
		case num == fieldFlags && typ == protowire.VarintType:
			flags, n = protowire.ConsumeVarint(b)
		case num == fieldSalt && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			if len(v) > 0 {
				h.Salt = append([]byte(nil), v...)
			}
		case num == fieldNonce && typ == protowire.BytesType:
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			h.Nonce = append([]byte(nil), v...)
		default:
			return nil, fmt.Errorf("%w: unexpected field %d of wire type %d", ErrInvalidHeader, num, typ)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: field %d: %v", ErrInvalidHeader, num, protowire.ParseError(n))
		}
		b = b[n:]
	}

	if flags&^flagCompressed != 0 {
		return nil, fmt.Errorf("%w: unknown flags %#x", ErrInvalidHeader, flags)
	}
	h.Compressed = flags&flagCompressed != 0

	if err := h.validate(); err != nil {
		return nil, err
	}

	// a single encoding per header, so the associated data cannot be reshaped
	if !bytes.Equal(h.appendBody(nil), body) {
		return nil, fmt.Errorf("%w: non canonical encoding", ErrInvalidHeader)
	}

	return h, nil
}

func readBodySize(r io.Reader) (int, error) {
	var buf [3]byte
	for i := range buf {
		if _, err := io.ReadFull(r, buf[i:i+1]); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		if buf[i] < 0x80 {
			v, n := protowire.ConsumeVarint(buf[:i+1])
			if n < 0 {
				return 0, fmt.Errorf("%w: %v", ErrInvalidHeader, protowire.ParseError(n))
			}
			if n != protowire.SizeVarint(v) {
				return 0, fmt.Errorf("%w: non canonical body length", ErrInvalidHeader)
			}
			if v > maxHeaderBody {
				return 0, fmt.Errorf("%w: body of %d bytes exceeds %d", ErrInvalidHeader, v, maxHeaderBody)
			}
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("%w: body length overflows", ErrInvalidHeader)
}

func readN(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	return b, nil
}
