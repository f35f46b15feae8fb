package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	Raw       = "raw"
	Hex       = "hex"
	Base64    = "base64"
	Base64URL = "base64url"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

func Kinds() []string {
	return []string{Raw, Hex, Base64, Base64URL}
}

// Parse decodes s according to kind. Raw returns the bytes of s unchanged.
func Parse(kind, s string) ([]byte, error) {
	switch normalize(kind) {
	case Raw:
		return []byte(s), nil
	case Hex:
		b, err := hex.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		return b, nil
	case Base64:
		b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("invalid base64 input: %w", err)
		}
		return b, nil
	case Base64URL:
		b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(strings.TrimSpace(s), "="))
		if err != nil {
			return nil, fmt.Errorf("invalid base64url input: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, kind)
	}
}

func Format(kind string, b []byte) (string, error) {
	switch normalize(kind) {
	case Raw:
		return string(b), nil
	case Hex:
		return hex.EncodeToString(b), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(b), nil
	case Base64URL:
		return base64.RawURLEncoding.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, kind)
	}
}

func normalize(kind string) string {
	k := strings.ToLower(strings.TrimSpace(kind))
	if k == "" {
		return Raw
	}
	return k
}
