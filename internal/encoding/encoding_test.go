package encoding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		kind  string
		input string
		want  []byte
	}{
		{Raw, "salt", []byte("salt")},
		{"", "salt", []byte("salt")},
		{Hex, "73616c74", []byte("salt")},
		{"HEX", " 73616C74\n", []byte("salt")},
		{Base64, "c2FsdA==", []byte("salt")},
		{Base64URL, "-_8", []byte{0xfb, 0xff}},
		{Base64URL, "-_8=", []byte{0xfb, 0xff}},
		{Hex, "", []byte{}},
	}

	for _, tc := range cases {
		t.Run(tc.kind+"/"+tc.input, func(t *testing.T) {
			got, err := Parse(tc.kind, tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(Hex, "zz")
	assert.Error(t, err)

	_, err = Parse(Base64, "***")
	assert.Error(t, err)

	_, err = Parse("rot13", "salt")
	assert.True(t, errors.Is(err, ErrUnknownEncoding))
}

func TestFormat(t *testing.T) {
	b := []byte{0xfb, 0xff, 0x00}
	cases := map[string]string{
		Raw:       string(b),
		Hex:       "fbff00",
		Base64:    "+/8A",
		Base64URL: "-_8A",
	}

	for kind, want := range cases {
		got, err := Format(kind, b)
		require.NoError(t, err)
		assert.Equal(t, want, got, kind)

		back, err := Parse(kind, got)
		require.NoError(t, err)
		assert.Equal(t, b, back, kind)
	}

	_, err := Format("rot13", b)
	assert.True(t, errors.Is(err, ErrUnknownEncoding))
}
