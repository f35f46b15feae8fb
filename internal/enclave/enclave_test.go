package enclave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSealAndOpen(t *testing.T) {
	secret := []byte("hunter2")
	e := New(secret)

	assert.Equal(t, make([]byte, 7), secret)
	assert.Equal(t, 7, e.Size())

	buf, destroy := e.Open()
	assert.Equal(t, []byte("hunter2"), buf)
	destroy()
	destroy()

	again, destroy := e.Open()
	defer destroy()
	assert.Equal(t, []byte("hunter2"), again)
}

func TestEmptySecret(t *testing.T) {
	e := New(nil)
	assert.Equal(t, 0, e.Size())

	buf, destroy := e.Open()
	defer destroy()
	assert.Empty(t, buf)
}
