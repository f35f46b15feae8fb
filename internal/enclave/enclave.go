package enclave

import (
	"github.com/awnumar/memguard"
	"sync"
)

// Enclave keeps a secret encrypted in memory until it is opened.
type Enclave struct {
	locked *memguard.Enclave
	size   int
}

// New seals buf and wipes it. An empty buf is a valid, empty secret.
func New(buf []byte) *Enclave {
	e := &Enclave{size: len(buf)}
	if len(buf) == 0 {
		return e
	}
	e.locked = memguard.NewBufferFromBytes(buf).Seal()
	return e
}

type DestroyFunc func()

func (e *Enclave) Open() ([]byte, DestroyFunc) {
	if e.locked == nil {
		return []byte{}, func() {}
	}

	buf, err := e.locked.Open()
	if err != nil {
		memguard.SafePanic(err)
	}

	var once sync.Once
	destroy := func() {
		once.Do(func() { buf.Destroy() })
	}

	return buf.Bytes(), destroy
}

func (e *Enclave) Size() int {
	return e.size
}
