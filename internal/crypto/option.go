package crypto

import (
	"crypto/rand"
	"github.com/klauspost/compress/zstd"
	"github.com/tigerwill90/ndnkdf/kdf"
	"io"
)

// DefaultMaxIterations bounds the cost an untrusted header can impose on Open.
const DefaultMaxIterations = 50_000_000

type config struct {
	deriver       *kdf.Deriver
	iterations    int
	maxIterations int
	compression   bool
	level         zstd.EncoderLevel
	rand          io.Reader
}

func defaultConfig() *config {
	return &config{
		deriver:       kdf.New(),
		iterations:    DefaultIterations,
		maxIterations: DefaultMaxIterations,
		level:         zstd.SpeedDefault,
		rand:          rand.Reader,
	}
}

type Option func(*config)

func WithDeriver(d *kdf.Deriver) Option {
	return func(c *config) {
		if d != nil {
			c.deriver = d
		}
	}
}

// WithIterations sets the PBKDF2 iteration count used by Seal. Counts below
// one are not replaced by the default: Seal reports them as invalid.
func WithIterations(n int) Option {
	return func(c *config) {
		c.iterations = n
	}
}

func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

func WithCompression(enable bool) Option {
	return func(c *config) {
		c.compression = enable
	}
}

func WithCompressionLevel(level zstd.EncoderLevel) Option {
	return func(c *config) {
		c.compression = true
		c.level = level
	}
}

func WithRandom(r io.Reader) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}
