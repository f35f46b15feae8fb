package kdf

type config struct {
	prf PRF
}

func defaultConfig() *config {
	return &config{
		prf: HMACSHA512,
	}
}

type Option interface {
	apply(*config)
}

type implOption struct {
	f func(*config)
}

func (o *implOption) apply(c *config) {
	o.f(c)
}

func newImplOption(f func(*config)) *implOption {
	return &implOption{f: f}
}

// WithPRF selects the pseudorandom function used by the deriver. A nil PRF
// keeps the HMAC-SHA512 default.
func WithPRF(prf PRF) Option {
	return newImplOption(func(c *config) {
		if prf != nil {
			c.prf = prf
		}
	})
}
