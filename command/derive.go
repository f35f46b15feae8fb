package command

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"github.com/awnumar/memguard"
	"github.com/docker/go-units"
	"github.com/gen2brain/beeep"
	"github.com/tigerwill90/ndnkdf/internal/encoding"
	"github.com/urfave/cli/v2"
	"strconv"
	"time"
)

var errKeyMismatch = errors.New("derived key does not match the expected key")

type deriveCmd struct {
	ui     *ui
	secret SecretManager
}

func newDeriveCmd(ui *ui, secret SecretManager) *deriveCmd {
	return &deriveCmd{
		ui:     ui,
		secret: secret,
	}
}

func (s *deriveCmd) run() cli.ActionFunc {
	return func(cc *cli.Context) error {
		defer memguard.Purge()
		logger := newLogger(s.ui.stderr, cc.Bool(verboseFlag)).Named("derive")

		d, err := deriverFor(cc)
		if err != nil {
			return err
		}

		length, err := units.FromHumanSize(cc.String(lengthFlag))
		if err != nil {
			return fmt.Errorf("invalid key length: %w", err)
		}
		if strconv.IntSize < 64 && length > int64(^uint(0)>>1) {
			return fmt.Errorf("key length %d is too large for this platform", length)
		}

		salt, err := encoding.Parse(cc.String(saltEncodingFlag), cc.String(saltFlag))
		if err != nil {
			return fmt.Errorf("invalid salt: %w", err)
		}
		if len(salt) == 0 {
			s.ui.Warnf("warning: deriving with an empty salt\n")
		}

		var expected []byte
		if v := cc.String(expectedFlag); v != "" {
			expected, err = encoding.Parse(cc.String(encodingFlag), v)
			if err != nil {
				return fmt.Errorf("invalid expected key: %w", err)
			}
		}

		pwd, err := loadPassword(cc, s.secret, false)
		if err != nil {
			return err
		}

		iterations := cc.Int(iterationsFlag)
		logger.Debug("deriving key", "prf", d.PRF().Name(), "iterations", iterations, "length", units.HumanSize(float64(length)), "salt_bytes", len(salt))

		buf, destroy := pwd.Open()
		now := time.Now()
		dk, err := d.Derive(buf, salt, iterations, int(length))
		destroy()
		if err != nil {
			return fmt.Errorf("derivation failed: %w", err)
		}
		defer memguard.WipeBytes(dk)
		elapsed := time.Since(now)
		logger.Debug("key derived", "elapsed", elapsed)

		if expected != nil {
			if subtle.ConstantTimeCompare(dk, expected) != 1 {
				return errKeyMismatch
			}
			s.ui.Successf("derived key matches\n")
		} else {
			out, err := encoding.Format(cc.String(encodingFlag), dk)
			if err != nil {
				return err
			}
			if cc.String(encodingFlag) == encoding.Raw {
				s.ui.Infof("%s", out)
			} else {
				s.ui.Infof("%s\n", out)
			}
		}

		if cc.Bool(notifyFlag) {
			msg := fmt.Sprintf("%s with %d iterations in %s", d.PRF().Name(), iterations, formatDuration(elapsed))
			if err := beeep.Notify("Key derived", msg, ""); err != nil {
				logger.Warn("unable to send notification", "error", err)
			}
		}

		return nil
	}
}
