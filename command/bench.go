package command

import (
	"fmt"
	"github.com/tigerwill90/ndnkdf/internal/crypto"
	"github.com/urfave/cli/v2"
	"math"
	"time"
)

type benchCmd struct {
	ui *ui
}

func newBenchCmd(ui *ui) *benchCmd {
	return &benchCmd{
		ui: ui,
	}
}

func (s *benchCmd) run() cli.ActionFunc {
	return func(cc *cli.Context) error {
		logger := newLogger(s.ui.stderr, cc.Bool(verboseFlag)).Named("bench")

		d, err := deriverFor(cc)
		if err != nil {
			return err
		}

		rounds := cc.Int(roundsFlag)
		if rounds < 1 {
			rounds = 1
		}
		iterations := cc.Int(iterationsFlag)

		password, err := crypto.GenerateSalt(nil, 16)
		if err != nil {
			return err
		}
		salt, err := crypto.GenerateSalt(nil, crypto.SaltSize)
		if err != nil {
			return err
		}

		best := time.Duration(math.MaxInt64)
		for i := 0; i < rounds; i++ {
			now := time.Now()
			if _, err := d.Derive(password, salt, iterations, d.PRF().Size()); err != nil {
				return fmt.Errorf("derivation failed: %w", err)
			}
			elapsed := time.Since(now)
			logger.Debug("round done", "round", i+1, "elapsed", elapsed)
			if elapsed < best {
				best = elapsed
			}
		}

		s.ui.Infof("PRF              : hmac-%s\n", d.PRF().Name())
		s.ui.Infof("Iterations       : %d\n", iterations)
		s.ui.Infof("Best of %-2d rounds: %s\n", rounds, formatDuration(best))
		s.ui.Infof("Per iteration    : %s\n", best/time.Duration(iterations))

		if target := cc.Duration(targetFlag); target > 0 {
			s.ui.Infof("Suggested for %s: %d iterations\n", target, suggestIterations(iterations, best, target))
		}
		return nil
	}
}

func suggestIterations(iterations int, elapsed, target time.Duration) int {
	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}
	n := float64(iterations) * float64(target) / float64(elapsed)
	if n < 1 {
		return 1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}
