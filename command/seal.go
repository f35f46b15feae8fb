package command

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/awnumar/memguard"
	"github.com/docker/go-units"
	"github.com/klauspost/compress/zstd"
	"github.com/tigerwill90/ndnkdf/internal/crypto"
	"github.com/urfave/cli/v2"
	"io"
	"os"
)

type sealCmd struct {
	ui     *ui
	secret SecretManager
	stdin  io.Reader
}

func newSealCmd(ui *ui, secret SecretManager, stdin io.Reader) *sealCmd {
	return &sealCmd{
		ui:     ui,
		secret: secret,
		stdin:  stdin,
	}
}

func (s *sealCmd) run() cli.ActionFunc {
	return func(cc *cli.Context) error {
		defer memguard.Purge()
		logger := newLogger(s.ui.stderr, cc.Bool(verboseFlag)).Named("seal")

		d, err := deriverFor(cc)
		if err != nil {
			return err
		}

		opts := []crypto.Option{
			crypto.WithDeriver(d),
			crypto.WithIterations(cc.Int(iterationsFlag)),
			crypto.WithCompression(cc.Bool(compressFlag)),
		}
		if cc.IsSet(levelFlag) {
			ok, level := zstd.EncoderLevelFromString(cc.String(levelFlag))
			if !ok {
				return fmt.Errorf("unknown compression level %q", cc.String(levelFlag))
			}
			opts = append(opts, crypto.WithCompressionLevel(level))
		}

		pwd, err := loadPassword(cc, s.secret, true)
		if err != nil {
			return err
		}

		return withStreams(cc, s.stdin, s.ui.stdout, func(r io.Reader, w io.Writer) error {
			buf, destroy := pwd.Open()
			defer destroy()

			sum, err := crypto.Seal(w, r, buf, opts...)
			if err != nil {
				return fmt.Errorf("seal failed: %w", err)
			}

			logger.Debug("stream sealed",
				"prf", sum.PRF,
				"iterations", sum.Iterations,
				"compressed", sum.Compressed,
				"read", units.HumanSize(float64(sum.BytesRead)),
				"written", units.HumanSize(float64(sum.BytesWritten)),
				"elapsed", sum.Duration,
			)
			return nil
		})
	}
}

type openCmd struct {
	ui     *ui
	secret SecretManager
	stdin  io.Reader
}

func newOpenCmd(ui *ui, secret SecretManager, stdin io.Reader) *openCmd {
	return &openCmd{
		ui:     ui,
		secret: secret,
		stdin:  stdin,
	}
}

func (s *openCmd) run() cli.ActionFunc {
	return func(cc *cli.Context) error {
		defer memguard.Purge()
		logger := newLogger(s.ui.stderr, cc.Bool(verboseFlag)).Named("open")

		pwd, err := loadPassword(cc, s.secret, false)
		if err != nil {
			return err
		}

		return withStreams(cc, s.stdin, s.ui.stdout, func(r io.Reader, w io.Writer) error {
			buf, destroy := pwd.Open()
			defer destroy()

			sum, err := crypto.Open(w, r, buf, crypto.WithMaxIterations(cc.Int(maxIterationsFlag)))
			if err != nil {
				if errors.Is(err, crypto.ErrAuthentication) {
					return err
				}
				return fmt.Errorf("open failed: %w", err)
			}

			logger.Debug("stream opened",
				"prf", sum.PRF,
				"iterations", sum.Iterations,
				"compressed", sum.Compressed,
				"read", units.HumanSize(float64(sum.BytesRead)),
				"written", units.HumanSize(float64(sum.BytesWritten)),
				"elapsed", sum.Duration,
			)
			return nil
		})
	}
}

// withStreams resolves --in and --out, falling back to stdin and stdout.
func withStreams(cc *cli.Context, stdin io.Reader, stdout io.Writer, fn func(r io.Reader, w io.Writer) error) error {
	r := stdin
	if path := cc.Path(inFlag); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("unable to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	if path := cc.Path(outFlag); path != "" {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("unable to create output: %w", err)
		}
		bw := bufio.NewWriter(f)
		if err := fn(bufio.NewReader(r), bw); err != nil {
			f.Close()
			return err
		}
		if err := bw.Flush(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	bw := bufio.NewWriter(stdout)
	if err := fn(bufio.NewReader(r), bw); err != nil {
		return err
	}
	return bw.Flush()
}
