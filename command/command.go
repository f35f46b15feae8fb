package command

import (
	"errors"
	"github.com/klauspost/compress/zstd"
	"github.com/tigerwill90/ndnkdf/internal/crypto"
	"github.com/tigerwill90/ndnkdf/internal/encoding"
	"github.com/tigerwill90/ndnkdf/kdf"
	"github.com/urfave/cli/v2"
	"io"
	"os"
	"strings"
	"time"
)

const defaultLength = "64b"

func Run(args []string) int {
	return run(args, os.Stdin, os.Stdout, os.Stderr, Password(readSecret))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, secret SecretManager) int {
	ui := newUi(stdout, stderr)
	app := &cli.App{
		Name:        "ndnkdf",
		Usage:       "derive keys with PBKDF2",
		Description: "Password based key derivation (PBKDF2, HMAC-SHA512 by default)",
		Version:     "v0.1.0",
		Writer:      stdout,
		ErrWriter:   stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  verboseFlag,
				Usage: "log derivation parameters and timings to stderr",
			},
			&cli.BoolFlag{
				Name:  noColorFlag,
				Usage: "disable colored output",
			},
		},
		Before: func(cc *cli.Context) error {
			ui.noColor = cc.Bool(noColorFlag)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:    "derive",
				Aliases: []string{"d"},
				Usage:   "derive a key from a password and a salt",
				Flags: append(passwordFlags(), prfFlagDef(), iterationsFlagDef(),
					&cli.StringFlag{
						Name:  saltFlag,
						Usage: "salt, decoded with --salt-encoding",
					},
					&cli.StringFlag{
						Name:  saltEncodingFlag,
						Value: encoding.Raw,
						Usage: "salt encoding: " + strings.Join(encoding.Kinds(), ", "),
					},
					&cli.StringFlag{
						Name:    lengthFlag,
						Aliases: []string{"l"},
						Value:   defaultLength,
						Usage:   "derived key length",
					},
					&cli.StringFlag{
						Name:  encodingFlag,
						Value: encoding.Hex,
						Usage: "output encoding: " + strings.Join(encoding.Kinds(), ", "),
					},
					&cli.StringFlag{
						Name:  expectedFlag,
						Usage: "compare the derived key with this value (in --encoding) instead of printing it",
					},
					&cli.BoolFlag{
						Name:  notifyFlag,
						Usage: "send a desktop notification when done",
					},
				),
				Action: newDeriveCmd(ui, secret).run(),
			},
			{
				Name:  "salt",
				Usage: "generate a random salt",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  sizeFlag,
						Value: "32b",
					},
					&cli.StringFlag{
						Name:  encodingFlag,
						Value: encoding.Hex,
					},
				},
				Action: newSaltCmd(ui).run(),
			},
			{
				Name:  "bench",
				Usage: "measure the derivation cost of an iteration count",
				Flags: []cli.Flag{
					prfFlagDef(),
					iterationsFlagDef(),
					&cli.DurationFlag{
						Name:  targetFlag,
						Value: 500 * time.Millisecond,
						Usage: "suggest an iteration count for this derivation time",
					},
					&cli.IntFlag{
						Name:  roundsFlag,
						Value: 3,
					},
				},
				Action: newBenchCmd(ui).run(),
			},
			{
				Name:  "selftest",
				Usage: "check the published PBKDF2 test vectors",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  quickFlag,
						Usage: "skip vectors above 4096 iterations",
					},
				},
				Action: newSelftestCmd(ui).run(),
			},
			{
				Name:  "seal",
				Usage: "encrypt a stream with a password derived key",
				Flags: append(passwordFlags(), prfFlagDef(), iterationsFlagDef(),
					&cli.BoolFlag{
						Name: compressFlag,
					},
					&cli.StringFlag{
						Name:  levelFlag,
						Value: zstd.SpeedDefault.String(),
						Usage: "compression level: fastest, default, better or best (implies --compress)",
					},
					&cli.PathFlag{
						Name:  inFlag,
						Usage: "read from file instead of stdin",
					},
					&cli.PathFlag{
						Name:  outFlag,
						Usage: "write to file instead of stdout",
					},
				),
				Action: newSealCmd(ui, secret, stdin).run(),
			},
			{
				Name:  "open",
				Usage: "decrypt a sealed stream",
				Flags: append(passwordFlags(),
					&cli.IntFlag{
						Name:  maxIterationsFlag,
						Value: crypto.DefaultMaxIterations,
					},
					&cli.PathFlag{
						Name:  inFlag,
						Usage: "read from file instead of stdin",
					},
					&cli.PathFlag{
						Name:  outFlag,
						Usage: "write to file instead of stdout",
					},
				),
				Action: newOpenCmd(ui, secret, stdin).run(),
			},
			{
				Name:   "prfs",
				Usage:  "list the available pseudorandom functions",
				Action: newPrfsCmd(ui).run(),
			},
		},
	}

	if err := app.Run(args); err != nil {
		ui.Errorf("%s\n", err)
		if errors.Is(err, errKeyMismatch) {
			return 2
		}
		return 1
	}

	return 0
}

func passwordFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    passwordFlag,
			Aliases: []string{"pwd"},
			EnvVars: []string{envPassword},
		},
		&cli.PathFlag{
			Name:      passwordFileFlag,
			TakesFile: true,
		},
	}
}

func prfFlagDef() cli.Flag {
	return &cli.StringFlag{
		Name:    prfFlag,
		Value:   kdf.HMACSHA512.Name(),
		EnvVars: []string{envPRF},
	}
}

func iterationsFlagDef() cli.Flag {
	return &cli.IntFlag{
		Name:    iterationsFlag,
		Aliases: []string{"i"},
		Value:   crypto.DefaultIterations,
		EnvVars: []string{envIterations},
	}
}

func deriverFor(cc *cli.Context) (*kdf.Deriver, error) {
	prf, err := kdf.LookupPRF(cc.String(prfFlag))
	if err != nil {
		return nil, err
	}
	return kdf.New(kdf.WithPRF(prf)), nil
}
