package command

import (
	"fmt"
	"github.com/docker/go-units"
	"github.com/tigerwill90/ndnkdf/internal/crypto"
	"github.com/tigerwill90/ndnkdf/internal/encoding"
	"github.com/urfave/cli/v2"
)

const maxSaltSize = 1 << 20

type saltCmd struct {
	ui *ui
}

func newSaltCmd(ui *ui) *saltCmd {
	return &saltCmd{
		ui: ui,
	}
}

func (s *saltCmd) run() cli.ActionFunc {
	return func(cc *cli.Context) error {
		size, err := units.FromHumanSize(cc.String(sizeFlag))
		if err != nil {
			return fmt.Errorf("invalid salt size: %w", err)
		}
		if size < 1 || size > maxSaltSize {
			return fmt.Errorf("salt size must be between 1 byte and %s", units.BytesSize(maxSaltSize))
		}

		salt, err := crypto.GenerateSalt(nil, int(size))
		if err != nil {
			return err
		}

		out, err := encoding.Format(cc.String(encodingFlag), salt)
		if err != nil {
			return err
		}
		s.ui.Infof("%s\n", out)
		return nil
	}
}
