package command

import (
	"github.com/tigerwill90/ndnkdf/kdf"
	"github.com/urfave/cli/v2"
)

type prfsCmd struct {
	ui *ui
}

func newPrfsCmd(ui *ui) *prfsCmd {
	return &prfsCmd{
		ui: ui,
	}
}

func (s *prfsCmd) run() cli.ActionFunc {
	return func(cc *cli.Context) error {
		for _, prf := range kdf.PRFs() {
			s.ui.Infof("%-12s %3d bytes\n", prf.Name(), prf.Size())
		}
		return nil
	}
}
