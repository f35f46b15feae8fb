package command

import (
	"fmt"
	"github.com/tigerwill90/ndnkdf/internal/vectors"
	"github.com/urfave/cli/v2"
)

const quickIterations = 4096

type selftestCmd struct {
	ui *ui
}

func newSelftestCmd(ui *ui) *selftestCmd {
	return &selftestCmd{
		ui: ui,
	}
}

func (s *selftestCmd) run() cli.ActionFunc {
	return func(cc *cli.Context) error {
		var vs []vectors.Vector
		for _, v := range vectors.All() {
			if cc.Bool(quickFlag) && v.Iterations > quickIterations {
				continue
			}
			vs = append(vs, v)
		}

		failed := 0
		for _, r := range vectors.Check(vs) {
			if r.Ok() {
				s.ui.Successf("ok   %s\n", r.Vector.Name)
				continue
			}
			failed++
			s.ui.Errorf("FAIL %s: %v\n", r.Vector.Name, r.Err)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d vectors failed", failed, len(vs))
		}
		s.ui.Infof("%d vectors passed\n", len(vs))
		return nil
	}
}
