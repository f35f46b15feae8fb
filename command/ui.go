package command

import (
	"fmt"
	"github.com/jwalton/gchalk"
	"io"
	"time"
)

type ui struct {
	stdout  io.Writer
	stderr  io.Writer
	noColor bool
}

func newUi(stdout, stderr io.Writer) *ui {
	return &ui{
		stdout: stdout,
		stderr: stderr,
	}
}

func (ui *ui) Errorf(format string, a ...interface{}) {
	if _, err := fmt.Fprint(ui.stderr, ui.paint("#c62828", format, a...)); err != nil {
		panic(err)
	}
}

func (ui *ui) Infof(format string, a ...interface{}) {
	if _, err := fmt.Fprintf(ui.stdout, format, a...); err != nil {
		panic(err)
	}
}

func (ui *ui) Warnf(format string, a ...interface{}) {
	if _, err := fmt.Fprint(ui.stderr, ui.paint("#fdd835", format, a...)); err != nil {
		panic(err)
	}
}

func (ui *ui) Successf(format string, a ...interface{}) {
	if _, err := fmt.Fprint(ui.stdout, ui.paint("#43a047", format, a...)); err != nil {
		panic(err)
	}
}

func (ui *ui) paint(hex, format string, a ...interface{}) string {
	if ui.noColor {
		return fmt.Sprintf(format, a...)
	}
	return gchalk.WithHex(hex).Sprintf(format, a...)
}

func formatDuration(d time.Duration) string {
	scale := 100 * time.Second
	// look for the max scale that is smaller than d
	for scale > d {
		scale = scale / 10
	}
	return fmt.Sprintf("%6s", d.Round(scale/100).String())
}
