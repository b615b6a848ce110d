package main

import (
	"fmt"
	"io"

	"github.com/aybabtme/rainbowcat"
	"github.com/urfave/cli"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// newPainter colors w with the default rainbow, even when w isn't a terminal.
// NO_COLOR and FORCE_COLOR=0 still turn it off.
func newPainter(w io.Writer, env rainbowcat.Environment) io.WriteCloser {
	mode := rainbowcat.DetectColorMode(env, true)
	pw, err := rainbowcat.NewWriter(w, rainbowcat.DefaultConfig(), mode)
	if err != nil {
		logwarn("can't color help output: %v", err)
		return nopCloser{w}
	}
	return pw
}

var printHelp = cli.HelpPrinter

// setRainbowPrinters routes the help and version output through paint.
func setRainbowPrinters(paint func(io.Writer) io.WriteCloser) {
	cli.HelpPrinter = func(w io.Writer, templ string, data interface{}) {
		pw := paint(w)
		defer pw.Close()
		printHelp(pw, templ, data)
	}
	cli.VersionPrinter = func(c *cli.Context) {
		pw := paint(c.App.Writer)
		defer pw.Close()
		fmt.Fprintf(pw, "%v version %v\n", c.App.Name, c.App.Version)
	}
}
