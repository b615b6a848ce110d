package main

import (
	"fmt"
	"io"

	"github.com/aybabtme/rainbowcat"
	"github.com/aybabtme/rainbowcat/pkg/rainbow"
	"github.com/urfave/cli"
)

func paletteCmd(stdout io.Writer, env rainbowcat.Environment) cli.Command {
	stepFlag := cli.IntFlag{
		Name:  "step",
		Usage: "print every n-th entry of the color table",
		Value: 64,
	}
	return cli.Command{
		Name:  "palette",
		Usage: "Print the rainbow's color table.",
		Flags: []cli.Flag{stepFlag},
		Action: func(cctx *cli.Context) error {
			step := cctx.Int(stepFlag.Name)
			if step <= 0 || step > rainbow.TableSize {
				return fmt.Errorf("--%s must be between 1 and %d, got %d", stepFlag.Name, rainbow.TableSize, step)
			}
			mode := rainbowcat.DetectColorMode(env, false)
			return printPalette(stdout, rainbow.Default(), step, mode)
		},
	}
}

func printPalette(w io.Writer, cache *rainbow.Cache, step int, mode rainbowcat.ColorMode) error {
	var err error
	printf := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	printf("%5s  %-7s  %3s %3s %3s  %5s  %3s\n", "index", "hex", "r", "g", "b", "hue", "256")
	for idx := 0; idx < rainbow.TableSize; idx += step {
		c := cache.Color(idx)
		hue, _, _ := c.Colorful().Hsl()
		switch mode {
		case rainbowcat.TrueColor:
			printf("%s", cache.TrueColor(idx))
		case rainbowcat.Color256:
			printf("%s", cache.Palette256(idx))
		}
		printf("%5d  %-7s  %3d %3d %3d  %5.1f  %3d", idx, c.Hex(), c.R, c.G, c.B, hue, cache.Palette256Code(idx))
		if mode != rainbowcat.NoColor {
			printf("%s", rainbowcat.ResetSequence)
		}
		printf("\n")
	}
	return err
}
