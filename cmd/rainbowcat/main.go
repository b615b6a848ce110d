package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/aybabtme/rainbowcat"
	"github.com/aybabtme/rainbowcat/internal/errutil"
	"github.com/aybabtme/rainbowcat/internal/pkg/config"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/urfave/cli"
)

const appName = "rainbowcat"

var version = "devel"

func fatalf(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, appName+": "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	env := rainbowcat.OSEnvironment(os.Stdout)
	var stdout io.Writer = os.Stdout
	if env.IsTerminal {
		stdout = colorable.NewColorable(os.Stdout)
	}
	ignoreBrokenPipe()

	app := newApp(os.Stdin, stdout, env)
	if err := app.Run(os.Args); err != nil {
		fatalf("%v", err)
	}
}

func newApp(stdin io.Reader, stdout io.Writer, env rainbowcat.Environment) *cli.App {

	frequencyFlag := cli.Float64Flag{
		Name:  "frequency, f",
		Usage: "rainbow frequency, in color cycles per 2π characters",
		Value: rainbowcat.DefaultFrequency,
	}

	spreadFlag := cli.Float64Flag{
		Name:  "spread, s",
		Usage: "how many characters it takes to move one step through the rainbow",
		Value: rainbowcat.DefaultSpread,
	}

	offsetFlag := cli.Float64Flag{
		Name:  "offset",
		Usage: "start at this position in the rainbow instead of a random one",
	}

	forceFlag := cli.BoolFlag{
		Name:  "force, F",
		Usage: "color the output even when it isn't a terminal",
	}

	colorFlag := cli.StringFlag{
		Name:  "color",
		Usage: "one of auto, always, never, truecolor or 256",
		Value: "auto",
	}

	configFlag := cli.StringFlag{
		Name:  "config",
		Usage: "path to a config file, defaults to ~/.config/rainbowcat/config.json",
	}

	app := cli.NewApp()
	app.Name = appName
	app.Version = version
	app.Usage = "concatenates files, or stdin, to stdout in rainbow colors"
	app.ArgsUsage = "[FILE]"
	app.Writer = stdout

	app.Flags = []cli.Flag{frequencyFlag, spreadFlag, offsetFlag, forceFlag, colorFlag, configFlag}

	var cfg *config.Config
	getCfg := func(*cli.Context) *config.Config { return cfg }

	app.Before = func(c *cli.Context) error {
		configFilepath := c.String(configFlag.Name)
		if configFilepath == "" {
			fp, err := config.GetDefaultConfigFilepath()
			if err != nil {
				logwarn("no default config path, using defaults: %v", err)
				cfg = &config.DefaultConfig
				return nil
			}
			configFilepath = fp
		}
		logdebug("loading config from %q", configFilepath)
		var err error
		cfg, err = config.ReadConfigFile(configFilepath, &config.DefaultConfig)
		if err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
		return nil
	}

	paint := func(w io.Writer) io.WriteCloser {
		return newPainter(w, env)
	}
	setRainbowPrinters(paint)

	app.Commands = []cli.Command{
		configCmd(stdout, getCfg),
		paletteCmd(stdout, env),
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() > 1 {
			_ = cli.ShowAppHelp(c)
			return fmt.Errorf("expected at most one FILE, got %d", c.NArg())
		}
		fileCfg := getCfg(c)

		frequency := *fileCfg.Frequency
		if flagIsSet(c, frequencyFlag) {
			frequency = c.Float64("frequency")
		}
		spread := *fileCfg.Spread
		if flagIsSet(c, spreadFlag) {
			spread = c.Float64("spread")
		}
		force := *fileCfg.Force
		if flagIsSet(c, forceFlag) {
			force = c.Bool("force")
		}
		colorSetting := *fileCfg.ColorMode
		if flagIsSet(c, colorFlag) {
			colorSetting = c.String(colorFlag.Name)
		}

		rcfg, err := rainbowcat.NewConfig(frequency, spread, force)
		if err != nil {
			return err
		}
		if flagIsSet(c, offsetFlag) {
			if rcfg, err = rcfg.WithOffset(c.Float64(offsetFlag.Name)); err != nil {
				return err
			}
		}
		mode, err := resolveColorMode(colorSetting, env, force)
		if err != nil {
			return err
		}

		src, closeSrc, err := openInput(c.Args().First(), stdin)
		if err != nil {
			return err
		}
		defer closeSrc()

		logdebug("coloring %q with frequency=%v spread=%v offset=%v mode=%v",
			c.Args().First(), rcfg.Frequency(), rcfg.Spread(), rcfg.Offset(), mode)
		return colorize(context.Background(), src, stdout, rcfg, mode)
	}
	return app
}

// colorize runs a scan, making sure the terminal's colors are reset if it
// gets interrupted.
func colorize(ctx context.Context, src io.Reader, dst io.Writer, cfg *rainbowcat.Config, mode rainbowcat.ColorMode) error {
	if mode == rainbowcat.NoColor {
		return ignoreBrokenPipeErr(rainbowcat.Scan(ctx, src, dst, cfg, mode))
	}

	sess := rainbowcat.NewSession(dst)
	defer sess.Close()
	sess.Notify(func(sig os.Signal) {
		os.Exit(exitCodeFor(sig))
	}, os.Interrupt, syscall.SIGTERM)
	defer func() {
		if r := recover(); r != nil {
			_ = sess.Reset()
			panic(r)
		}
	}()

	err := rainbowcat.Scan(ctx, src, sess.Writer(), cfg, mode)
	if errors.Is(err, rainbowcat.ErrSessionDone) {
		if sig := sess.Signal(); sig != nil {
			// the signal handler is exiting too, with the same code
			os.Exit(exitCodeFor(sig))
		}
	}
	if err == nil || errutil.IsBrokenPipe(err) {
		// the output either ends with a reset already or is gone
		sess.Settle()
	}
	return ignoreBrokenPipeErr(err)
}

func ignoreBrokenPipeErr(err error) error {
	if err != nil && errutil.IsBrokenPipe(err) {
		logdebug("output closed early: %v", err)
		return nil
	}
	return err
}

// flagIsSet reports whether the flag was given under any of its names.
func flagIsSet(c *cli.Context, f cli.Flag) bool {
	for _, name := range strings.Split(f.GetName(), ",") {
		if c.IsSet(strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

func exitCodeFor(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}

func resolveColorMode(setting string, env rainbowcat.Environment, force bool) (rainbowcat.ColorMode, error) {
	cm, err := config.GrokColorMode(setting)
	if err != nil {
		return rainbowcat.NoColor, err
	}
	switch cm {
	case config.ColorModeOff:
		return rainbowcat.NoColor, nil
	case config.ColorModeTrueColor:
		return rainbowcat.TrueColor, nil
	case config.ColorMode256:
		return rainbowcat.Color256, nil
	case config.ColorModeOn:
		return rainbowcat.DetectColorMode(env, true), nil
	default:
		return rainbowcat.DetectColorMode(env, force), nil
	}
}

func openInput(name string, stdin io.Reader) (io.Reader, func(), error) {
	if name == "" || name == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("no such file: %s", name)
		}
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logerror("closing %q: %v", name, err)
		}
	}, nil
}
