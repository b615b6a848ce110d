package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aybabtme/rainbowcat/internal/pkg/config"
	"github.com/urfave/cli"
)

const (
	configCmdName = "config"
)

func configCmd(
	stdout io.Writer,
	getCfg func(cctx *cli.Context) *config.Config,
) cli.Command {

	printJSON := func(cfg *config.Config) error {
		out, err := json.MarshalIndent(cfg, "", "   ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%s\n", out)
		return err
	}

	return cli.Command{
		Name:      configCmdName,
		ShortName: "cfg",
		Usage:     "Manipulate rainbowcat's configuration.",
		Subcommands: []cli.Command{
			{
				Name:  "reset-to-defaults",
				Usage: "overwrite the config file with the defaults",
				Action: func(cctx *cli.Context) error {
					fp := cctx.GlobalString("config")
					if fp == "" {
						var err error
						fp, err = config.GetDefaultConfigFilepath()
						if err != nil {
							return fmt.Errorf("getting default config filepath: %v", err)
						}
					}
					if err := config.WriteConfigFile(fp, &config.DefaultConfig); err != nil {
						return fmt.Errorf("writing default config to filepath: %v", err)
					}
					loginfo("reset config to defaults: %v", fp)
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "print the config in use",
				Action: func(cctx *cli.Context) error {
					return printJSON(getCfg(cctx))
				},
			},
			{
				Name:  "show-defaults",
				Usage: "print the default config",
				Action: func(cctx *cli.Context) error {
					return printJSON(&config.DefaultConfig)
				},
			},
		},
	}
}
