package main

import (
	"github.com/urfave/cli/v2"
)

var snapshotFlag = &cli.StringFlag{
	Name:     "snapshot",
	Aliases:  []string{"s"},
	Usage:    "JSON file holding a guild object or a list of gateway events",
	Required: true,
}

func newApp() *cli.App {
	var c ctl

	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "guildctl"
	app.Usage = "Inspect cached guild state and resolve channel permissions"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "TOML config file",
			EnvVars: []string{"GUILDCTL_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warning, error or silence; overrides the config file",
		},
	}
	app.Before = c.load
	app.After = c.close
	app.Commands = []*cli.Command{
		{
			Action:    c.permissions,
			Name:      "permissions",
			Usage:     "Print the permissions of a member in a channel",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				snapshotFlag,
				&cli.StringFlag{Name: "channel", Usage: "channel id", Required: true},
				&cli.StringFlag{Name: "member", Usage: "member id", Required: true},
			},
			Category: "State",
			Description: `Loads the snapshot, then resolves the permissions of the member in the
channel from the guild role, the @everyone overwrite, the role overwrites and
the member overwrite.`,
		},
		{
			Action:      c.inspect,
			Name:        "inspect",
			Usage:       "Print the cached state of every guild as JSON",
			ArgsUsage:   " ",
			Flags:       []cli.Flag{snapshotFlag},
			Category:    "State",
			Description: `Loads the snapshot and prints the serialized guilds.`,
		},
	}

	return app
}
