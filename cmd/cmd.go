package cmd

import (
	"os"

	"github.com/starshine-sys/guildmirror/cmd/replay"
	"github.com/starshine-sys/guildmirror/common"
	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:    "guildmirror",
	Usage:   "Gateway session cache",
	Version: common.Version(),

	Commands: []*cli.Command{
		replay.Command,
	},
}

func Run() error {
	return app.Run(os.Args)
}
