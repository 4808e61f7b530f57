package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "epitrack",
		Usage: "EPI inventory and verification tracking for fire stations",
		Commands: []*cli.Command{
			serveCommand,
			seedCommand,
			agendaCommand,
			exportCommand,
			nanoidCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
