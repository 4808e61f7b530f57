package main

import (
	"fmt"

	"epitrack/internal/utils"

	"github.com/urfave/cli/v2"
)

var nanoidCommand = &cli.Command{
	Name:  "nanoid",
	Usage: "Generate record ids for use in seed files",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "Number of IDs to generate",
			Value:   1,
		},
		&cli.IntFlag{
			Name:  "size",
			Usage: "Length of each ID",
			Value: 32,
		},
	},
	Action: func(c *cli.Context) error {
		count := c.Int("count")
		size := c.Int("size")
		for range count {
			fmt.Println(utils.NanoIDSize(size))
		}
		return nil
	},
}
