package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"epitrack/internal/schedule"
	"epitrack/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var agendaCommand = &cli.Command{
	Name:  "agenda",
	Usage: "Print the verifications for a day with the overdue and upcoming lists",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "date",
			Aliases: []string{"d"},
			Usage:   "Day to show (YYYY-MM-DD or DD/MM/YYYY), today when empty",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "Dump the agenda structure instead of tables",
		},
	},
	Action: func(c *cli.Context) error {
		ctx := context.Background()

		var selected types.Date
		if raw := c.String("date"); raw != "" {
			d, err := types.ParseDate(raw)
			if err != nil {
				return err
			}
			selected = d
		}

		cfg, pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		scheduler, err := newScheduler(newRepositories(pool), cfg)
		if err != nil {
			return err
		}

		agenda, err := scheduler.Agenda(ctx, selected)
		if err != nil {
			return err
		}

		if c.Bool("raw") {
			pp.Println(agenda)
			return nil
		}

		printEntries(fmt.Sprintf("Vérifications du %s", agenda.Selected.Format("02/01/2006")), agenda.OnDate)
		printEntries("En retard", agenda.Overdue)
		printEntries("Prochaines vérifications", agenda.Upcoming)

		if agenda.Skipped > 0 {
			fmt.Printf("%d vérification(s) sans date valide ignorée(s)\n", agenda.Skipped)
		}

		return nil
	},
}

func printEntries(title string, entries []schedule.Entry) {
	fmt.Printf("%s (%d)\n", title, len(entries))
	if len(entries) == 0 {
		fmt.Println()
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			e.ScheduledDate.Format("02/01/2006"),
			e.State.Label(),
			e.EquipmentName,
			e.SerialNumber,
			e.VerificationType,
			e.AssignedTo,
		)
	}
	_ = tw.Flush()
	fmt.Println()
}
