package main

import (
	"context"
	"fmt"

	"epitrack/internal/seed"
	"epitrack/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Create the schema and seed equipment types and personnel",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "demo",
			Usage: "Also seed sample equipment and verifications around today",
		},
	},
	Action: func(c *cli.Context) error {
		ctx := context.Background()

		cfg, pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		if err := store.EnsureSchema(ctx, pool, cfg.DatabaseSchema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}

		repos := newRepositories(pool)

		logrus.Info("Seeding equipment types...")
		if err := seed.SeedEquipmentTypes(ctx, repos.types); err != nil {
			return fmt.Errorf("failed to seed equipment types: %w", err)
		}

		logrus.Info("Seeding personnel...")
		if err := seed.SeedPersonnel(ctx, repos.personnel); err != nil {
			return fmt.Errorf("failed to seed personnel: %w", err)
		}

		if c.Bool("demo") {
			scheduler, err := newScheduler(repos, cfg)
			if err != nil {
				return err
			}

			logrus.Info("Seeding demo equipment and verifications...")
			if err := seed.SeedDemo(ctx, repos.equipment, repos.verifications, scheduler.Today()); err != nil {
				return fmt.Errorf("failed to seed demo data: %w", err)
			}
		}

		logrus.Info("Seed complete")

		return nil
	},
}
