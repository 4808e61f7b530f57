package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"epitrack/internal/export"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var exportCommand = &cli.Command{
	Name:  "export",
	Usage: "Write the verification schedule to an Excel workbook",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Output file, defaults to verifications-<date>.xlsx",
		},
		&cli.BoolFlag{
			Name:  "s3",
			Usage: "Upload to EXPORT_BUCKET instead of writing a local file",
		},
	},
	Action: func(c *cli.Context) error {
		ctx := context.Background()

		cfg, pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		scheduler, err := newScheduler(newRepositories(pool), cfg)
		if err != nil {
			return err
		}

		report, err := scheduler.Report(ctx)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := export.Write(&buf, report); err != nil {
			return err
		}

		if c.Bool("s3") {
			if cfg.ExportBucket == "" {
				return fmt.Errorf("set EXPORT_BUCKET to upload exports")
			}

			s3Storage, err := newS3Storage(ctx, cfg.ExportBucket, cfg.ExportPrefix)
			if err != nil {
				return err
			}

			key, err := s3Storage.UploadFile(ctx, export.FileName(report), &buf, export.ContentType)
			if err != nil {
				return err
			}

			logrus.WithField("url", s3Storage.URL(key)).Info("export uploaded")
			return nil
		}

		out := c.String("out")
		if out == "" {
			out = export.FileName(report)
		}

		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}

		logrus.WithFields(logrus.Fields{
			"file":    out,
			"entries": len(report.Entries),
			"overdue": len(report.Overdue),
		}).Info("export written")
		return nil
	},
}
