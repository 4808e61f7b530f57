package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"epitrack/internal/inventory"
	"epitrack/internal/jobs"
	"epitrack/internal/schedule"
	"epitrack/internal/server"
	"epitrack/internal/storage"
	"epitrack/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server and the daily digest",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	logger := newLogger(config)

	repos := newRepositories(pool)

	scheduler, err := newScheduler(repos, config)
	if err != nil {
		return err
	}

	inv := inventory.NewService(repos.types, repos.equipment, repos.personnel, scheduler.Today)

	srv, err := server.New(config, logger, server.Stores{
		Equipment:     repos.equipment,
		Personnel:     repos.personnel,
		Verifications: repos.verifications,
		Types:         repos.types,
	}, scheduler, inv)
	if err != nil {
		return err
	}

	digest, err := newDigest(ctx, scheduler, config, logger)
	if err != nil {
		return err
	}

	if config.DigestCron != "" {
		if err := digest.Start(config.DigestCron); err != nil {
			return err
		}
		defer digest.Stop()
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

// newDigest uploads workbooks to the export bucket when one is configured and
// only logs the counts otherwise.
func newDigest(ctx context.Context, scheduler *schedule.Service, config *types.Config, logger *logrus.Logger) (*jobs.Digest, error) {
	var store jobs.ExportStore
	if config.ExportBucket != "" {
		s3Storage, err := newS3Storage(ctx, config.ExportBucket, config.ExportPrefix)
		if err != nil {
			return nil, err
		}
		store = s3Storage
	}

	return jobs.NewDigest(scheduler, store, config.ExportRetention, logger, scheduler.Location()), nil
}

func newS3Storage(ctx context.Context, bucket, prefix string) (*storage.S3Storage, error) {
	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	return storage.NewS3Storage(s3.NewFromConfig(awsConfig), bucket, prefix), nil
}
