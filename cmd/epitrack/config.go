package main

import (
	"context"
	"fmt"

	"epitrack/internal/db"
	"epitrack/internal/schedule"
	"epitrack/internal/store"
	"epitrack/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

func loadConfig() (*types.Config, error) {
	// .env is optional and never overrides the real environment
	_ = godotenv.Load()

	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	if _, err := c.Location(); err != nil {
		return nil, err
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 15
	}

	if c.UpcomingLimit <= 0 {
		c.UpcomingLimit = 5
	}

	return c, nil
}

func newLogger(config *types.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		logger.WithField("log_level", config.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}

type repositories struct {
	types         *store.EquipmentTypeRepository
	equipment     *store.EquipmentRepository
	personnel     *store.PersonnelRepository
	verifications *store.VerificationRepository
}

func newRepositories(pool *pgxpool.Pool) *repositories {
	return &repositories{
		types:         store.NewEquipmentTypeRepository(pool),
		equipment:     store.NewEquipmentRepository(pool),
		personnel:     store.NewPersonnelRepository(pool),
		verifications: store.NewVerificationRepository(pool),
	}
}

func newScheduler(repos *repositories, config *types.Config) (*schedule.Service, error) {
	loc, err := config.Location()
	if err != nil {
		return nil, err
	}

	return schedule.NewService(
		repos.verifications,
		repos.equipment,
		repos.personnel,
		schedule.SystemClock,
		loc,
		config.UpcomingLimit,
	), nil
}

// connect loads the config and opens the pool. Callers close the pool.
func connect(ctx context.Context) (*types.Config, *pgxpool.Pool, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return config, pool, nil
}
