package jobs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"epitrack/internal/export"
	"epitrack/internal/schedule"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type ReportSource interface {
	Report(ctx context.Context) (*schedule.Report, error)
}

type ExportStore interface {
	UploadFile(ctx context.Context, name string, body io.Reader, contentType string) (string, error)
	ListFiles(ctx context.Context, namePrefix string) ([]string, error)
	DeleteFile(ctx context.Context, key string) error
}

// Digest summarises the schedule on a cron spec and, when a store is set,
// publishes the workbook and prunes the oldest ones.
type Digest struct {
	source  ReportSource
	store   ExportStore
	keep    int
	logger  *logrus.Logger
	timeout time.Duration

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

// NewDigest evaluates cron specs in loc. store may be nil. Only the newest
// keep workbooks are kept in the store; keep <= 0 keeps them all.
func NewDigest(source ReportSource, store ExportStore, keep int, logger *logrus.Logger, loc *time.Location) *Digest {
	if loc == nil {
		loc = time.Local
	}

	return &Digest{
		source:  source,
		store:   store,
		keep:    keep,
		logger:  logger,
		timeout: 2 * time.Minute,
		cron:    cron.New(cron.WithLocation(loc)),
	}
}

// Start registers the digest on spec and starts the scheduler.
func (d *Digest) Start(spec string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("digest already running")
	}

	_, err := d.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if _, err := d.Run(ctx); err != nil {
			d.logger.WithError(err).Error("digest run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}

	d.cron.Start()
	d.running = true

	d.logger.WithField("schedule", spec).Info("digest scheduled")
	return nil
}

// Stop waits for a running digest to finish.
func (d *Digest) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return
	}

	<-d.cron.Stop().Done()
	d.running = false
}

// Run builds one report, logs its counts and uploads the workbook. It returns
// the uploaded key, empty without a store. A failed prune is only logged.
func (d *Digest) Run(ctx context.Context) (string, error) {
	report, err := d.source.Report(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to build report: %w", err)
	}

	entry := d.logger.WithFields(logrus.Fields{
		"date":      report.Today.String(),
		"total":     len(report.Entries),
		"overdue":   len(report.Overdue),
		"due_today": len(report.DueToday),
	})
	entry.Info("verification digest")

	if report.Skipped > 0 {
		d.logger.WithField("skipped", report.Skipped).Warn("verifications without a valid date were left out")
	}

	if d.store == nil {
		return "", nil
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, report); err != nil {
		return "", fmt.Errorf("failed to render workbook: %w", err)
	}

	key, err := d.store.UploadFile(ctx, export.FileName(report), &buf, export.ContentType)
	if err != nil {
		return "", err
	}

	entry.WithField("key", key).Info("digest workbook uploaded")

	if err := d.prune(ctx); err != nil {
		d.logger.WithError(err).Warn("failed to prune old digest workbooks")
	}

	return key, nil
}

// prune deletes all but the newest keep workbooks. Names carry the report
// day so the sorted listing is oldest first.
func (d *Digest) prune(ctx context.Context) error {
	if d.keep <= 0 {
		return nil
	}

	keys, err := d.store.ListFiles(ctx, export.FilePrefix)
	if err != nil {
		return err
	}
	if len(keys) <= d.keep {
		return nil
	}

	for _, key := range keys[:len(keys)-d.keep] {
		if err := d.store.DeleteFile(ctx, key); err != nil {
			return err
		}
		d.logger.WithField("key", key).Debug("old digest workbook deleted")
	}

	return nil
}
