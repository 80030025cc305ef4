// Package email provides email sending functionality.
package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
)

// Job is one queued email.
type Job struct {
	Reference string
	Email     adapter.SendEmailInput
	Attempts  int
}

// Worker sends queued emails in the background, retrying temporary failures.
type Worker struct {
	sender      adapter.EmailSender
	jobs        chan *Job
	maxAttempts int
	retryDelay  time.Duration
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	QueueSize   int
	MaxAttempts int
	RetryDelay  time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		QueueSize:   100,
		MaxAttempts: 3,
		RetryDelay:  5 * time.Second,
	}
}

// NewWorker creates a new email worker.
func NewWorker(sender adapter.EmailSender, config WorkerConfig) *Worker {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &Worker{
		sender:      sender,
		jobs:        make(chan *Job, config.QueueSize),
		maxAttempts: config.MaxAttempts,
		retryDelay:  config.RetryDelay,
	}
}

// ErrQueueFull is returned by Enqueue when the queue has no room left.
var ErrQueueFull = errors.New("email queue is full")

// Enqueue adds a job without blocking.
func (w *Worker) Enqueue(job *Job) error {
	select {
	case w.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"max_attempts", w.maxAttempts,
		"retry_delay", w.retryDelay,
	)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down", "pending", len(w.jobs))
			return
		case job := <-w.jobs:
			w.process(ctx, job)
		}
	}
}

// ProcessNow drains the queue synchronously (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	for {
		select {
		case job := <-w.jobs:
			w.process(ctx, job)
		default:
			return
		}
	}
}

// process sends a job, retrying temporary failures up to maxAttempts.
func (w *Worker) process(ctx context.Context, job *Job) {
	logger := slog.With(
		"reference", job.Reference,
		"recipient", job.Email.To,
	)

	for {
		job.Attempts++
		result, err := w.sender.Send(ctx, job.Email)
		if err == nil {
			logger.Info("Email sent successfully", "resend_id", result.ResendID, "attempts", job.Attempts)
			return
		}

		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure
		if permanent || job.Attempts >= w.maxAttempts {
			logger.Warn("Email permanently failed",
				"attempts", job.Attempts,
				"error", err,
			)
			return
		}

		logger.Info("Email scheduled for retry", "attempts", job.Attempts, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryDelay):
		}
	}
}
