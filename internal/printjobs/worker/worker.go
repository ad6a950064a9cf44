// Package worker consumes ticket print tasks from the queue, renders the
// ticket and tracks the job lifecycle.
package worker

import (
	"context"
	"fmt"

	"leadcapture_backend/internal/printjobs/queue"
	"leadcapture_backend/internal/printjobs/repository"
	"leadcapture_backend/platform/config"
	"leadcapture_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	jobs     *repository.Repository
	delivery TicketDelivery
	log      *logger.Logger
}

func NewWorker(cfg config.QueueConfig, pool *pgxpool.Pool, delivery TicketDelivery, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := queue.RedisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queueName := cfg.GetAsynqQueueName()
	if queueName == "" {
		queueName = "default"
	}

	concurrency := cfg.GetWorkerConcurrency()
	if concurrency < 1 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		jobs:     repository.New(pool),
		delivery: delivery,
		log:      log,
	}

	mux.HandleFunc(queue.TaskTicketPrint, w.handleTicketPrint)

	return w, nil
}

func (w *Worker) handleTicketPrint(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseTicketPayload(task)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(payload.JobID)
	if err != nil {
		return err
	}

	if err := w.jobs.MarkProcessing(ctx, jobID); err != nil {
		return err
	}

	ticket, err := renderTicket(payload)
	if err != nil {
		return w.fail(ctx, jobID, err)
	}

	if err := w.delivery.Deliver(ctx, ticket); err != nil {
		return w.fail(ctx, jobID, err)
	}

	if err := w.jobs.MarkCompleted(ctx, jobID); err != nil {
		return err
	}

	w.log.JobEvent(queue.TaskTicketPrint, jobID.String(), nil)
	return nil
}

func (w *Worker) fail(ctx context.Context, jobID uuid.UUID, cause error) error {
	if err := w.jobs.MarkFailed(ctx, jobID, cause.Error()); err != nil {
		w.log.JobEvent(queue.TaskTicketPrint, jobID.String(), err)
	}
	w.log.JobEvent(queue.TaskTicketPrint, jobID.String(), cause)
	return cause
}

// Run blocks processing tasks until the context is canceled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("print worker stopped", "error", err)
	}
}
