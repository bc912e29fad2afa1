package worker

import (
	"context"
	"fmt"
	"hostmaster/config"
	"hostmaster/infras/kafka"
	"hostmaster/infras/scheduler"
	notificationService "hostmaster/internal/domains/notification/service"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	jobCheckInReminders  = "check_in_reminders"
	jobCheckOutReminders = "check_out_reminders"

	defaultStopTimeout = 30 * time.Second
)

// Worker runs the reminder jobs and, when queueing is enabled, the notification consumer.
type Worker struct {
	Config    *config.Config
	Scheduler scheduler.Scheduler
	Kafka     kafka.Client
	Notifier  notificationService.Notification
}

func New(cfg *config.Config, sched scheduler.Scheduler, client kafka.Client, notifier notificationService.Notification) *Worker {
	return &Worker{
		Config:    cfg,
		Scheduler: sched,
		Kafka:     client,
		Notifier:  notifier,
	}
}

// Register adds the reminder jobs to the scheduler without starting it.
func (w *Worker) Register() error {
	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context) error
	}{
		{name: jobCheckInReminders, spec: w.Config.Notification.CheckInCron, run: w.Notifier.SendCheckInReminders},
		{name: jobCheckOutReminders, spec: w.Config.Notification.CheckOutCron, run: w.Notifier.SendCheckOutReminders},
	}

	for _, job := range jobs {
		run := job.run
		name := job.name

		err := w.Scheduler.Register(name, job.spec, func(ctx context.Context) {
			if err := run(ctx); err != nil {
				log.Error().Err(err).Str("job", name).Msg("scheduled job failed")
			}
		})
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", name, err)
		}
	}

	return nil
}

// Run blocks until ctx is cancelled, then stops the scheduler and waits for the consumer.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.Register(); err != nil {
		return err
	}

	w.Scheduler.Start()

	log.Info().Msg("Scheduler started.")

	var wg sync.WaitGroup

	if w.Config.Notification.QueueEnable {
		wg.Add(1)

		go func() {
			defer wg.Done()

			w.Kafka.Consume(ctx, w.Config.Notification.ConsumerGroup, w.Config.Notification.Topic, w.Notifier.HandleMessage)
		}()

		log.Info().Str("topic", w.Config.Notification.Topic).Msg("Notification consumer started.")
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultStopTimeout)
	defer cancel()

	if err := w.Scheduler.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop scheduler")
	}

	wg.Wait()

	if err := w.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	log.Info().Msg("Worker stopped.")

	return nil
}

// Serve runs the worker until SIGINT or SIGTERM.
func (w *Worker) Serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run worker")
	}
}
