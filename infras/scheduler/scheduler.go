package scheduler

//go:generate go run go.uber.org/mock/mockgen -source=./scheduler.go -destination=./mocks/scheduler_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hostmaster/infras/otel"
	"hostmaster/shared/constant"
	"hostmaster/shared/timezone"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type Job func(ctx context.Context)

type Scheduler interface {
	Register(name, spec string, job Job) error
	Start()
	Stop(ctx context.Context) error
}

type cronScheduler struct {
	cron *cron.Cron
	otel otel.Otel
}

// New returns a scheduler evaluating cron specs in the application timezone.
func New(otl otel.Otel) Scheduler {
	return &cronScheduler{
		cron: cron.New(
			cron.WithLocation(timezone.GetLocation()),
			cron.WithChain(cron.Recover(cron.DefaultLogger)),
		),
		otel: otl,
	}
}

func (s *cronScheduler) Register(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, scope := s.otel.NewScope(context.Background(), constant.OtelJobScopeName, constant.OtelJobScopeName+"."+name)
		defer scope.End()

		log.Info().Str("job", name).Msg("running scheduled job")

		job(ctx)
	})
	if err != nil {
		log.Error().Err(err).Str("job", name).Str("spec", spec).Msg("failed to register job")

		return fmt.Errorf("failed to register job %s: %w", name, err)
	}

	log.Info().Str("job", name).Str("spec", spec).Msg("job registered")

	return nil
}

func (s *cronScheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *cronScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}
