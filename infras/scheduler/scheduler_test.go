package scheduler_test

import (
	"context"
	"hostmaster/infras/otel/mocks"
	"hostmaster/infras/scheduler"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_Register(t *testing.T) {
	s := scheduler.New(mocks.NewOtel())

	assert.NoError(t, s.Register("check_in_reminders", "0 8 * * *", func(context.Context) {}))
	assert.Error(t, s.Register("broken", "not a cron spec", func(context.Context) {}))
}

func TestScheduler_RunsJob(t *testing.T) {
	s := scheduler.New(mocks.NewOtel())
	ran := make(chan struct{}, 1)

	require.NoError(t, s.Register("every_second", "@every 1s", func(context.Context) {
		select {
		case ran <- struct{}{}:
		default:
		}
	}))

	s.Start()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, s.Stop(ctx))
}
