package worker_test

import (
	"context"
	"errors"
	"hostmaster/config"
	kafkaMocks "hostmaster/infras/kafka/mocks"
	"hostmaster/infras/scheduler"
	schedulerMocks "hostmaster/infras/scheduler/mocks"
	notificationMocks "hostmaster/internal/domains/notification/service/mocks"
	"hostmaster/transport/worker"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newConfig(queue bool) *config.Config {
	cfg := &config.Config{}
	cfg.Notification.CheckInCron = "0 8 * * *"
	cfg.Notification.CheckOutCron = "0 13 * * *"
	cfg.Notification.QueueEnable = queue
	cfg.Notification.Topic = "hostmaster.notifications"
	cfg.Notification.ConsumerGroup = "hostmaster-notification"

	return cfg
}

func TestWorker_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockScheduler := schedulerMocks.NewMockScheduler(ctrl)
	mockNotifier := notificationMocks.NewMockNotification(ctrl)

	jobs := map[string]scheduler.Job{}

	mockScheduler.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(name, spec string, job scheduler.Job) error {
			jobs[name] = job

			return nil
		}).Times(2)

	w := worker.New(newConfig(false), mockScheduler, kafkaMocks.NewMockClient(ctrl), mockNotifier)

	require.NoError(t, w.Register())
	require.Len(t, jobs, 2)

	mockNotifier.EXPECT().SendCheckInReminders(gomock.Any()).Return(nil)
	mockNotifier.EXPECT().SendCheckOutReminders(gomock.Any()).Return(errors.New("smtp down"))

	jobs["check_in_reminders"](context.Background())
	jobs["check_out_reminders"](context.Background())
}

func TestWorker_RegisterInvalidSpec(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockScheduler := schedulerMocks.NewMockScheduler(ctrl)
	mockScheduler.EXPECT().Register("check_in_reminders", gomock.Any(), gomock.Any()).Return(errors.New("bad spec"))

	w := worker.New(newConfig(false), mockScheduler, kafkaMocks.NewMockClient(ctrl), notificationMocks.NewMockNotification(ctrl))

	assert.Error(t, w.Register())
}

func TestWorker_Run(t *testing.T) {
	tests := []struct {
		name  string
		queue bool
	}{
		{name: "scheduler only", queue: false},
		{name: "scheduler and consumer", queue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockScheduler := schedulerMocks.NewMockScheduler(ctrl)
			mockKafka := kafkaMocks.NewMockClient(ctrl)
			mockNotifier := notificationMocks.NewMockNotification(ctrl)

			mockScheduler.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
			mockScheduler.EXPECT().Start()
			mockScheduler.EXPECT().Stop(gomock.Any()).Return(nil)
			mockKafka.EXPECT().Close().Return(nil)

			if tt.queue {
				mockKafka.EXPECT().Consume(gomock.Any(), "hostmaster-notification", "hostmaster.notifications", gomock.Any())
			}

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			w := worker.New(newConfig(tt.queue), mockScheduler, mockKafka, mockNotifier)

			assert.NoError(t, w.Run(ctx))
		})
	}
}
