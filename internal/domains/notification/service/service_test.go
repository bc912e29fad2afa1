package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostmaster/config"
	"hostmaster/infras/kafka"
	kafkaMocks "hostmaster/infras/kafka/mocks"
	"hostmaster/infras/mailer"
	mailerMocks "hostmaster/infras/mailer/mocks"
	otelMocks "hostmaster/infras/otel/mocks"
	"hostmaster/internal/domains/notification/model/dto"
	"hostmaster/internal/domains/notification/service"
	reservationMocks "hostmaster/internal/domains/reservation/mocks"
	reservationModel "hostmaster/internal/domains/reservation/model"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/timezone"
)

type fixture struct {
	detailRepo *reservationMocks.MockDetail
	mailer     *mailerMocks.MockMailer
	kafka      *kafkaMocks.MockClient
	cfg        *config.Config
	svc        service.Notification
}

func newFixture(t *testing.T, queue bool) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Notification.QueueEnable = queue
	cfg.Notification.Topic = "hostmaster.notifications"
	cfg.Notification.SupportContact = "help@hostmaster.test"

	f := &fixture{
		detailRepo: reservationMocks.NewMockDetail(ctrl),
		mailer:     mailerMocks.NewMockMailer(ctrl),
		kafka:      kafkaMocks.NewMockClient(ctrl),
		cfg:        cfg,
	}

	f.svc = service.New(f.detailRepo, f.mailer, f.kafka, cfg, otelMocks.NewOtel())

	return f
}

func stringPtr(s string) *string {
	return &s
}

func detail(id int64, email *string) reservationModel.Detail {
	return reservationModel.Detail{
		ID:                id,
		UserUsername:      "alice",
		RoomID:            7,
		StartDate:         time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
		GuestCount:        2,
		Status:            reservationModel.StatusConfirmed,
		Email:             email,
		RoomNumber:        "101",
		AccommodationName: "Seaside Inn",
		Address:           stringPtr("1 Ocean Drive"),
	}
}

func filterValues(filter gDto.FilterGroup) map[string]any {
	values := map[string]any{}

	for _, item := range filter.Filters {
		if f, ok := item.(gDto.Filter); ok {
			values[f.Field] = f.Value
		}
	}

	return values
}

func TestNotificationService_SendCheckInReminders(t *testing.T) {
	f := newFixture(t, false)

	tomorrow := timezone.Now().AddDate(0, 0, 1).Format(constant.DateOnlyFormat)

	f.detailRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]reservationModel.Detail, error) {
			values := filterValues(filter)

			assert.Equal(t, tomorrow, values[reservationModel.FieldStartDate])
			assert.Equal(t, "confirmed", values[reservationModel.FieldStatus])
			assert.NotContains(t, values, reservationModel.FieldEndDate)

			return []reservationModel.Detail{
				detail(1, stringPtr("alice@example.com")),
				detail(2, nil),
				detail(3, stringPtr("")),
			}, nil
		})

	f.mailer.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mail mailer.Mail) error {
			assert.Equal(t, "alice@example.com", mail.To)
			assert.Equal(t, "Check-In Reminder - HostMaster", mail.Subject)
			assert.Contains(t, mail.HTML, "14:00")
			assert.Contains(t, mail.HTML, "1 Ocean Drive")
			assert.Contains(t, mail.HTML, "help@hostmaster.test")
			assert.Contains(t, mail.HTML, "2025-03-10")

			return nil
		})

	require.NoError(t, f.svc.SendCheckInReminders(context.Background()))
}

func TestNotificationService_SendCheckOutReminders(t *testing.T) {
	t.Run("failed send does not stop the batch", func(t *testing.T) {
		f := newFixture(t, false)

		f.detailRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]reservationModel.Detail, error) {
				assert.Contains(t, filterValues(filter), reservationModel.FieldEndDate)

				return []reservationModel.Detail{
					detail(1, stringPtr("first@example.com")),
					detail(2, stringPtr("second@example.com")),
				}, nil
			})

		gomock.InOrder(
			f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp unavailable")),
			f.mailer.EXPECT().
				Send(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, mail mailer.Mail) error {
					assert.Equal(t, "second@example.com", mail.To)
					assert.Equal(t, "Check-Out Reminder - HostMaster", mail.Subject)
					assert.Contains(t, mail.HTML, "11:00")

					return nil
				}),
		)

		assert.NoError(t, f.svc.SendCheckOutReminders(context.Background()))
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture(t, false)

		f.detailRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		assert.Error(t, f.svc.SendCheckOutReminders(context.Background()))
	})
}

func TestNotificationService_SendReservationConfirmation(t *testing.T) {
	details := dto.ReservationDetails{
		Message:           "Your reservation has been received.",
		ReservationID:     42,
		AccommodationName: "Seaside Inn",
		RoomNumber:        "101",
		StartDate:         "2025-03-10",
		EndDate:           "2025-03-12",
		GuestCount:        2,
		Status:            "pending",
	}

	t.Run("sends directly over smtp", func(t *testing.T) {
		f := newFixture(t, false)

		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mail mailer.Mail) error {
				assert.Equal(t, "Reservation Confirmation - HostMaster", mail.Subject)
				assert.Contains(t, mail.HTML, "#42")
				assert.Contains(t, mail.HTML, "Seaside Inn")

				return nil
			})

		assert.NoError(t, f.svc.SendReservationConfirmation(context.Background(), "alice@example.com", details))
	})

	t.Run("publishes to the queue when enabled", func(t *testing.T) {
		f := newFixture(t, true)

		f.kafka.EXPECT().
			SendMessages(gomock.Any(), "hostmaster.notifications", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, "alice@example.com", messages[0].Key)

				mail, ok := messages[0].Value.(mailer.Mail)
				require.True(t, ok)
				assert.Equal(t, "alice@example.com", mail.To)

				return nil
			})

		assert.NoError(t, f.svc.SendReservationConfirmation(context.Background(), "alice@example.com", details))
	})

	t.Run("queue failure is returned", func(t *testing.T) {
		f := newFixture(t, true)

		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(kafka.ErrNoBrokers)

		assert.Error(t, f.svc.SendReservationConfirmation(context.Background(), "alice@example.com", details))
	})
}

func TestNotificationService_HandleMessage(t *testing.T) {
	t.Run("delivers a queued mail", func(t *testing.T) {
		f := newFixture(t, true)

		mail := mailer.Mail{To: "alice@example.com", Subject: "Check-In Reminder - HostMaster", HTML: "<p>hi</p>"}

		value, err := json.Marshal(mail)
		require.NoError(t, err)

		f.mailer.EXPECT().Send(gomock.Any(), mail).Return(nil)

		f.svc.HandleMessage(context.Background(), kafkaGo.Message{Key: []byte(mail.To), Value: value})
	})

	t.Run("drops undecodable messages", func(t *testing.T) {
		f := newFixture(t, true)

		f.svc.HandleMessage(context.Background(), kafkaGo.Message{Value: []byte("not json")})
	})
}
