package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hostmaster/config"
	"hostmaster/infras/kafka"
	"hostmaster/infras/mailer"
	"hostmaster/infras/otel"
	"hostmaster/internal/domains/notification/model/dto"
	"hostmaster/internal/domains/notification/templates"
	reservationModel "hostmaster/internal/domains/reservation/model"
	reservationRepo "hostmaster/internal/domains/reservation/repository"
	"hostmaster/shared/constant"
	gDto "hostmaster/shared/dto"
	"hostmaster/shared/timezone"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	subjectSuffix = " - HostMaster"

	titleCheckIn  = "Check-In Reminder"
	titleCheckOut = "Check-Out Reminder"
)

type Notification interface {
	SendReservationConfirmation(ctx context.Context, recipient string, details dto.ReservationDetails) error
	SendCheckInReminders(ctx context.Context) error
	SendCheckOutReminders(ctx context.Context) error
	HandleMessage(ctx context.Context, message kafkaGo.Message)
}

type serviceImpl struct {
	detailRepo reservationRepo.Detail
	mailer     mailer.Mailer
	kafka      kafka.Client
	cfg        *config.Config
	otel       otel.Otel
}

func New(detailRepo reservationRepo.Detail, mailer mailer.Mailer, kafka kafka.Client, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		detailRepo: detailRepo,
		mailer:     mailer,
		kafka:      kafka,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *serviceImpl) SendReservationConfirmation(ctx context.Context, recipient string, details dto.ReservationDetails) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendReservationConfirmation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if details.Title == "" {
		details.Title = "Reservation Confirmation"
	}

	return s.send(ctx, recipient, details)
}

func (s *serviceImpl) SendCheckInReminders(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendCheckInReminders")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.sendReminders(ctx, reservationModel.FieldStartDate, func(detail reservationModel.Detail) dto.ReservationDetails {
		address := "not provided"
		if detail.Address != nil && *detail.Address != "" {
			address = *detail.Address
		}

		return dto.ReservationDetails{
			Title: titleCheckIn,
			Message: fmt.Sprintf("Your check-in at %s is tomorrow! Please arrive from 14:00. Address: %s. Contact: %s.",
				detail.AccommodationName, address, s.cfg.Notification.SupportContact),
		}
	})
}

func (s *serviceImpl) SendCheckOutReminders(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendCheckOutReminders")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.sendReminders(ctx, reservationModel.FieldEndDate, func(detail reservationModel.Detail) dto.ReservationDetails {
		return dto.ReservationDetails{
			Title: titleCheckOut,
			Message: fmt.Sprintf("Your check-out from %s is tomorrow! Please vacate the room before 11:00. We hope you enjoyed your stay. Contact: %s.",
				detail.AccommodationName, s.cfg.Notification.SupportContact),
		}
	})
}

// HandleMessage mails a queued notification. Failures are logged and the message is dropped.
func (s *serviceImpl) HandleMessage(ctx context.Context, message kafkaGo.Message) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleMessage")
	defer scope.End()

	mail, err := kafka.Decode[mailer.Mail](message)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode notification message")

		return
	}

	if err := s.mailer.Send(ctx, mail); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("to", mail.To).Msg("failed to deliver queued notification")
	}
}

// sendReminders notifies every confirmed reservation whose dateField is tomorrow.
func (s *serviceImpl) sendReminders(ctx context.Context, dateField string, build func(reservationModel.Detail) dto.ReservationDetails) error {
	tomorrow := timezone.Tomorrow().Format(constant.DateOnlyFormat)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    dateField,
				Operator: gDto.FilterOperatorEq,
				Value:    tomorrow,
				Table:    reservationModel.TableName,
			},
			gDto.Filter{
				Field:    reservationModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    reservationModel.StatusConfirmed.String(),
				Table:    reservationModel.TableName,
			},
		},
	}

	details, err := s.detailRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Str("date", tomorrow).Msg("failed to get reservations for reminders")

		return fmt.Errorf("failed to get reservations for reminders: %w", err)
	}

	log.Info().Str("field", dateField).Str("date", tomorrow).Int("count", len(details)).Msg("found reservations for reminders")

	sent := 0

	for _, detail := range details {
		if !detail.HasEmail() {
			log.Warn().Int64("reservation_id", detail.ID).Msg("reservation has no email associated")

			continue
		}

		data := build(detail)
		data.FromDetail(detail)

		if err := s.send(ctx, *detail.Email, data); err != nil {
			log.Error().Err(err).Int64("reservation_id", detail.ID).Msg("failed to send reminder")

			continue
		}

		sent++
	}

	log.Info().Str("field", dateField).Int("sent", sent).Msg("reminders sent")

	return nil
}

func (s *serviceImpl) send(ctx context.Context, recipient string, details dto.ReservationDetails) error {
	html, err := templates.RenderReservation(details)
	if err != nil {
		log.Error().Err(err).Int64("reservation_id", details.ReservationID).Msg("failed to render notification")

		return fmt.Errorf("failed to render notification: %w", err)
	}

	mail := mailer.Mail{
		To:      recipient,
		Subject: details.Title + subjectSuffix,
		HTML:    html,
	}

	if !s.cfg.Notification.QueueEnable {
		return s.mailer.Send(ctx, mail) //nolint:wrapcheck
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Notification.Topic, kafka.Message{Key: recipient, Value: mail}); err != nil {
		log.Error().Err(err).Str("topic", s.cfg.Notification.Topic).Msg("failed to queue notification")

		return fmt.Errorf("failed to queue notification: %w", err)
	}

	return nil
}

