package mailer

import (
	"context"
	"errors"
	"hostmaster/config"
	"hostmaster/infras/otel/mocks"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_Send(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mail.Host = "smtp.example.com"
	cfg.Mail.Port = "587"
	cfg.Mail.Username = "noreply@example.com"
	cfg.Mail.From = "HostMaster <noreply@example.com>"

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)

	m := &smtpMailer{
		config: cfg,
		otel:   mocks.NewOtel(),
		send: func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
			gotAddr = addr
			gotTo = to
			gotMsg = string(msg)

			return nil
		},
	}

	err := m.Send(context.Background(), Mail{
		To:      "guest@example.com",
		Subject: "Reservation Confirmed\r\nBcc: evil@example.com",
		HTML:    "<p>hello</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"guest@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Reservation ConfirmedBcc: evil@example.com\r\n")
	assert.False(t, strings.Contains(gotMsg, "\r\nBcc:"))
	assert.True(t, strings.HasSuffix(gotMsg, "<p>hello</p>"))
}

func TestSMTPMailer_EnvelopeSender(t *testing.T) {
	tests := []struct {
		name     string
		username string
		from     string
		want     string
	}{
		{name: "unauthenticated relay uses the from address", from: "HostMaster <bookings@example.com>", want: "bookings@example.com"},
		{name: "bare from address", username: "smtp-user", from: "bookings@example.com", want: "bookings@example.com"},
		{name: "falls back to the username", username: "noreply@example.com", want: "noreply@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Mail.Host = "relay.internal"
			cfg.Mail.Port = "25"
			cfg.Mail.Username = tt.username
			cfg.Mail.From = tt.from

			var (
				gotFrom string
				gotAuth smtp.Auth
			)

			m := &smtpMailer{
				config: cfg,
				otel:   mocks.NewOtel(),
				send: func(_ string, auth smtp.Auth, from string, _ []string, _ []byte) error {
					gotAuth = auth
					gotFrom = from

					return nil
				},
			}

			require.NoError(t, m.Send(context.Background(), Mail{To: "guest@example.com"}))
			assert.Equal(t, tt.want, gotFrom)
			assert.Equal(t, tt.username == "", gotAuth == nil)
		})
	}
}

func TestSMTPMailer_SendErrors(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mail.Host = "smtp.example.com"
	cfg.Mail.Port = "25"

	m := &smtpMailer{
		config: cfg,
		otel:   mocks.NewOtel(),
		send: func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		},
	}

	err := m.Send(context.Background(), Mail{To: "not-an-address"})
	assert.ErrorIs(t, err, ErrInvalidRecipient)

	err = m.Send(context.Background(), Mail{To: "guest@example.com"})
	assert.Error(t, err)
}

func TestSMTPMailer_SendWithoutHost(t *testing.T) {
	called := false

	m := &smtpMailer{
		config: &config.Config{},
		otel:   mocks.NewOtel(),
		send: func(string, smtp.Auth, string, []string, []byte) error {
			called = true

			return nil
		},
	}

	err := m.Send(context.Background(), Mail{To: "guest@example.com"})
	assert.NoError(t, err)
	assert.False(t, called)
}
