package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hostmaster/config"
	"hostmaster/infras/otel"
	"hostmaster/shared/constant"
	"net"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrInvalidRecipient = errors.New("invalid recipient")

type Mail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	config *config.Config
	otel   otel.Otel
	send   sendFunc
}

func New(config *config.Config, otl otel.Otel) Mailer {
	return &smtpMailer{
		config: config,
		otel:   otl,
		send:   smtp.SendMail,
	}
}

// Send delivers an HTML mail. When no SMTP host is configured the mail is only logged.
func (m *smtpMailer) Send(ctx context.Context, mail Mail) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".mailer.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	to := headerSafe(mail.To)
	if to == "" || !strings.Contains(to, "@") {
		return ErrInvalidRecipient
	}

	cfg := m.config.Mail
	if cfg.Host == "" {
		log.Warn().Str("to", to).Str("subject", mail.Subject).Msg("smtp host not configured, mail not sent")

		return nil
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("From: %s\r\n", headerSafe(from)))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", headerSafe(mail.Subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: %s\r\n\r\n", constant.ContentTypeHTML))
	sb.WriteString(mail.HTML)

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	if err = m.send(net.JoinHostPort(cfg.Host, cfg.Port), auth, envelopeSender(from), []string{to}, []byte(sb.String())); err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("to", to).Str("subject", mail.Subject).Msg("mail sent")

	return nil
}

// envelopeSender strips the display name from a From header value for MAIL FROM.
func envelopeSender(from string) string {
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return headerSafe(from)
	}

	return addr.Address
}

func headerSafe(value string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(strings.TrimSpace(value))
}
