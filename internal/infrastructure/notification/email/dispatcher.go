// Package email delivers Warrify's reminder and claim emails over SMTP. When
// no SMTP credentials are configured a log-only dispatcher stands in and every
// send succeeds.
package email

import (
	"context"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/turtacn/warrify/internal/config"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

// Dispatcher sends a plain-text message to one address.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Sender is the part of *mail.Client the SMTP dispatcher uses.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// NewDispatcher returns an SMTP dispatcher when cfg carries credentials and a
// LogDispatcher otherwise.
func NewDispatcher(cfg config.SMTPConfig, log logging.Logger) (Dispatcher, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if !cfg.Configured() {
		log.Info("smtp credentials not set, emails will be logged only")
		return NewLogDispatcher(log), nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "failed to create smtp client")
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	log.Info("smtp dispatcher ready", logging.String("host", cfg.Host), logging.Int("port", cfg.Port))
	return NewSMTPDispatcher(client, from, log), nil
}

// SMTPDispatcher sends each message in its own SMTP session.
type SMTPDispatcher struct {
	sender Sender
	from   string
	logger logging.Logger
}

func NewSMTPDispatcher(sender Sender, from string, log logging.Logger) *SMTPDispatcher {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &SMTPDispatcher{sender: sender, from: from, logger: log}
}

func (d *SMTPDispatcher) Send(ctx context.Context, to, subject, body string) error {
	msg, err := d.compose(to, subject, body)
	if err != nil {
		return err
	}
	if err := d.sender.DialAndSendWithContext(ctx, msg); err != nil {
		d.logger.Warn("email delivery failed", logging.String("to", to), logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDispatchFailed, "email delivery failed")
	}
	d.logger.Debug("email sent", logging.String("to", to), logging.String("subject", subject))
	return nil
}

func (d *SMTPDispatcher) compose(to, subject, body string) (*mail.Msg, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, errors.InvalidParam("recipient address is required")
	}
	msg := mail.NewMsg()
	if err := msg.From(d.from); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, "invalid sender address")
	}
	if err := msg.To(to); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, "invalid recipient address").WithDetail(to)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

// LogDispatcher writes messages to the log instead of sending them.
type LogDispatcher struct {
	logger logging.Logger
}

func NewLogDispatcher(log logging.Logger) *LogDispatcher {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &LogDispatcher{logger: log.Named("mock_email")}
}

func (d *LogDispatcher) Send(_ context.Context, to, subject, body string) error {
	d.logger.Info("mock email",
		logging.String("to", to),
		logging.String("subject", subject),
		logging.String("body", body))
	return nil
}
