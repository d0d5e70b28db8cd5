package mail

import (
	"context"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"
)

// Notification es el aviso mínimo que manda el dominio; el armado del
// mensaje SMTP queda de este lado.
type Notification struct {
	Subject string
	Body    string // HTML
}

// Mailer lo consume el write service de zoos; el envío es best-effort.
type Mailer interface {
	Send(ctx context.Context, n Notification) error
}

// Noop descarta las notificaciones (modo dev / SMTP sin configurar).
type Noop struct{}

func (Noop) Send(context.Context, Notification) error { return nil }

type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// SMTPMailer manda las notificaciones por SMTP usando go-mail.
type SMTPMailer struct {
	client *gomail.Client
	from   string
	to     string
}

func NewSMTP(opts SMTPOptions) (*SMTPMailer, error) {
	client, err := gomail.NewClient(opts.Host,
		gomail.WithPort(opts.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(opts.Username),
		gomail.WithPassword(opts.Password),
	)
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{client: client, from: opts.From, to: opts.To}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, n Notification) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(m.to); err != nil {
		return err
	}
	// Message-ID propio para poder correlacionar en los logs del relay.
	msg.SetMessageIDWithValue(uuid.NewString())
	msg.Subject(n.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, n.Body)

	return m.client.DialAndSendWithContext(ctx, msg)
}
