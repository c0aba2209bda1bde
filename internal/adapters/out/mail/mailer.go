// Package mail provides the SMTP implementation of the outbound Mailer port.
// Every digest and customer notification leaves the system through here; a
// send error is reported back to the caller, which records it in the delivery
// log instead of retrying.
package mail

import (
	"context"
	"time"

	"fieldservice/internal/pkg/errs"

	gomail "github.com/wneessen/go-mail"
)

// sendTimeout caps one delivery attempt. A hung SMTP conversation must not
// stall the rest of a dispatch pass.
const sendTimeout = 10 * time.Second

// SMTPMailer implements ports.Mailer on top of an SMTP relay.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer creates a mailer that delivers through the given SMTP relay.
// Username and password are optional; leave them empty for an unauthenticated
// relay.
func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	if host == "" {
		return nil, errs.NewValueIsRequiredError("host")
	}
	if from == "" {
		return nil, errs.NewValueIsRequiredError("from")
	}

	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTimeout(sendTimeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}

	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, err
	}

	return &SMTPMailer{
		client: client,
		from:   from,
	}, nil
}

// Send delivers one plain-text message. The attempt is bounded by sendTimeout
// regardless of the caller's context.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return errs.NewValueIsRequiredError("to")
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	return m.client.DialAndSendWithContext(sendCtx, msg)
}
