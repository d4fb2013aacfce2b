package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"
	"gopkg.in/gomail.v2"
)

// Email is an outbound message
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers outbound email
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// MailerFunc adapts a function to the Mailer interface
type MailerFunc func(ctx context.Context, msg Email) error

func (f MailerFunc) Send(ctx context.Context, msg Email) error {
	if f == nil {
		return nil
	}
	return f(ctx, msg)
}

// SMTPMailer sends email over SMTP using gomail
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger Logger
}

// NewSMTPMailer creates a mailer backed by the given SMTP server
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: defLogger{},
	}
}

func (m *SMTPMailer) WithLogger(logger Logger) *SMTPMailer {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// Send delivers the message, honoring context cancellation. gomail has
// no context support so the dial and send runs in its own goroutine.
func (m *SMTPMailer) Send(ctx context.Context, msg Email) error {
	out := gomail.NewMessage()
	out.SetHeader("From", m.from)
	out.SetHeader("To", msg.To)
	out.SetHeader("Subject", msg.Subject)
	out.SetBody("text/plain", msg.Body)

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(out)
	}()

	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), errors.CategoryOperation, "email send cancelled")
	case err := <-done:
		if err != nil {
			m.logger.Error("SMTP send failed", "to", msg.To, "error", err)
			return errors.Wrap(err, ErrEmailSendFailed.Category, ErrEmailSendFailed.Message).
				WithTextCode(ErrEmailSendFailed.TextCode)
		}
		return nil
	}
}

// AccountMailer composes the account lifecycle notifications. Links
// carry the encoded user ID plus a token minted by LinkTokens.
type AccountMailer struct {
	mailer       Mailer
	tokens       *LinkTokens
	baseURL      string
	appName      string
	activatePath string
	resetPath    string
}

// NewAccountMailer wires a Mailer and a LinkTokens generator
func NewAccountMailer(mailer Mailer, tokens *LinkTokens, baseURL string) *AccountMailer {
	return &AccountMailer{
		mailer:       mailer,
		tokens:       tokens,
		baseURL:      strings.TrimRight(baseURL, "/"),
		appName:      "Accounts",
		activatePath: "/activate",
		resetPath:    "/reset",
	}
}

func (m *AccountMailer) WithAppName(name string) *AccountMailer {
	if name != "" {
		m.appName = name
	}
	return m
}

// WithPaths overrides the activation and reset path segments so the
// emailed links follow customized controller routes.
// NewAccountsController calls this with its route table, keeping links
// and routes in sync.
func (m *AccountMailer) WithPaths(activate, reset string) *AccountMailer {
	if activate != "" {
		m.activatePath = "/" + strings.Trim(activate, "/")
	}
	if reset != "" {
		m.resetPath = "/" + strings.Trim(reset, "/")
	}
	return m
}

// ActivationLink builds the emailed activation URL for the user
func (m *AccountMailer) ActivationLink(user *User) string {
	return fmt.Sprintf("%s%s/%s/%s", m.baseURL, m.activatePath, EncodeUID(user.ID), m.tokens.Make(user))
}

// ResetLink builds the emailed password reset URL for the user
func (m *AccountMailer) ResetLink(user *User) string {
	return fmt.Sprintf("%s%s/%s/%s", m.baseURL, m.resetPath, EncodeUID(user.ID), m.tokens.Make(user))
}

// SendActivation emails the activation link to a freshly registered user
func (m *AccountMailer) SendActivation(ctx context.Context, user *User) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nPlease confirm your registration by following this link:\n\n%s\n\nIf you did not sign up you can ignore this message.\n",
		user.FullName(),
		m.ActivationLink(user),
	)

	return m.mailer.Send(ctx, Email{
		To:      user.Email,
		Subject: fmt.Sprintf("Activate your %s account", m.appName),
		Body:    body,
	})
}

// SendPasswordReset emails the password reset link
func (m *AccountMailer) SendPasswordReset(ctx context.Context, user *User) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset the password for your account.\nYou can set a new password here:\n\n%s\n\nIf you did not request a reset no action is needed.\n",
		user.FullName(),
		m.ResetLink(user),
	)

	return m.mailer.Send(ctx, Email{
		To:      user.Email,
		Subject: fmt.Sprintf("%s password reset", m.appName),
		Body:    body,
	})
}
