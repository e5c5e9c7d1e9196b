package service

import (
	"bitwise74/contacts-api/config"
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers the email confirmation message
type Mailer interface {
	SendConfirmation(ctx context.Context, to, username, token string) error
}

var confirmTmpl = template.Must(template.New("confirm").Parse(`<p>Hi {{.Username}},</p>
<p>Thanks for signing up. Click <a href="{{.Link}}">here</a> to confirm your email address.</p>
<p>If the link doesn't work paste this into your browser:<br>{{.Link}}</p>`))

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	// Base URL the confirmation link points at, without trailing slash
	baseURL string
}

func NewSMTPMailer(m config.Mail, h config.Host) *SMTPMailer {
	return &SMTPMailer{
		dialer:  gomail.NewDialer(m.Host, m.Port, m.Sender, m.Password),
		from:    m.Sender,
		baseURL: BaseURL(h),
	}
}

// BaseURL is the public address of the API
func BaseURL(h config.Host) string {
	scheme := "http"
	if h.SSL {
		scheme = "https"
	}

	return scheme + "://" + h.Domain
}

// ConfirmationLink returns where a confirmation token gets redeemed
func ConfirmationLink(baseURL, token string) string {
	return baseURL + "/api/auth/confirmed_email/" + token
}

func (m *SMTPMailer) SendConfirmation(ctx context.Context, to, username, token string) error {
	if to == m.from {
		return errors.New("invalid email address")
	}

	var body bytes.Buffer
	err := confirmTmpl.Execute(&body, struct {
		Username string
		Link     string
	}{username, ConfirmationLink(m.baseURL, token)})
	if err != nil {
		return fmt.Errorf("failed to render confirmation mail, %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Confirm your email")
	msg.SetBody("text/html", body.String())

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send confirmation mail, %w", err)
	}

	return nil
}

// LogMailer is used when no SMTP server is configured. It only logs the
// confirmation link so accounts can still be confirmed in development.
type LogMailer struct {
	BaseURL string
}

func (m LogMailer) SendConfirmation(_ context.Context, to, _, token string) error {
	zap.L().Info("Mail disabled, confirmation link not sent",
		zap.String("to", to),
		zap.String("link", ConfirmationLink(m.BaseURL, token)),
	)

	return nil
}
