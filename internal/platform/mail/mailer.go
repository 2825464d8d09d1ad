// Package mail はSMTP経由のメール送信を提供します。
package mail

import (
	"context"
	"log/slog"

	gomail "gopkg.in/gomail.v2"
)

// SMTPMailer はgomail経由でHTMLメールを送信します。
// devModeが有効な場合、実際の送信は行わずログに記録するだけです。
type SMTPMailer struct {
	dialer  *gomail.Dialer
	devMode bool
}

// NewSMTPMailer はSMTPMailerの新しいインスタンスを生成します。
func NewSMTPMailer(host string, port int, username, password string, devMode bool) *SMTPMailer {
	return &SMTPMailer{
		dialer:  gomail.NewDialer(host, port, username, password),
		devMode: devMode,
	}
}

// Send は単一のHTMLメールを送信します。
// コンテキストが既にキャンセルされている場合は送信せずエラーを返します。
func (m *SMTPMailer) Send(ctx context.Context, from, to, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if m.devMode {
		slog.Info("mail delivery skipped in development mode", "to", to, "subject", subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		slog.Error("mail delivery failed", "to", to, "subject", subject, "error", err)
		return err
	}

	slog.Info("mail delivered", "to", to, "subject", subject)
	return nil
}
