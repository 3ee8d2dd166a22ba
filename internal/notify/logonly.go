package notify

import (
	"context"
	"log/slog"
)

// LogOnlySMS stands in for an unconfigured SMS provider in development.
type LogOnlySMS struct {
	Logger *slog.Logger
}

func (l LogOnlySMS) SendSMS(_ context.Context, to, body string) (string, error) {
	l.Logger.Warn("sms provider not configured, message not delivered", "to", to, "body", body)
	return "log-only", nil
}

// LogOnlyMailer stands in for an unconfigured mail provider in development.
type LogOnlyMailer struct {
	Logger *slog.Logger
}

func (l LogOnlyMailer) SendMail(_ context.Context, to, subject, body string) error {
	l.Logger.Warn("mail provider not configured, message not delivered", "to", to, "subject", subject, "bytes", len(body))
	return nil
}
