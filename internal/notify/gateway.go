// Package notify delivers guardian notifications over SMS and email.
//
// Providers are hidden behind SMSProvider and MailProvider so the batch jobs
// and handlers depend only on Gateway. Both channels log the outcome and hand
// the error back to the caller; callers decide whether to continue.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
)

const (
	DailySummarySubject = "오늘의 말벗 대화 요약"
	SenderName          = "노인 말벗 서비스"
)

type SMSProvider interface {
	// SendSMS returns the provider's message id.
	SendSMS(ctx context.Context, to, body string) (string, error)
}

type MailProvider interface {
	SendMail(ctx context.Context, to, subject, body string) error
}

type Gateway struct {
	sms     SMSProvider
	mail    MailProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

type Option func(*Gateway)

// WithSMSRate paces outbound SMS to perSec messages per second. Zero disables pacing.
func WithSMSRate(perSec float64) Option {
	return func(g *Gateway) {
		if perSec > 0 {
			g.limiter = rate.NewLimiter(rate.Limit(perSec), 1)
		}
	}
}

func NewGateway(sms SMSProvider, mail MailProvider, logger *slog.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		sms:    sms,
		mail:   mail,
		logger: logger.With("component", "notify"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) SendSMS(ctx context.Context, to, text string) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("sms rate wait: %w", err)
		}
	}

	id, err := g.sms.SendSMS(ctx, to, text)
	if err != nil {
		g.logger.Error("sms send failed", "to", to, "error", err)
		return fmt.Errorf("send sms: %w", err)
	}
	g.logger.Info("sms sent", "to", to, "sid", id)
	return nil
}

func (g *Gateway) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := g.mail.SendMail(ctx, to, subject, body); err != nil {
		g.logger.Error("email send failed", "to", to, "error", err)
		return fmt.Errorf("send email: %w", err)
	}
	g.logger.Info("email sent", "to", to)
	return nil
}
