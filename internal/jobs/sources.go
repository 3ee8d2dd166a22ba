package jobs

import (
	"context"
	"time"

	"github.com/wldnd519/BE/internal/model"
)

type SeniorLister interface {
	ListPage(ctx context.Context, afterID string, limit int) ([]model.Senior, error)
}

type ChatLogReader interface {
	ListBetween(ctx context.Context, seniorID string, from, to time.Time) ([]model.ChatLog, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, text string) error
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// forEachSenior walks every senior in id order, pageSize rows at a time.
func forEachSenior(ctx context.Context, lister SeniorLister, pageSize int, fn func(model.Senior)) error {
	after := ""
	for {
		page, err := lister.ListPage(ctx, after, pageSize)
		if err != nil {
			return err
		}
		for _, s := range page {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(s)
		}
		if len(page) < pageSize {
			return nil
		}
		after = page[len(page)-1].ID
	}
}
