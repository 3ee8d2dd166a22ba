package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wldnd519/BE/internal/app"
	"github.com/wldnd519/BE/internal/config"
	"github.com/wldnd519/BE/internal/logging"
	"github.com/wldnd519/BE/internal/notify"
)

var (
	emailTo      string
	emailContent string
)

var sendTestEmailCmd = &cobra.Command{
	Use:   "send-test-email",
	Short: "Send a message with the daily summary subject to check SMTP settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		gw := app.NewGateway(cfg, logging.NewWithWriter(os.Stderr, cfg.Env, cfg.LogLevel))
		if err := gw.SendEmail(contextOf(cmd), emailTo, notify.DailySummarySubject, emailContent); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sent to %s\n", emailTo)
		return nil
	},
}

func init() {
	sendTestEmailCmd.Flags().StringVar(&emailTo, "to", "", "recipient address (required)")
	sendTestEmailCmd.Flags().StringVar(&emailContent, "content", "테스트 메일입니다.", "message body")
	sendTestEmailCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(sendTestEmailCmd)
}
