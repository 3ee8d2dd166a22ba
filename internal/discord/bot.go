// Package discord posts batch run reports to an operations channel and
// answers a few prefix commands there.
package discord

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/wldnd519/BE/internal/jobs"
)

// sender is the part of *discordgo.Session the bot writes through.
type sender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Bot struct {
	session   *discordgo.Session
	out       sender
	channelID string
	commands  *CommandHandler
	logger    *slog.Logger
}

// NewBot returns nil, nil when no token is configured; every method is nil-safe.
func NewBot(token, channelID string, commands *CommandHandler, logger *slog.Logger) (*Bot, error) {
	logger = logger.With("component", "discord")
	if token == "" {
		logger.Info("no bot token configured, bot disabled")
		return nil, nil
	}

	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	bot := &Bot{
		session:   s,
		out:       s,
		channelID: channelID,
		commands:  commands,
		logger:    logger,
	}
	s.AddHandler(bot.onMessageCreate)
	return bot, nil
}

// Start opens the Discord gateway connection.
func (b *Bot) Start() error {
	if b == nil || b.session == nil {
		return nil
	}
	if err := b.session.Open(); err != nil {
		return err
	}
	b.logger.Info("bot connected")
	return nil
}

func (b *Bot) Stop() {
	if b == nil || b.session == nil {
		return
	}
	_ = b.session.Close()
	b.logger.Info("bot disconnected")
}

// PostReport is a jobs.Listener that publishes each finished run.
func (b *Bot) PostReport(rep jobs.Report) {
	if b == nil || b.channelID == "" {
		return
	}
	if _, err := b.out.ChannelMessageSendEmbed(b.channelID, ReportEmbed(rep)); err != nil {
		b.logger.Warn("post run report failed", "job", rep.Job, "error", err)
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	if len(m.Content) == 0 || m.Content[0] != '!' {
		return
	}
	b.commands.Handle(s, m.ChannelID, m.Content)
}
