package discord

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	"github.com/wldnd519/BE/internal/jobs"
)

const (
	colorOK      = 0x2ECC71
	colorWarn    = 0xF39C12
	colorFailed  = 0xE74C3C
	footerText   = "노인 말벗 서비스"
	maxFailNames = 10
)

type SeniorCounter interface {
	CountTotal(ctx context.Context) (int, error)
}

type OnlineCounter interface {
	OnlineCount() int
}

type RunHistory interface {
	LastReports() map[string]jobs.Report
}

// CommandHandler answers !stats, !lastrun and !help.
type CommandHandler struct {
	seniors SeniorCounter
	online  OnlineCounter
	runs    RunHistory
	now     func() time.Time
}

func NewCommandHandler(seniors SeniorCounter, online OnlineCounter, runs RunHistory) *CommandHandler {
	return &CommandHandler{seniors: seniors, online: online, runs: runs, now: time.Now}
}

func (h *CommandHandler) Handle(s sender, channelID, content string) {
	parts := strings.Fields(content)
	if len(parts) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch strings.ToLower(parts[0]) {
	case "!stats":
		s.ChannelMessageSendEmbed(channelID, h.statsEmbed(ctx))
	case "!lastrun":
		name := ""
		if len(parts) > 1 {
			name = parts[1]
		}
		h.cmdLastRun(s, channelID, name)
	case "!help":
		s.ChannelMessageSend(channelID, "명령어: `!stats`, `!lastrun [checkin|summary]`, `!help`")
	}
}

func (h *CommandHandler) statsEmbed(ctx context.Context) *discordgo.MessageEmbed {
	total := "?"
	if n, err := h.seniors.CountTotal(ctx); err == nil {
		total = humanize.Comma(int64(n))
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "등록된 어르신", Value: total, Inline: true},
		{Name: "실시간 접속", Value: fmt.Sprintf("%d", h.online.OnlineCount()), Inline: true},
	}
	reports := h.runs.LastReports()
	for _, name := range sortedJobs(reports) {
		rep := reports[name]
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "마지막 " + name,
			Value: humanize.RelTime(rep.FinishedAt, h.now(), "전", "후"),
		})
	}

	return &discordgo.MessageEmbed{
		Title:     "서비스 현황",
		Color:     colorOK,
		Fields:    fields,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: footerText},
	}
}

func (h *CommandHandler) cmdLastRun(s sender, channelID, name string) {
	reports := h.runs.LastReports()
	if name == "" {
		for _, job := range sortedJobs(reports) {
			s.ChannelMessageSendEmbed(channelID, ReportEmbed(reports[job]))
		}
		if len(reports) == 0 {
			s.ChannelMessageSend(channelID, "아직 실행된 작업이 없습니다.")
		}
		return
	}

	rep, ok := reports[name]
	if !ok {
		s.ChannelMessageSend(channelID, fmt.Sprintf("`%s` 작업의 실행 기록이 없습니다.", name))
		return
	}
	s.ChannelMessageSendEmbed(channelID, ReportEmbed(rep))
}

// ReportEmbed renders a run report: counts, duration and the first failures.
func ReportEmbed(rep jobs.Report) *discordgo.MessageEmbed {
	color := colorOK
	if rep.Failed() > 0 || rep.Degraded() > 0 {
		color = colorWarn
	}
	if rep.Err != nil || rep.Error != "" {
		color = colorFailed
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "발송", Value: fmt.Sprintf("%d", rep.Sent()), Inline: true},
		{Name: "건너뜀", Value: fmt.Sprintf("%d", rep.Skipped()), Inline: true},
		{Name: "실패", Value: fmt.Sprintf("%d", rep.Failed()), Inline: true},
	}
	if d := rep.Degraded(); d > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "대체 문구 사용", Value: fmt.Sprintf("%d", d), Inline: true})
	}
	fields = append(fields, &discordgo.MessageEmbedField{Name: "소요 시간", Value: rep.Duration().Round(time.Millisecond).String(), Inline: true})

	var failed []string
	for _, it := range rep.Items {
		if it.Status != jobs.StatusFailed {
			continue
		}
		if len(failed) == maxFailNames {
			failed = append(failed, "…")
			break
		}
		failed = append(failed, fmt.Sprintf("%s: %s", it.SeniorName, it.Reason))
	}
	if len(failed) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "실패 목록", Value: strings.Join(failed, "\n")})
	}

	desc := ""
	if rep.Error != "" {
		desc = "중단됨: " + rep.Error
	}

	return &discordgo.MessageEmbed{
		Title:       "작업 결과: " + rep.Job,
		Description: desc,
		Color:       color,
		Fields:      fields,
		Timestamp:   rep.FinishedAt.UTC().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}
}

func sortedJobs(reports map[string]jobs.Report) []string {
	names := make([]string, 0, len(reports))
	for n := range reports {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
