package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wldnd519/BE/internal/jobs"
)

func TestPrintReport(t *testing.T) {
	start := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	rep := jobs.Report{
		Job:        jobs.JobSummary,
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
		Items: []jobs.ItemResult{
			{SeniorName: "A", Status: jobs.StatusSent},
			{SeniorName: "B", Status: jobs.StatusSent, Degraded: true, Reason: "대화 요약 생성 실패: timeout"},
			{SeniorName: "C", Status: jobs.StatusFailed, Reason: "smtp 535"},
		},
		Err:   errors.New("db down"),
		Error: "db down",
	}

	var buf bytes.Buffer
	printReport(&buf, rep)

	want := "summary: 2 sent, 0 skipped, 1 failed, 1 degraded in 1.5s\n" +
		"  sent     B: 대화 요약 생성 실패: timeout\n" +
		"  failed   C: smtp 535\n" +
		"aborted: db down\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintReport_Removed(t *testing.T) {
	start := time.Date(2024, 5, 10, 4, 30, 0, 0, time.UTC)
	rep := jobs.Report{Job: jobs.JobSessionCleanup, StartedAt: start, FinishedAt: start.Add(20 * time.Millisecond), Removed: 1234}

	var buf bytes.Buffer
	printReport(&buf, rep)

	assert.Equal(t, "session-cleanup: 0 sent, 0 skipped, 0 failed, 0 degraded in 20ms\n  removed 1,234 rows\n", buf.String())
}
