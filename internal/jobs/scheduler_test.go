package jobs

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wldnd519/BE/internal/logging"
)

type stubJob struct {
	name    string
	runs    int
	mu      sync.Mutex
	started chan struct{}
	release chan struct{}
}

func (j *stubJob) Name() string { return j.name }

func (j *stubJob) runCount() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.runs
}

func (j *stubJob) Run(ctx context.Context) Report {
	j.mu.Lock()
	j.runs++
	j.mu.Unlock()
	if j.started != nil {
		j.started <- struct{}{}
	}
	if j.release != nil {
		<-j.release
	}
	rep := newReport(j.name, runAt)
	rep.add(ItemResult{SeniorID: "1", Status: StatusSent})
	return rep.finish(runAt.Add(time.Second), nil)
}

func TestNextRun(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)

	next, err := NextRun("0 9 * * *", time.Date(2024, 5, 10, 8, 59, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 10, 9, 0, 0, 0, loc), next)

	next, err = NextRun("0 9 * * *", time.Date(2024, 5, 10, 9, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 11, 9, 0, 0, 0, loc), next)
}

func TestScheduler_Register(t *testing.T) {
	s := NewScheduler(nil, discard)

	require.NoError(t, s.Register(&stubJob{name: "checkin"}, "0 9 * * *"))
	assert.Error(t, s.Register(&stubJob{name: "checkin"}, "0 9 * * *"))
	assert.Error(t, s.Register(&stubJob{name: "summary"}, "not a cron"))
	require.NoError(t, s.Register(&stubJob{name: "summary"}, "0 21 * * *"))

	assert.Equal(t, []string{"checkin", "summary"}, s.Jobs())
}

func TestScheduler_RunNow(t *testing.T) {
	s := NewScheduler(nil, discard)
	job := &stubJob{name: "checkin"}
	require.NoError(t, s.Register(job, "0 9 * * *"))

	var seen []Report
	s.OnReport(func(r Report) { seen = append(seen, r) })

	rep, err := s.RunNow(context.Background(), "checkin")
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Sent())
	assert.Equal(t, 1, job.runs)
	require.Len(t, seen, 1)
	assert.Equal(t, "checkin", seen[0].Job)
	assert.Contains(t, s.LastReports(), "checkin")

	_, err = s.RunNow(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownJob)
}

func TestScheduler_JobDoesNotOverlapItself(t *testing.T) {
	s := NewScheduler(nil, discard)
	job := &stubJob{name: "summary", started: make(chan struct{}), release: make(chan struct{})}
	require.NoError(t, s.Register(job, "0 9 * * *"))

	done := make(chan error, 1)
	go func() {
		_, err := s.RunNow(context.Background(), "summary")
		done <- err
	}()
	<-job.started

	_, err := s.RunNow(context.Background(), "summary")
	assert.ErrorIs(t, err, ErrJobRunning)

	close(job.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, job.runs)
}

func TestScheduler_StopReturnsBeforeFirstTick(t *testing.T) {
	s := NewScheduler(nil, discard)
	job := &stubJob{name: "checkin"}
	require.NoError(t, s.Register(job, "0 9 1 1 *"))

	s.Start(context.Background())
	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Equal(t, 0, job.runs)
}

func TestWait(t *testing.T) {
	assert.True(t, wait(context.Background(), 0))
	assert.True(t, wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, wait(ctx, time.Hour))
	assert.False(t, wait(ctx, 0))
}

// shiftedClock runs at wall speed from a chosen instant.
type shiftedClock struct{ offset atomic.Int64 }

func (c *shiftedClock) now() time.Time {
	return time.Now().Add(time.Duration(c.offset.Load())).In(seoul)
}

func (c *shiftedClock) setBefore(tick time.Time, lead time.Duration) {
	c.offset.Store(int64(tick.Add(-lead).Sub(time.Now())))
}

var nineAM = time.Date(2024, 5, 10, 9, 0, 0, 0, seoul)

func TestScheduler_LoopFiresEachJobOnItsTick(t *testing.T) {
	clock := &shiftedClock{}
	s := NewScheduler(clock.now, discard)
	checkin := &stubJob{name: JobCheckIn, started: make(chan struct{}, 1), release: make(chan struct{})}
	summary := &stubJob{name: JobSummary}
	require.NoError(t, s.Register(checkin, "0 9 * * *"))
	require.NoError(t, s.Register(summary, "0 9 * * *"))

	var mu sync.Mutex
	var finished []string
	s.OnReport(func(r Report) {
		mu.Lock()
		finished = append(finished, r.Job)
		mu.Unlock()
	})

	clock.setBefore(nineAM, 50*time.Millisecond)
	s.Start(context.Background())

	select {
	case <-checkin.started:
	case <-time.After(2 * time.Second):
		t.Fatal("checkin did not fire")
	}
	// checkin is still blocked; summary runs alongside it.
	require.Eventually(t, func() bool { return summary.runCount() == 1 }, 2*time.Second, 5*time.Millisecond)

	close(checkin.release)
	require.Eventually(t, func() bool { return len(s.LastReports()) == 2 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	assert.Equal(t, 1, checkin.runCount())
	assert.Equal(t, 1, summary.runCount())
	mu.Lock()
	assert.ElementsMatch(t, []string{JobSummary, JobCheckIn}, finished)
	mu.Unlock()
}

func TestScheduler_TickDuringRunIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	clock := &shiftedClock{}
	s := NewScheduler(clock.now, logging.NewWithWriter(&buf, "development", "info"))
	job := &stubJob{name: JobSummary, started: make(chan struct{}, 1), release: make(chan struct{})}
	require.NoError(t, s.Register(job, "0 9 * * *"))

	done := make(chan error, 1)
	go func() {
		_, err := s.RunNow(context.Background(), JobSummary)
		done <- err
	}()
	<-job.started

	clock.setBefore(nineAM, 50*time.Millisecond)
	s.Start(context.Background())
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, 1, job.runCount())

	close(job.release)
	require.NoError(t, <-done)
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	assert.Equal(t, 1, job.runCount())
	assert.True(t, strings.Contains(buf.String(), "scheduled run skipped"), buf.String())
}

func TestScheduler_EarlyWakeDoesNotRepeatTick(t *testing.T) {
	// A clock stuck just short of the tick behaves like a timer that woke early.
	s := NewScheduler(fixedClock(nineAM.Add(-50*time.Millisecond)), discard)
	job := &stubJob{name: JobCheckIn}
	require.NoError(t, s.Register(job, "0 9 * * *"))

	s.Start(context.Background())
	require.Eventually(t, func() bool { return job.runCount() >= 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	assert.Equal(t, 1, job.runCount())
}
