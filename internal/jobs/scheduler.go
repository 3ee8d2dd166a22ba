package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adhocore/gronx"
)

var (
	ErrUnknownJob = errors.New("unknown job")
	ErrJobRunning = errors.New("job already running")
)

type Job interface {
	Name() string
	Run(ctx context.Context) Report
}

// Listener receives every finished report, scheduled or manual.
type Listener func(Report)

// NextRun returns the first tick of expr strictly after t, in t's location.
func NextRun(expr string, t time.Time) (time.Time, error) {
	return gronx.NextTickAfter(expr, t, false)
}

type entry struct {
	job     Job
	cron    string
	running atomic.Bool
}

// Scheduler fires each registered job on its own cron expression. Jobs run in
// separate goroutines and are not serialised against each other; a job whose
// previous run is still in progress skips the tick.
type Scheduler struct {
	entries   map[string]*entry
	listeners []Listener
	now       func() time.Time
	logger    *slog.Logger

	mu   sync.Mutex
	last map[string]Report

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(now func() time.Time, logger *slog.Logger) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		entries: make(map[string]*entry),
		now:     now,
		logger:  logger.With("component", "jobs.scheduler"),
		last:    make(map[string]Report),
	}
}

func (s *Scheduler) Register(job Job, cronExpr string) error {
	if !gronx.New().IsValid(cronExpr) {
		return fmt.Errorf("job %s: invalid cron expression %q", job.Name(), cronExpr)
	}
	if _, dup := s.entries[job.Name()]; dup {
		return fmt.Errorf("job %s already registered", job.Name())
	}
	s.entries[job.Name()] = &entry{job: job, cron: cronExpr}
	return nil
}

// OnReport must be called before Start.
func (s *Scheduler) OnReport(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Scheduler) Jobs() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	for _, e := range s.entries {
		s.wg.Add(1)
		go s.loop(ctx, e)
		s.logger.Info("job scheduled", "job", e.job.Name(), "cron", e.cron)
	}
}

// Stop cancels pending ticks and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// RunNow runs the named job synchronously outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) (Report, error) {
	e, ok := s.entries[name]
	if !ok {
		return Report{}, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.execute(ctx, e)
}

// LastReports returns the most recent report per job.
func (s *Scheduler) LastReports() map[string]Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Report, len(s.last))
	for k, v := range s.last {
		out[k] = v
	}
	return out
}

func (s *Scheduler) loop(ctx context.Context, e *entry) {
	defer s.wg.Done()
	ref := s.now()
	for {
		next, err := NextRun(e.cron, ref)
		if err != nil {
			s.logger.Error("next tick failed", "job", e.job.Name(), "cron", e.cron, "error", err)
			if !wait(ctx, 30*time.Second) {
				return
			}
			ref = s.now()
			continue
		}

		s.logger.Info("next run", "job", e.job.Name(), "at", next)
		if !wait(ctx, next.Sub(s.now())) {
			return
		}
		if _, err := s.execute(ctx, e); err != nil {
			s.logger.Warn("scheduled run skipped", "job", e.job.Name(), "error", err)
		}

		// The timer may fire before the wall clock reaches next; never fire the same tick twice.
		ref = s.now()
		if ref.Before(next) {
			ref = next
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, e *entry) (Report, error) {
	if !e.running.CompareAndSwap(false, true) {
		return Report{}, fmt.Errorf("%w: %s", ErrJobRunning, e.job.Name())
	}
	defer e.running.Store(false)

	rep := e.job.Run(ctx)

	s.mu.Lock()
	s.last[rep.Job] = rep
	s.mu.Unlock()

	for _, l := range s.listeners {
		l(rep)
	}
	return rep, nil
}

func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
