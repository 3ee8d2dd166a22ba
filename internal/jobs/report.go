package jobs

import "time"

type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// ItemResult is the outcome of one senior within a run.
type ItemResult struct {
	SeniorID   string `json:"seniorId"`
	SeniorName string `json:"seniorName"`
	Status     Status `json:"status"`
	Reason     string `json:"reason,omitempty"`
	// Degraded marks a delivered item whose content used a fallback.
	Degraded bool `json:"degraded,omitempty"`
}

// Report collects every item of one job run. Err is set only when the run
// itself stopped early, e.g. the senior listing failed.
type Report struct {
	Job        string       `json:"job"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Items      []ItemResult `json:"items"`
	// Removed counts rows deleted by housekeeping jobs.
	Removed int64  `json:"removed,omitempty"`
	Err     error  `json:"-"`
	Error   string `json:"error,omitempty"`
}

func newReport(job string, started time.Time) *Report {
	return &Report{Job: job, StartedAt: started, Items: []ItemResult{}}
}

func (r *Report) add(item ItemResult) {
	r.Items = append(r.Items, item)
}

func (r *Report) finish(at time.Time, err error) Report {
	r.FinishedAt = at
	if err != nil {
		r.Err = err
		r.Error = err.Error()
	}
	return *r
}

func (r Report) Count(status Status) int {
	n := 0
	for _, it := range r.Items {
		if it.Status == status {
			n++
		}
	}
	return n
}

func (r Report) Sent() int    { return r.Count(StatusSent) }
func (r Report) Skipped() int { return r.Count(StatusSkipped) }
func (r Report) Failed() int  { return r.Count(StatusFailed) }

func (r Report) Degraded() int {
	n := 0
	for _, it := range r.Items {
		if it.Degraded {
			n++
		}
	}
	return n
}

func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
