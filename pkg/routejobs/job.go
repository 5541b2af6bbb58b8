package routejobs

import (
	"time"

	"github.com/travigo/transitrouter/pkg/routing"
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Finished() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

type JobProgress struct {
	Phase     string `json:"phase"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

func progressFrom(progress routing.Progress) *JobProgress {
	total, completed := routing.Counts(progress)

	return &JobProgress{
		Phase:     progress.Phase().String(),
		Total:     total,
		Completed: completed,
	}
}

// Job is a routing request handled by a background worker. Clients poll it
// until Status is finished.
type Job struct {
	ID         string             `json:"id"`
	Parameters routing.Parameters `json:"parameters"`

	Status    Status         `json:"status"`
	Progress  *JobProgress   `json:"progress,omitempty"`
	Route     *routing.Route `json:"route,omitempty"`
	Error     string         `json:"error,omitempty"`
	Cancelled bool           `json:"cancelled"`

	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt time.Time  `json:"modified_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
