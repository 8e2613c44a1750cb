package history

import "time"

// Status represents the lifecycle of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusRunning,
	StatusCompleted,
	StatusFailed,
}

// Job is one recorded processing run.
type Job struct {
	// ID is a random UUID assigned at creation.
	ID string
	// Command names the operation (video, audio, subtitles, transcribe, srt).
	Command string
	// Input is the URL or local path the job started from.
	Input string
	// OutputPath is the final artifact, set on completion.
	OutputPath string
	Status     Status
	// ErrorMessage holds the failure reason for failed jobs.
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Terminal reports whether the job has finished, successfully or not.
func (j *Job) Terminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}
