package pipeline

import (
	"strings"
	"time"
)

// JobStatus represents the state of one package's doc generation.
type JobStatus string

const (
	StatusQueued       JobStatus = "queued"
	StatusGenerating   JobStatus = "generating"
	StatusTransforming JobStatus = "transforming"
	StatusWriting      JobStatus = "writing"
	StatusCompleted    JobStatus = "completed"
	StatusFailed       JobStatus = "failed"
)

// Job tracks the generation of one package's reference page.
type Job struct {
	ID      string    `json:"job_id"`
	Package string    `json:"package"`
	Path    []string  `json:"path"`
	Status  JobStatus `json:"status"`

	Members     int    `json:"members"`
	OutputDir   string `json:"output_dir,omitempty"`
	ContentHash string `json:"content_hash,omitempty"`

	Errors    []string  `json:"errors"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newJob(pkg string, path []string) *Job {
	now := time.Now()
	return &Job{
		ID:        generateULID(),
		Package:   pkg,
		Path:      path,
		Status:    StatusQueued,
		Errors:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetStatus moves the job to status.
func (j *Job) SetStatus(status JobStatus) {
	j.Status = status
	j.UpdatedAt = time.Now()
}

// Fail records err and marks the job failed.
func (j *Job) Fail(err error) {
	j.Errors = append(j.Errors, err.Error())
	j.SetStatus(StatusFailed)
}

// Summary is the outcome of a run.
type Summary struct {
	Jobs []*Job `json:"jobs"`
}

// Failed returns the jobs that did not complete.
func (s Summary) Failed() []*Job {
	var out []*Job
	for _, j := range s.Jobs {
		if j.Status == StatusFailed {
			out = append(out, j)
		}
	}
	return out
}

// Completed returns the number of packages written.
func (s Summary) Completed() int {
	n := 0
	for _, j := range s.Jobs {
		if j.Status == StatusCompleted {
			n++
		}
	}
	return n
}

func failedNames(jobs []*Job) string {
	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.Package
	}
	return strings.Join(names, ", ")
}
