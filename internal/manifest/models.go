package manifest

import (
	"time"

	"swbd/internal/pipeline"
)

// RunStatus represents the lifecycle of a run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunPartial   RunStatus = "partial"
	RunFailed    RunStatus = "failed"
)

// Run is one invocation of a conversion command.
type Run struct {
	ID           string
	Command      string
	InputDir     string
	OutputDir    string
	LogPath      string
	Status       RunStatus
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Duration returns the wall time of a finished run.
func (r *Run) Duration() time.Duration {
	if r == nil || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// File is one processed input file of a run.
type File struct {
	ID           int64
	RunID        string
	Path         string
	Section      string
	SentencesIn  int
	SentencesOut int
	TokensOut    int
	Status       string
	ErrorMessage string
	RecordedAt   time.Time
}

// FileResult is what a command reports after processing one input.
type FileResult struct {
	Path         string
	Section      string
	SentencesIn  int
	SentencesOut int
	TokensOut    int
	Err          error
}

// Summary aggregates the files of a run.
type Summary struct {
	Files        int
	OK           int
	Skipped      int
	Failed       int
	SentencesOut int
	TokensOut    int
}

// Status derives the final run status from the recorded files.
func (s Summary) Status() RunStatus {
	switch {
	case s.Failed > 0 && s.OK == 0:
		return RunFailed
	case s.Failed > 0 || s.Skipped > 0:
		return RunPartial
	default:
		return RunCompleted
	}
}

// Add counts one file result.
func (s *Summary) Add(r FileResult) {
	s.add(pipeline.Outcome(r.Err), 1, r.SentencesOut, r.TokensOut)
}

func (s *Summary) add(status string, files, sentencesOut, tokensOut int) {
	s.Files += files
	switch status {
	case pipeline.StatusOK:
		s.OK += files
	case pipeline.StatusSkipped:
		s.Skipped += files
	default:
		s.Failed += files
	}
	s.SentencesOut += sentencesOut
	s.TokensOut += tokensOut
}
