package manifest

import "context"

// Recorder binds a store to one run so conversion code can report files
// without knowing the run id.
type Recorder struct {
	store *Store
	runID string
}

// Recorder returns a Recorder for runID.
func (s *Store) Recorder(runID string) *Recorder {
	return &Recorder{store: s, runID: runID}
}

// RunID returns the bound run id.
func (r *Recorder) RunID() string {
	if r == nil {
		return ""
	}
	return r.runID
}

// Record stores result. A nil Recorder discards it.
func (r *Recorder) Record(ctx context.Context, result FileResult) error {
	if r == nil || r.store == nil {
		return nil
	}
	_, err := r.store.RecordFile(ctx, r.runID, result)
	return err
}

// Sink receives one result per processed input file.
type Sink interface {
	Record(ctx context.Context, result FileResult) error
}

// Report counts result in summary and hands it to sink, which may be nil.
// It returns the error that should end the run: a sink failure, or the
// file's own error unless keepGoing is set.
func Report(ctx context.Context, sink Sink, summary *Summary, result FileResult, keepGoing bool) error {
	summary.Add(result)
	if sink != nil {
		if err := sink.Record(ctx, result); err != nil {
			return err
		}
	}
	if result.Err != nil && !keepGoing {
		return result.Err
	}
	return nil
}
