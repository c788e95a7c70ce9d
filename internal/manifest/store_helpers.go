package manifest

import (
	"database/sql"
	"errors"
	"time"
)

const runColumns = "id, command, input_dir, output_dir, log_path, status, error_message, started_at, finished_at"

const fileColumns = "id, run_id, path, section, sentences_in, sentences_out, tokens_out, status, error_message, recorded_at"

type scanner interface{ Scan(dest ...any) error }

func scanRun(row scanner) (*Run, error) {
	var (
		id, command, statusStr, startedRaw string
		inputDir, outputDir, logPath       sql.NullString
		errorMessage, finishedRaw          sql.NullString
	)
	if err := row.Scan(&id, &command, &inputDir, &outputDir, &logPath, &statusStr, &errorMessage, &startedRaw, &finishedRaw); err != nil {
		return nil, err
	}
	run := &Run{
		ID:           id,
		Command:      command,
		InputDir:     inputDir.String,
		OutputDir:    outputDir.String,
		LogPath:      logPath.String,
		Status:       RunStatus(statusStr),
		ErrorMessage: errorMessage.String,
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finished, err := parseTimeString(finishedRaw.String); err == nil {
		run.FinishedAt = finished
	}
	return run, nil
}

func scanFile(row scanner) (*File, error) {
	var (
		f                     File
		section, errorMessage sql.NullString
		recordedRaw           string
	)
	if err := row.Scan(&f.ID, &f.RunID, &f.Path, &section, &f.SentencesIn, &f.SentencesOut, &f.TokensOut, &f.Status, &errorMessage, &recordedRaw); err != nil {
		return nil, err
	}
	f.Section = section.String
	f.ErrorMessage = errorMessage.String
	if recorded, err := parseTimeString(recordedRaw); err == nil {
		f.RecordedAt = recorded
	}
	return &f, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
