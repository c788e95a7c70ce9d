package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrAlignment     = errors.New("alignment error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Outcome names the manifest status a failed file should be recorded with.
func Outcome(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrAlignment), errors.Is(err, ErrValidation):
		return StatusSkipped
	default:
		return StatusFailed
	}
}

// Hint suggests a next step for a failed file.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAlignment):
		return "the converter output or .dps file does not match the trees; use --keep-going to skip the file"
	case errors.Is(err, ErrExternalTool):
		return "check the converter installation with `swbd check`"
	case errors.Is(err, ErrNotFound):
		return "check the corpus layout under the input directory"
	case errors.Is(err, ErrConfiguration):
		return "check the config file with `swbd config validate`"
	default:
		return "inspect the file named in the error"
	}
}

// File status values recorded in the run manifest.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "conversion failure"
	}
	return strings.Join(parts, ": ")
}
