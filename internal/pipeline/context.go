package pipeline

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	runIDKey   contextKey = "run_id"
	sectionKey contextKey = "section"
	fileKey    contextKey = "file"
)

// NewRunID returns a fresh identifier for a conversion run.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID annotates context with the conversion run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSection annotates context with the split section being written.
func WithSection(ctx context.Context, section string) context.Context {
	if section == "" {
		return ctx
	}
	return context.WithValue(ctx, sectionKey, section)
}

// SectionFromContext returns the section name if present.
func SectionFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sectionKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithFile annotates context with the corpus file being converted.
func WithFile(ctx context.Context, file string) context.Context {
	if file == "" {
		return ctx
	}
	return context.WithValue(ctx, fileKey, file)
}

// FileFromContext returns the corpus file if present.
func FileFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(fileKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
