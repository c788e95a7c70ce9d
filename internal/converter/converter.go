package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"swbd/internal/config"
	"swbd/internal/conll"
	"swbd/internal/deps"
	"swbd/internal/logging"
	"swbd/internal/pipeline"
)

// Converter turns bracketed trees into CoNLL-X dependency text. name is a
// stem used for scratch files.
type Converter interface {
	Convert(ctx context.Context, name, trees string) (string, error)
}

// Func adapts an ordinary function to the Converter interface.
type Func func(ctx context.Context, name, trees string) (string, error)

// Convert calls f.
func (f Func) Convert(ctx context.Context, name, trees string) (string, error) {
	return f(ctx, name, trees)
}

// Stanford runs EnglishGrammaticalStructure through java.
type Stanford struct {
	Java      string
	Dir       string
	ClassPath string
	MainClass string
	Memory    string
	Timeout   time.Duration
	ExtraArgs []string
	WorkDir   string
	Logger    *slog.Logger
}

// NewStanford builds a Stanford converter from config.
func NewStanford(cfg *config.Config, logger *slog.Logger) *Stanford {
	return &Stanford{
		Java:      deps.ResolveJava(cfg.JavaBinary()),
		Dir:       cfg.Converter.Dir,
		ClassPath: cfg.Converter.ClassPath,
		MainClass: cfg.Converter.MainClass,
		Memory:    cfg.Converter.Memory,
		Timeout:   time.Duration(cfg.Converter.TimeoutSeconds) * time.Second,
		ExtraArgs: append([]string(nil), cfg.Converter.ExtraArgs...),
		WorkDir:   cfg.Paths.WorkDir,
		Logger:    logging.NewComponentLogger(logger, "converter"),
	}
}

// Args returns the java arguments used to convert treeFile.
func (s *Stanford) Args(treeFile string) []string {
	args := make([]string, 0, 6+len(s.ExtraArgs))
	if mem := strings.TrimSpace(s.Memory); mem != "" {
		args = append(args, "-mx"+mem)
	}
	args = append(args, "-cp", s.ClassPath, s.MainClass, "-treeFile", treeFile)
	return append(args, s.ExtraArgs...)
}

// Convert writes trees to <work_dir>/<name>.mrg, runs the converter from its
// directory, and stores stdout as <work_dir>/<name>.dep.
func (s *Stanford) Convert(ctx context.Context, name, trees string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", pipeline.Wrap(pipeline.ErrValidation, "converter", "prepare", "empty scratch name", nil)
	}
	workDir, err := filepath.Abs(s.WorkDir)
	if err != nil {
		return "", pipeline.Wrap(pipeline.ErrConfiguration, "converter", "prepare", "resolve work dir", err)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", pipeline.Wrap(pipeline.ErrConfiguration, "converter", "prepare", "create work dir", err)
	}
	treeFile := filepath.Join(workDir, name+".mrg")
	depFile := filepath.Join(workDir, name+".dep")
	if err := os.WriteFile(treeFile, []byte(trees), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", treeFile, err)
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	java := strings.TrimSpace(s.Java)
	if java == "" {
		java = "java"
	}
	args := s.Args(treeFile)
	cmd := exec.CommandContext(ctx, java, args...)
	cmd.Dir = s.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger := logging.WithContext(ctx, s.Logger)
	logger.Debug("running dependency converter",
		logging.String("tree_file", treeFile),
		logging.String("args", strings.Join(args, " ")),
	)
	start := time.Now()
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			detail = fmt.Sprintf("timed out after %s", s.Timeout)
		}
		return "", pipeline.Wrap(pipeline.ErrExternalTool, "converter", "run",
			fmt.Sprintf("%s %s: %s", java, s.MainClass, detail), err)
	}

	out := stdout.String()
	if err := os.WriteFile(depFile, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", depFile, err)
	}
	logger.Debug("dependency converter finished",
		logging.Duration("elapsed", time.Since(start)),
		logging.Int("sentences", len(SplitSentences(out))),
	)
	return out, nil
}

// SplitSentences splits converter output into sentence blocks.
func SplitSentences(out string) []string {
	return conll.Blocks(out)
}
