package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"swbd/internal/config"
	"swbd/internal/logging"
	"swbd/internal/manifest"
	"swbd/internal/outdir"
	"swbd/internal/pipeline"
	"swbd/internal/preflight"
)

// runSpec describes one recorded conversion run.
type runSpec struct {
	command   string
	inputDir  string
	outputDir string
	// converter runs the preflight checks before any file is read.
	converter bool
}

// runEnv is what a conversion body receives.
type runEnv struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder *manifest.Recorder
	out      *outdir.Dir
}

type runBody func(ctx context.Context, env *runEnv) (manifest.Summary, error)

// runConversion wraps body with the run lifecycle: preflight, run log,
// manifest entry, output lock, and the closing summary line on stderr.
func (c *commandContext) runConversion(cmd *cobra.Command, spec runSpec, body runBody) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	base, err := c.logger()
	if err != nil {
		return err
	}
	if spec.converter {
		if err := requirePreflight(cmd.Context(), cfg); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := pipeline.NewRunID()
	ctx = pipeline.WithRunID(ctx, runID)
	logger, runLog, err := logging.WithRunLog(base, cfg.Paths.LogDir, spec.command, runID, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer runLog.Close()

	store, err := manifest.Open(cfg)
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	defer store.Close()

	run := manifest.Run{
		ID:        runID,
		Command:   spec.command,
		InputDir:  spec.inputDir,
		OutputDir: spec.outputDir,
	}
	if runLog != nil {
		run.LogPath = runLog.Path
	}
	if _, err := store.StartRun(ctx, run); err != nil {
		return err
	}

	env := &runEnv{cfg: cfg, logger: logger, recorder: store.Recorder(runID)}
	if spec.outputDir != "" {
		out, err := outdir.Open(spec.outputDir)
		if err != nil {
			finishRun(store, runID, err, logger)
			return err
		}
		env.out = out
	}

	summary, runErr := body(ctx, env)
	if env.out != nil {
		if closeErr := env.out.Close(); closeErr != nil && runErr == nil {
			runErr = closeErr
		}
	}
	finished := finishRun(store, runID, runErr, logger)

	fmt.Fprintln(cmd.ErrOrStderr(), summaryLine(runID, summary, finished))
	if runErr != nil {
		return runErr
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed; see `swbd runs show %s`", summary.Failed, shortID(runID))
	}
	return nil
}

// finishRun closes the manifest entry with a fresh context so an interrupted
// run is still recorded.
func finishRun(store *manifest.Store, runID string, runErr error, logger *slog.Logger) *manifest.Run {
	run, err := store.FinishRun(context.Background(), runID, runErr)
	if err != nil {
		logger.Error("record run result failed", logging.Error(err))
		return nil
	}
	return run
}

func requirePreflight(ctx context.Context, cfg *config.Config) error {
	failed := preflight.Failed(preflight.RunAll(ctx, cfg))
	if len(failed) == 0 {
		return nil
	}
	parts := make([]string, 0, len(failed))
	for _, r := range failed {
		parts = append(parts, r.Name+": "+r.Detail)
	}
	return pipeline.Wrap(pipeline.ErrExternalTool, "preflight", "check converter", strings.Join(parts, "; "), nil)
}

func summaryLine(runID string, s manifest.Summary, run *manifest.Run) string {
	status := s.Status()
	if run != nil {
		status = run.Status
	}
	return fmt.Sprintf("Run %s %s: %d files (%d ok, %d skipped, %d failed), %d sentences, %d tokens",
		shortID(runID), status, s.Files, s.OK, s.Skipped, s.Failed, s.SentencesOut, s.TokensOut)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
