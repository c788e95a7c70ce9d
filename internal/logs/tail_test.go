package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"swbd/internal/logs"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timings-run.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append log: %v", err)
	}
	_ = f.Close()
}

func TestLastLines(t *testing.T) {
	path := writeLog(t, "a\nb\nc\n")

	lines, offset, err := logs.Last(path, 2)
	if err != nil {
		t.Fatalf("Last returned error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "b" || lines[1] != "c" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if offset != 6 {
		t.Fatalf("offset got %d want 6", offset)
	}

	lines, _, err = logs.Last(path, 0)
	if err != nil || len(lines) != 3 {
		t.Fatalf("expected all lines, got %#v (%v)", lines, err)
	}
}

func TestLastMissingFile(t *testing.T) {
	lines, offset, err := logs.Last(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil || lines != nil || offset != 0 {
		t.Fatalf("got %#v %d %v", lines, offset, err)
	}
}

func TestSinceLeavesPartialLine(t *testing.T) {
	path := writeLog(t, "a\n")
	appendLog(t, path, "b\nhalf")

	lines, offset, err := logs.Since(path, 2)
	if err != nil {
		t.Fatalf("Since returned error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "b" || offset != 4 {
		t.Fatalf("got %#v at %d", lines, offset)
	}

	appendLog(t, path, " done\n")
	lines, offset, err = logs.Since(path, offset)
	if err != nil {
		t.Fatalf("Since returned error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "half done" || offset != 14 {
		t.Fatalf("got %#v at %d", lines, offset)
	}
}

func TestFollowStopsWhenDone(t *testing.T) {
	path := writeLog(t, "start\n")
	_, offset, err := logs.Last(path, 1)
	if err != nil {
		t.Fatalf("Last returned error: %v", err)
	}

	var finished atomic.Bool
	var got []string
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(context.Background(), path, offset, logs.FollowOptions{
			Interval: 10 * time.Millisecond,
			Done:     finished.Load,
		}, func(lines []string) {
			got = append(got, lines...)
		})
	}()

	time.Sleep(50 * time.Millisecond)
	appendLog(t, path, "later\n")
	finished.Store(true)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Follow returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Follow did not return")
	}
	if len(got) != 1 || got[0] != "later" {
		t.Fatalf("unexpected follow lines: %#v", got)
	}
}

func TestFollowHonoursCancel(t *testing.T) {
	path := writeLog(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := logs.Follow(ctx, path, 0, logs.FollowOptions{Interval: time.Millisecond}, func([]string) {})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
