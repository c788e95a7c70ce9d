package testsupport

import (
	"context"
	"testing"

	"swbd/internal/config"
	"swbd/internal/manifest"
)

// MustOpenManifest opens a manifest.Store for tests and registers cleanup.
func MustOpenManifest(t testing.TB, cfg *config.Config) *manifest.Store {
	t.Helper()

	store, err := manifest.Open(cfg)
	if err != nil {
		t.Fatalf("manifest.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// StartRun inserts a running run for tests using the provided store.
func StartRun(t testing.TB, store *manifest.Store, id, command string) *manifest.Run {
	t.Helper()

	run, err := store.StartRun(context.Background(), manifest.Run{ID: id, Command: command})
	if err != nil {
		t.Fatalf("store.StartRun: %v", err)
	}
	return run
}
