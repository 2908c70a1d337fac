// E-Commerce Product Recommender - Hybrid Catalog Recommendation Service
// Copyright 2026 Iggniite
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Iggniite/E-commerce-Product-Recommender

package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Iggniite/E-commerce-Product-Recommender/internal/recommend"
)

// fakeEngine counts rebuilds and fails the first failFirst attempts.
type fakeEngine struct {
	mu        sync.Mutex
	rebuilds  int
	failFirst int
}

func (f *fakeEngine) Rebuild(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rebuilds++
	if f.rebuilds <= f.failFirst {
		return errors.New("dataset not available")
	}
	return nil
}

func (f *fakeEngine) Status() recommend.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return recommend.Status{
		Ready:           f.rebuilds > f.failFirst,
		SnapshotVersion: f.rebuilds,
	}
}

func (f *fakeEngine) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rebuilds
}

func TestSnapshotServiceStartupRetry(t *testing.T) {
	engine := &fakeEngine{failFirst: 2}
	svc := NewSnapshotService(engine, SnapshotServiceConfig{
		RetryDelay: 10 * time.Millisecond,
	}, zerolog.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	// Two failures then a success: three attempts total.
	deadline := time.After(2 * time.Second)
	for engine.count() < 3 {
		select {
		case <-deadline:
			t.Fatalf("rebuild count = %d, want 3 before deadline", engine.count())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestSnapshotServicePeriodicReload(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewSnapshotService(engine, SnapshotServiceConfig{
		ReloadInterval: 20 * time.Millisecond,
	}, zerolog.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for engine.count() < 3 {
		select {
		case <-deadline:
			t.Fatalf("rebuild count = %d, want at least 3 reloads", engine.count())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestSnapshotServiceNoReloadInterval(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewSnapshotService(engine, SnapshotServiceConfig{}, zerolog.New(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
	if got := engine.count(); got != 1 {
		t.Errorf("rebuild count = %d, want exactly 1 with reloads disabled", got)
	}
}

func TestSnapshotServiceString(t *testing.T) {
	svc := NewSnapshotService(&fakeEngine{}, SnapshotServiceConfig{}, zerolog.New(io.Discard))
	if svc.String() != "snapshot-loader" {
		t.Errorf("String() = %q", svc.String())
	}
}
