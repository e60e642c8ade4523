package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/user/moovie-semantic/internal/model"
)

func TestSeedSchedulerDisabled(t *testing.T) {
	seeder := funcSeeder(func(context.Context, int) []model.SeedResult {
		t.Error("disabled scheduler must not seed")
		return nil
	})
	if NewSeedScheduler(seeder, 0, 10, zap.NewNop()).Start(context.Background()) {
		t.Error("zero interval must not start the scheduler")
	}
	if NewSeedScheduler(seeder, time.Hour, 0, zap.NewNop()).Start(context.Background()) {
		t.Error("zero count must not start the scheduler")
	}
}

func TestSeedSchedulerRunsImmediatelyAndOnTick(t *testing.T) {
	var runs atomic.Int32
	var gotCount atomic.Int32
	seeder := funcSeeder(func(_ context.Context, count int) []model.SeedResult {
		gotCount.Store(int32(count))
		runs.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if !NewSeedScheduler(seeder, 20*time.Millisecond, 40, zap.NewNop()).Start(ctx) {
		t.Fatal("expected scheduler to start")
	}

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if runs.Load() < 2 {
		t.Fatalf("expected at least 2 runs, got %d", runs.Load())
	}
	if gotCount.Load() != 40 {
		t.Errorf("expected configured count 40, got %d", gotCount.Load())
	}
}

func TestSeedSchedulerSurvivesPanic(t *testing.T) {
	var runs atomic.Int32
	seeder := funcSeeder(func(context.Context, int) []model.SeedResult {
		if runs.Add(1) == 1 {
			panic("first run fails")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	NewSeedScheduler(seeder, 10*time.Millisecond, 1, zap.NewNop()).Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if runs.Load() < 2 {
		t.Fatal("scheduler must keep running after a panic")
	}
}
