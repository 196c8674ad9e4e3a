package jobs

import (
	"context"
	"time"
)

type (
	nameDelegate     func() string
	intervalDelegate func() time.Duration
	runDelegate      func(context.Context) error
)

type mockJob struct {
	nameFn     nameDelegate
	intervalFn intervalDelegate
	runFn      runDelegate
}

func (m *mockJob) Name() string {
	if m.nameFn != nil {
		return m.nameFn()
	}

	return ""
}

func (m *mockJob) Interval() time.Duration {
	if m.intervalFn != nil {
		return m.intervalFn()
	}

	return 0
}

func (m *mockJob) Run(ctx context.Context) error {
	if m.runFn != nil {
		return m.runFn(ctx)
	}

	return nil
}

type mockRefresher struct {
	refreshFn func(context.Context) error
}

func (m *mockRefresher) RefreshCatalog(ctx context.Context) error {
	if m.refreshFn != nil {
		return m.refreshFn(ctx)
	}

	return nil
}

type mockSweeper struct {
	sweepFn func() int
}

func (m *mockSweeper) Sweep() int {
	if m.sweepFn != nil {
		return m.sweepFn()
	}

	return 0
}
