package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackfiller struct {
	enabled bool
	calls   atomic.Int32
	limit   atomic.Int32
	err     error
}

func (f *fakeBackfiller) Enabled() bool { return f.enabled }

func (f *fakeBackfiller) Backfill(_ context.Context, limit int) (int, error) {
	f.calls.Add(1)
	f.limit.Store(int32(limit))
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	_, err := NewScheduler("every now and then", &fakeBackfiller{}, nil, nil)
	assert.Error(t, err)
}

func TestRunBackfillSkipsWhenDisabled(t *testing.T) {
	backfiller := &fakeBackfiller{enabled: false}
	s, err := NewScheduler("", backfiller, nil, nil)
	require.NoError(t, err)

	attached, err := s.RunBackfill(context.Background())
	require.NoError(t, err)
	assert.Zero(t, attached)
	assert.Zero(t, backfiller.calls.Load())
}

func TestRunBackfillUsesBatchSize(t *testing.T) {
	backfiller := &fakeBackfiller{enabled: true}
	s, err := NewScheduler("", backfiller, nil, nil)
	require.NoError(t, err)

	attached, err := s.RunBackfill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, attached)
	assert.Equal(t, int32(BackfillBatchSize), backfiller.limit.Load())

	backfiller.err = errors.New("db down")
	_, err = s.RunBackfill(context.Background())
	assert.Error(t, err)
}

func TestScheduledBackfillRuns(t *testing.T) {
	backfiller := &fakeBackfiller{enabled: true}
	s, err := NewScheduler("@every 1s", backfiller, nil, nil)
	require.NoError(t, err)

	s.Start()
	t.Cleanup(s.Stop)

	status := s.Status()
	assert.True(t, status.Running)
	assert.Equal(t, 1, status.Jobs)
	assert.Eventually(t, func() bool { return backfiller.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
