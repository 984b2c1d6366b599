package payment

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"juanride/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedFetcher returns the queued statuses in order, repeating the last.
type scriptedFetcher struct {
	mu       sync.Mutex
	statuses []domain.IntentStatus
	calls    int
}

func (f *scriptedFetcher) FetchIntentStatus(ctx context.Context, intentID string) (domain.IntentStatus, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	idx := f.calls - 1
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	return f.statuses[idx], "gcash", nil
}

func (f *scriptedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition not reached in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestPoller_PaidAfterPolling(t *testing.T) {
	fetcher := &scriptedFetcher{statuses: []domain.IntentStatus{
		domain.IntentAwaitingPaymentMethod,
		domain.IntentProcessing,
		domain.IntentSucceeded,
	}}

	var paidCount atomic.Int32
	var paidMethod atomic.Value
	p := NewPoller(fetcher, 10*time.Millisecond, time.Second,
		func(ctx context.Context, intentID, method string) {
			paidCount.Add(1)
			paidMethod.Store(method)
		},
		func(ctx context.Context, intentID string) {
			t.Error("onFailed must not fire for a paid intent")
		},
	)
	defer p.Stop()

	p.Watch(context.Background(), "pi_1")

	waitFor(t, func() bool {
		state, err := p.State("pi_1")
		return err == nil && state == WatchPaid
	})

	assert.Equal(t, int32(1), paidCount.Load())
	assert.Equal(t, "gcash", paidMethod.Load())
	assert.GreaterOrEqual(t, fetcher.callCount(), 3)
}

func TestPoller_FailedIntentFiresOnFailedOnce(t *testing.T) {
	fetcher := &scriptedFetcher{statuses: []domain.IntentStatus{domain.IntentFailed}}

	var failedCount atomic.Int32
	p := NewPoller(fetcher, 10*time.Millisecond, time.Second,
		nil,
		func(ctx context.Context, intentID string) { failedCount.Add(1) },
	)
	defer p.Stop()

	p.Watch(context.Background(), "pi_2")

	waitFor(t, func() bool {
		state, err := p.State("pi_2")
		return err == nil && state == WatchFailed
	})

	// extra ticks after settling must not re-fire the callback
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), failedCount.Load())
}

func TestPoller_DeadlineForcesFailed(t *testing.T) {
	fetcher := &scriptedFetcher{statuses: []domain.IntentStatus{domain.IntentAwaitingPaymentMethod}}

	var failedCount atomic.Int32
	p := NewPoller(fetcher, 10*time.Millisecond, 35*time.Millisecond,
		func(ctx context.Context, intentID, method string) {
			t.Error("onPaid must not fire at deadline")
		},
		func(ctx context.Context, intentID string) { failedCount.Add(1) },
	)
	defer p.Stop()

	p.Watch(context.Background(), "pi_3")

	waitFor(t, func() bool {
		state, err := p.State("pi_3")
		return err == nil && state == WatchFailed
	})
	assert.Equal(t, int32(1), failedCount.Load())

	callsAtSettle := fetcher.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, callsAtSettle, fetcher.callCount(), "polling must stop after the deadline fires")
}

func TestPoller_CheckNowSharesThePollingPath(t *testing.T) {
	fetcher := &scriptedFetcher{statuses: []domain.IntentStatus{domain.IntentSucceeded}}

	var paidCount atomic.Int32
	p := NewPoller(fetcher, time.Hour, time.Hour,
		func(ctx context.Context, intentID, method string) { paidCount.Add(1) },
		nil,
	)
	defer p.Stop()

	p.Watch(context.Background(), "pi_4")

	state, err := p.CheckNow(context.Background(), "pi_4")
	require.NoError(t, err)
	assert.Equal(t, WatchPaid, state)
	assert.Equal(t, int32(1), paidCount.Load())
	assert.Equal(t, 1, fetcher.callCount())

	// a second manual check on a settled watch is a no-op
	state, err = p.CheckNow(context.Background(), "pi_4")
	require.NoError(t, err)
	assert.Equal(t, WatchPaid, state)
	assert.Equal(t, int32(1), paidCount.Load())
	assert.Equal(t, 1, fetcher.callCount())
}

func TestPoller_CheckNowUnknownIntent(t *testing.T) {
	p := NewPoller(&scriptedFetcher{statuses: []domain.IntentStatus{domain.IntentProcessing}},
		time.Hour, time.Hour, nil, nil)
	defer p.Stop()

	_, err := p.CheckNow(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, ErrNotWatched)
}

func TestPoller_StopTearsDownWithoutCallbacks(t *testing.T) {
	fetcher := &scriptedFetcher{statuses: []domain.IntentStatus{domain.IntentAwaitingPaymentMethod}}

	p := NewPoller(fetcher, 10*time.Millisecond, time.Second,
		func(ctx context.Context, intentID, method string) { t.Error("onPaid after Stop") },
		func(ctx context.Context, intentID string) { t.Error("onFailed after Stop") },
	)

	p.Watch(context.Background(), "pi_5")
	time.Sleep(25 * time.Millisecond)
	p.Stop()

	_, err := p.State("pi_5")
	assert.ErrorIs(t, err, ErrNotWatched)

	callsAtStop := fetcher.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, fetcher.callCount(), callsAtStop+1, "polling must wind down after Stop")
}

func TestPoller_SettledWatchIsEvictedAfterRetention(t *testing.T) {
	fetcher := &scriptedFetcher{statuses: []domain.IntentStatus{domain.IntentSucceeded}}

	p := NewPoller(fetcher, time.Hour, time.Hour,
		func(ctx context.Context, intentID, method string) {}, nil)
	defer p.Stop()
	p.retention = 10 * time.Millisecond

	p.Watch(context.Background(), "pi_7")

	state, err := p.CheckNow(context.Background(), "pi_7")
	require.NoError(t, err)
	assert.Equal(t, WatchPaid, state)

	waitFor(t, func() bool {
		_, err := p.State("pi_7")
		return errors.Is(err, ErrNotWatched)
	})
}

func TestPoller_PendingStateWhileAwaitingPayment(t *testing.T) {
	fetcher := &scriptedFetcher{statuses: []domain.IntentStatus{domain.IntentProcessing}}

	p := NewPoller(fetcher, time.Hour, time.Hour, nil, nil)
	defer p.Stop()

	p.Watch(context.Background(), "pi_6")

	state, err := p.CheckNow(context.Background(), "pi_6")
	require.NoError(t, err)
	assert.Equal(t, WatchPending, state)
}
